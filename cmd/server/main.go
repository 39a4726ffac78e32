package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/app"
	"github.com/Freeeeeet/tutor_marketplace/internal/config"
	"github.com/Freeeeeet/tutor_marketplace/internal/controller/rest"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"github.com/Freeeeeet/tutor_marketplace/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutor marketplace",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	tutorRepo := repository.NewTutorProfileRepository(pool)
	studentRepo := repository.NewStudentProfileRepository(pool)
	termRepo := repository.NewTermRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	requestRepo := repository.NewLessonRequestRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)

	// Сервисы
	userService := service.NewUserService(userRepo, studentRepo, logger)
	catalogService := service.NewCatalogService(termRepo, venueRepo, logger)
	lessonService := service.NewLessonService(lessonRepo, tutorRepo, studentRepo, termRepo, venueRepo, logger)
	requestService := service.NewRequestService(requestRepo, lessonRepo, studentRepo, tutorRepo, termRepo, venueRepo, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, studentRepo, termRepo, logger)
	dashboardService := service.NewDashboardService(lessonRepo, invoiceRepo, tutorRepo, studentRepo, logger)

	// HTTP
	authHandler := rest.NewAuthHandler(userService, cfg.JWTSecret, logger)
	dashboardHandler := rest.NewDashboardHandler(dashboardService, logger)
	requestHandler := rest.NewRequestHandler(requestService, invoiceService, logger)
	adminHandler := rest.NewAdminHandler(catalogService, lessonService, requestService, invoiceService, logger)

	e := rest.NewRouter(cfg.JWTSecret, authHandler, dashboardHandler, requestHandler, adminHandler)

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
}
