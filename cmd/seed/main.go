// Команда seed наполняет базу демонстрационными данными:
// администратор, репетитор и студент с заявкой, уроком и счётом.
package main

import (
	"context"
	"log"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/app"
	"github.com/Freeeeeet/tutor_marketplace/internal/config"
	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultPassword = "Password123"

type userFixture struct {
	username  string
	firstName string
	lastName  string
	email     string
	isStudent bool
	isTutor   bool
	isStaff   bool
}

var userFixtures = []userFixture{
	{username: "@johndoe", firstName: "John", lastName: "Doe", email: "john.doe@example.org", isStaff: true},
	{username: "@janedoe", firstName: "Jane", lastName: "Doe", email: "jane.doe@example.org", isTutor: true},
	{username: "@charlie", firstName: "Charlie", lastName: "Johnson", email: "charlie.johnson@example.org", isStudent: true},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	if err := seed(ctx, pool, logger); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	logger.Info("Database seeded")
}

func seed(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	userRepo := repository.NewUserRepository(pool)
	tutorRepo := repository.NewTutorProfileRepository(pool)
	studentRepo := repository.NewStudentProfileRepository(pool)
	termRepo := repository.NewTermRepository(pool)
	venueRepo := repository.NewVenueRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	requestRepo := repository.NewLessonRequestRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make(map[string]*model.User, len(userFixtures))
	for _, fixture := range userFixtures {
		existing, err := userRepo.GetByUsername(ctx, fixture.username)
		if err != nil {
			return err
		}
		if existing != nil {
			logger.Info("User already exists, skipping", zap.String("username", fixture.username))
			users[fixture.username] = existing
			continue
		}

		user := &model.User{
			Username:     fixture.username,
			FirstName:    fixture.firstName,
			LastName:     fixture.lastName,
			Email:        fixture.email,
			PasswordHash: string(hash),
			IsStudent:    fixture.isStudent,
			IsTutor:      fixture.isTutor,
			IsStaff:      fixture.isStaff,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		logger.Info("User created", zap.String("username", user.Username))
		users[fixture.username] = user
	}

	jane, err := tutorRepo.GetOrCreateByUserID(ctx, users["@janedoe"].ID)
	if err != nil {
		return err
	}
	jane.Bio = "Experienced tutor"
	jane.ExperienceYears = 5
	jane.ContactNumber = "+44 1234 567890"
	jane.Languages = "Python, JavaScript"
	jane.Specializations = "Web Development"
	if err := tutorRepo.Update(ctx, jane); err != nil {
		return err
	}

	charlie, err := studentRepo.GetByUserID(ctx, users["@charlie"].ID)
	if err != nil {
		return err
	}
	if charlie == nil {
		charlie = &model.StudentProfile{
			UserID: users["@charlie"].ID,
			Notes:  "Eager to learn programming.",
		}
		if err := studentRepo.Create(ctx, charlie); err != nil {
			return err
		}
	}

	term := &model.Term{
		Name:      "Spring 2026",
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := termRepo.Create(ctx, term); err != nil {
		return err
	}

	venue := &model.Venue{Name: "Main Hall", Address: "123 Learning Lane"}
	if err := venueRepo.Create(ctx, venue); err != nil {
		return err
	}

	request := &model.LessonRequest{
		PublicID:                 uuid.New(),
		StudentID:                charlie.ID,
		TutorID:                  jane.ID,
		TermID:                   term.ID,
		RequestedLanguages:       "Python, JavaScript",
		RequestedSpecializations: "Web Development",
		Frequency:                model.FrequencyWeekly,
		DurationMinutes:          60,
		RequestedStartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		RequestedStartHour:       10,
		RequestedStartMinute:     0,
		RequestedVenueID:         &venue.ID,
		Notes:                    "Looking to build foundational skills.",
		Status:                   model.RequestStatusPending,
	}
	if err := requestRepo.Create(ctx, request); err != nil {
		return err
	}

	lesson := &model.Lesson{
		RequestID:       &request.ID,
		TutorID:         jane.ID,
		StudentID:       charlie.ID,
		TermID:          term.ID,
		VenueID:         &venue.ID,
		StartDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartHour:       10,
		StartMinute:     0,
		Frequency:       model.FrequencyWeekly,
		DurationMinutes: 60,
		Active:          true,
		Notes:           "Initial lesson for basics.",
	}
	if err := lessonRepo.Create(ctx, lesson); err != nil {
		return err
	}
	if err := requestRepo.UpdateStatus(ctx, request.ID, model.RequestStatusAllocated); err != nil {
		return err
	}

	invoice := &model.Invoice{
		Reference:   uuid.New(),
		StudentID:   charlie.ID,
		TermID:      term.ID,
		AmountCents: 20000,
		Notes:       "Invoice for weekly lessons in Spring 2026.",
		IssuedDate:  time.Now().UTC(),
	}
	return invoiceRepo.Create(ctx, invoice)
}
