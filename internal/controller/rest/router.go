package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter собирает echo-приложение со всеми маршрутами API
func NewRouter(
	jwtSecret string,
	authHandler *AuthHandler,
	dashboardHandler *DashboardHandler,
	requestHandler *RequestHandler,
	adminHandler *AdminHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := api.Group("", JWTAuth(jwtSecret))
	authed.GET("/me", authHandler.Me)
	authed.GET("/dashboard", dashboardHandler.Get)

	student := authed.Group("", RequireStudent)
	student.POST("/tutors/:id/requests", requestHandler.Create)
	student.GET("/requests", requestHandler.ListMine)
	student.GET("/invoices", requestHandler.ListInvoices)

	admin := authed.Group("/admin", RequireStaff)
	admin.POST("/terms", adminHandler.CreateTerm)
	admin.GET("/terms", adminHandler.ListTerms)
	admin.POST("/venues", adminHandler.CreateVenue)
	admin.GET("/venues", adminHandler.ListVenues)
	admin.POST("/lessons", adminHandler.CreateLesson)
	admin.PATCH("/lessons/:id/active", adminHandler.SetLessonActive)
	admin.GET("/requests/pending", adminHandler.ListPendingRequests)
	admin.POST("/requests/:id/allocate", adminHandler.AllocateRequest)
	admin.POST("/requests/:id/reject", adminHandler.RejectRequest)
	admin.POST("/invoices", adminHandler.IssueInvoice)
	admin.POST("/invoices/:id/pay", adminHandler.MarkInvoicePaid)

	return e
}
