package rest

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardHandler один маршрут на обе роли: форма ответа зависит
// от того, студент пользователь или репетитор
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Get обрабатывает GET /api/v1/dashboard
func (h *DashboardHandler) Get(c echo.Context) error {
	identity := CurrentIdentity(c)
	ctx := c.Request().Context()

	if identity.IsTutor {
		dashboard, err := h.dashboardService.ForTutor(ctx, identity.UserID)
		if err != nil {
			h.logger.Error("Failed to assemble tutor dashboard",
				zap.Int64("user_id", identity.UserID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "dashboard unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"role": "tutor", "dashboard": dashboard})
	}

	filter := model.TutorFilter{
		Name:           c.QueryParam("q_name"),
		Language:       c.QueryParam("q_language"),
		Specialization: c.QueryParam("q_specialization"),
	}

	dashboard, err := h.dashboardService.ForStudent(ctx, identity.UserID, filter)
	if err != nil {
		if errors.Is(err, service.ErrStudentProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student profile not found"})
		}
		h.logger.Error("Failed to assemble student dashboard",
			zap.Int64("user_id", identity.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "dashboard unavailable"})
	}

	return c.JSON(http.StatusOK, echo.Map{"role": "student", "dashboard": dashboard})
}
