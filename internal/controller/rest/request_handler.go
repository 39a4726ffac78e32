package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/Freeeeeet/tutor_marketplace/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestHandler студенческие маршруты: заявки на уроки и счета
type RequestHandler struct {
	requestService *service.RequestService
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewRequestHandler(
	requestService *service.RequestService,
	invoiceService *service.InvoiceService,
	logger *zap.Logger,
) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Create обрабатывает POST /api/v1/tutors/:id/requests
func (h *RequestHandler) Create(c echo.Context) error {
	tutorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tutor id"})
	}

	var req createLessonRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	startDate, err := parseDate(req.RequestedStartDate, "requested_start_date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	identity := CurrentIdentity(c)
	request, err := h.requestService.Create(c.Request().Context(), identity.UserID, service.CreateRequestInput{
		TutorID:                  tutorID,
		TermID:                   req.TermID,
		RequestedLanguages:       req.RequestedLanguages,
		RequestedSpecializations: req.RequestedSpecializations,
		Frequency:                model.Frequency(req.Frequency),
		DurationMinutes:          req.DurationMinutes,
		RequestedStartDate:       startDate,
		RequestedStartHour:       req.RequestedStartHour,
		RequestedStartMinute:     req.RequestedStartMinute,
		RequestedVenueID:         req.RequestedVenueID,
		Notes:                    req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrStudentProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student profile not found"})
		}
		h.logger.Error("Failed to create lesson request",
			zap.Int64("user_id", identity.UserID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, request)
}

// ListMine обрабатывает GET /api/v1/requests
func (h *RequestHandler) ListMine(c echo.Context) error {
	identity := CurrentIdentity(c)

	requests, err := h.requestService.ListMine(c.Request().Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStudentProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student profile not found"})
		}
		h.logger.Error("Failed to list lesson requests",
			zap.Int64("user_id", identity.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	return c.JSON(http.StatusOK, requests)
}

// ListInvoices обрабатывает GET /api/v1/invoices
func (h *RequestHandler) ListInvoices(c echo.Context) error {
	identity := CurrentIdentity(c)

	invoices, err := h.invoiceService.ListForStudentUser(c.Request().Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStudentProfileNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student profile not found"})
		}
		h.logger.Error("Failed to list invoices",
			zap.Int64("user_id", identity.UserID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}

	return c.JSON(http.StatusOK, invoices)
}
