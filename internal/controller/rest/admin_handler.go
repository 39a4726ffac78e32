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

// AdminHandler административные маршруты: справочники, уроки,
// рассмотрение заявок и счета
type AdminHandler struct {
	catalogService *service.CatalogService
	lessonService  *service.LessonService
	requestService *service.RequestService
	invoiceService *service.InvoiceService
	logger         *zap.Logger
}

func NewAdminHandler(
	catalogService *service.CatalogService,
	lessonService *service.LessonService,
	requestService *service.RequestService,
	invoiceService *service.InvoiceService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		lessonService:  lessonService,
		requestService: requestService,
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// CreateTerm обрабатывает POST /api/v1/admin/terms
func (h *AdminHandler) CreateTerm(c echo.Context) error {
	var req createTermRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	endDate, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	term, err := h.catalogService.CreateTerm(c.Request().Context(), req.Name, startDate, endDate)
	if err != nil {
		if errors.Is(err, service.ErrTermNameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to create term", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, term)
}

// ListTerms обрабатывает GET /api/v1/admin/terms
func (h *AdminHandler) ListTerms(c echo.Context) error {
	terms, err := h.catalogService.ListTerms(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list terms", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, terms)
}

// CreateVenue обрабатывает POST /api/v1/admin/venues
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	var req createVenueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	venue, err := h.catalogService.CreateVenue(
		c.Request().Context(), req.Name, req.Address, req.RoomNumber, req.Capacity)
	if err != nil {
		h.logger.Error("Failed to create venue", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, venue)
}

// ListVenues обрабатывает GET /api/v1/admin/venues
func (h *AdminHandler) ListVenues(c echo.Context) error {
	venues, err := h.catalogService.ListVenues(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list venues", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, venues)
}

// CreateLesson обрабатывает POST /api/v1/admin/lessons
func (h *AdminHandler) CreateLesson(c echo.Context) error {
	var req createLessonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	startDate, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	lesson, err := h.lessonService.Create(c.Request().Context(), service.CreateLessonInput{
		TutorID:         req.TutorID,
		StudentID:       req.StudentID,
		TermID:          req.TermID,
		VenueID:         req.VenueID,
		StartDate:       startDate,
		StartHour:       req.StartHour,
		StartMinute:     req.StartMinute,
		Frequency:       model.Frequency(req.Frequency),
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		h.logger.Error("Failed to create lesson", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, lesson)
}

// SetLessonActive обрабатывает PATCH /api/v1/admin/lessons/:id/active
func (h *AdminHandler) SetLessonActive(c echo.Context) error {
	lessonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lesson id"})
	}

	var req setLessonActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.lessonService.SetActive(c.Request().Context(), lessonID, req.Active); err != nil {
		h.logger.Error("Failed to change lesson active flag",
			zap.Int64("lesson_id", lessonID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"id": lessonID, "active": req.Active})
}

// ListPendingRequests обрабатывает GET /api/v1/admin/requests/pending
func (h *AdminHandler) ListPendingRequests(c echo.Context) error {
	requests, err := h.requestService.ListPending(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list pending requests", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, requests)
}

// AllocateRequest обрабатывает POST /api/v1/admin/requests/:id/allocate
func (h *AdminHandler) AllocateRequest(c echo.Context) error {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	var req allocateRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	lesson, err := h.requestService.Allocate(c.Request().Context(), requestID, req.VenueID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotPending):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			h.logger.Error("Failed to allocate request",
				zap.Int64("request_id", requestID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
		}
	}

	return c.JSON(http.StatusCreated, lesson)
}

// RejectRequest обрабатывает POST /api/v1/admin/requests/:id/reject
func (h *AdminHandler) RejectRequest(c echo.Context) error {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	if err := h.requestService.Reject(c.Request().Context(), requestID); err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotPending):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		default:
			h.logger.Error("Failed to reject request",
				zap.Int64("request_id", requestID), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rejection failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"id": requestID, "status": model.RequestStatusRejected})
}

// IssueInvoice обрабатывает POST /api/v1/admin/invoices
func (h *AdminHandler) IssueInvoice(c echo.Context) error {
	var req issueInvoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	invoice, err := h.invoiceService.Issue(
		c.Request().Context(), req.StudentID, req.TermID, req.AmountCents, req.Notes)
	if err != nil {
		h.logger.Error("Failed to issue invoice", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, invoice)
}

// MarkInvoicePaid обрабатывает POST /api/v1/admin/invoices/:id/pay
func (h *AdminHandler) MarkInvoicePaid(c echo.Context) error {
	invoiceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invoice id"})
	}

	if err := h.invoiceService.MarkPaid(c.Request().Context(), invoiceID); err != nil {
		h.logger.Error("Failed to mark invoice paid",
			zap.Int64("invoice_id", invoiceID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"id": invoiceID, "paid": true})
}
