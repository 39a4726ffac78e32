package rest

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// validate один экземпляр на пакет; валидаторы потокобезопасны
var validate = validator.New()

// dateFormat формат дат во входных данных API
const dateFormat = "2006-01-02"

type registerRequest struct {
	Username  string `json:"username" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	IsTutor   bool   `json:"is_tutor"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createTermRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type createVenueRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Address    string `json:"address" validate:"max=255"`
	RoomNumber string `json:"room_number" validate:"max=50"`
	Capacity   *int   `json:"capacity,omitempty"`
}

type createLessonRequest struct {
	TutorID         int64  `json:"tutor_id" validate:"required"`
	StudentID       int64  `json:"student_id" validate:"required"`
	TermID          int64  `json:"term_id" validate:"required"`
	VenueID         *int64 `json:"venue_id,omitempty"`
	StartDate       string `json:"start_date" validate:"required"`
	StartHour       int    `json:"start_hour" validate:"min=0,max=23"`
	StartMinute     int    `json:"start_minute" validate:"min=0,max=59"`
	Frequency       string `json:"frequency" validate:"omitempty,oneof=weekly fortnightly"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	Notes           string `json:"notes"`
}

type setLessonActiveRequest struct {
	Active bool `json:"active"`
}

type createLessonRequestRequest struct {
	TermID                   int64  `json:"term_id" validate:"required"`
	RequestedLanguages       string `json:"requested_languages" validate:"required"`
	RequestedSpecializations string `json:"requested_specializations"`
	Frequency                string `json:"frequency" validate:"required,oneof=weekly fortnightly"`
	DurationMinutes          int    `json:"duration_minutes" validate:"required,gt=0"`
	RequestedStartDate       string `json:"requested_start_date" validate:"required"`
	RequestedStartHour       int    `json:"requested_start_hour" validate:"min=0,max=23"`
	RequestedStartMinute     int    `json:"requested_start_minute" validate:"min=0,max=59"`
	RequestedVenueID         *int64 `json:"requested_venue_id,omitempty"`
	Notes                    string `json:"notes"`
}

type allocateRequestRequest struct {
	VenueID *int64 `json:"venue_id,omitempty"`
}

type issueInvoiceRequest struct {
	StudentID   int64  `json:"student_id" validate:"required"`
	TermID      int64  `json:"term_id" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"min=0"`
	Notes       string `json:"notes"`
}

// bindAndValidate разбирает JSON-тело и прогоняет его через валидатор
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(400, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(400, err.Error())
	}
	return nil
}

// parseDate разбирает дату формата "2006-01-02"
func parseDate(value, field string) (time.Time, error) {
	parsed, err := time.Parse(dateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in format %s", field, dateFormat)
	}
	return parsed, nil
}
