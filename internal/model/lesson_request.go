package model

import (
	"time"

	"github.com/google/uuid"
)

type LessonRequestStatus string

const (
	RequestStatusPending   LessonRequestStatus = "pending"   // Ожидает решения администратора
	RequestStatusAllocated LessonRequestStatus = "allocated" // По заявке создан урок
	RequestStatusRejected  LessonRequestStatus = "rejected"  // Отклонена
)

// LessonRequest заявка студента на уроки у конкретного репетитора.
// Урок по заявке может быть создан, а может и нет.
type LessonRequest struct {
	ID                       int64               `json:"id"`
	PublicID                 uuid.UUID           `json:"public_id"` // внешний идентификатор заявки
	StudentID                int64               `json:"student_id"`
	TutorID                  int64               `json:"tutor_id"`
	TermID                   int64               `json:"term_id"`
	RequestedLanguages       string              `json:"requested_languages"`
	RequestedSpecializations string              `json:"requested_specializations"`
	Frequency                Frequency           `json:"frequency"`
	DurationMinutes          int                 `json:"duration_minutes"`
	RequestedStartDate       time.Time           `json:"requested_start_date"`
	RequestedStartHour       int                 `json:"requested_start_hour"`
	RequestedStartMinute     int                 `json:"requested_start_minute"`
	RequestedVenueID         *int64              `json:"requested_venue_id,omitempty"`
	Notes                    string              `json:"notes"`
	Status                   LessonRequestStatus `json:"status"`
	CreatedAt                time.Time           `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Term  *Term         `json:"term,omitempty"`
	Tutor *TutorProfile `json:"tutor,omitempty"`
}
