package model

import "time"

type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"      // раз в неделю
	FrequencyFortnightly Frequency = "fortnightly" // раз в две недели
)

// Valid проверяет, что частота одна из поддерживаемых
func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyFortnightly
}

// Lesson регулярный урок. Хранится только правило повторения:
// конкретные занятия (occurrences) вычисляются на лету и никогда не сохраняются.
type Lesson struct {
	ID              int64     `json:"id"`
	RequestID       *int64    `json:"request_id,omitempty"` // заявка, из которой создан урок
	TutorID         int64     `json:"tutor_id"`
	StudentID       int64     `json:"student_id"`
	TermID          int64     `json:"term_id"`
	VenueID         *int64    `json:"venue_id,omitempty"`
	StartDate       time.Time `json:"start_date"`
	StartHour       int       `json:"start_hour"`   // 0-23
	StartMinute     int       `json:"start_minute"` // 0-59
	Frequency       Frequency `json:"frequency"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"` // выставляется вручную администратором
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Дополнительные поля для удобства (не из БД)
	Term    *Term           `json:"term,omitempty"`
	Venue   *Venue          `json:"venue,omitempty"`
	Tutor   *TutorProfile   `json:"tutor,omitempty"`
	Student *StudentProfile `json:"student,omitempty"`
}
