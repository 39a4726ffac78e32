package model

import "time"

// Term учебный период, например "Spring 2026".
// Ограничивает, до какой даты разворачивается регулярный урок.
type Term struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"` // уникальное
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"` // всегда позже start_date
	CreatedAt time.Time `json:"created_at"`
}
