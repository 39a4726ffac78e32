package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice счёт студенту за уроки в рамках одного учебного периода
type Invoice struct {
	ID          int64      `json:"id"`
	Reference   uuid.UUID  `json:"reference"` // внешний номер счёта
	StudentID   int64      `json:"student_id"`
	TermID      int64      `json:"term_id"`
	AmountCents int64      `json:"amount_cents"` // в копейках/центах, не отрицательная
	Notes       string     `json:"notes"`
	IssuedDate  time.Time  `json:"issued_date"` // фиксируется при создании
	PaidDate    *time.Time `json:"paid_date,omitempty"`

	// Дополнительные поля для удобства (не из БД)
	Term *Term `json:"term,omitempty"`
}

// Paid оплачен ли счёт
func (i *Invoice) Paid() bool {
	return i.PaidDate != nil
}
