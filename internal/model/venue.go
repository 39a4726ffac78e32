package model

import "time"

// Venue место проведения уроков: аудитория, офис или даже Zoom-ссылка
type Venue struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	RoomNumber string    `json:"room_number"`
	Capacity   *int      `json:"capacity,omitempty"` // опционально
	CreatedAt  time.Time `json:"created_at"`
}
