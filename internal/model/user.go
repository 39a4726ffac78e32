package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"` // формат "@имя", уникальный
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"` // уникальный
	PasswordHash string    `json:"-"`
	IsStudent    bool      `json:"is_student"`
	IsTutor      bool      `json:"is_tutor"`
	IsStaff      bool      `json:"is_staff"` // доступ к административным операциям
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
