package model

import "time"

// TutorProfile дополнительные данные пользователя-репетитора (one-to-one с users)
type TutorProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Bio             string    `json:"bio"`
	ExperienceYears int       `json:"experience_years"`
	ContactNumber   string    `json:"contact_number"`
	Languages       string    `json:"languages"`       // список через запятую, например "Python, JavaScript"
	Specializations string    `json:"specializations"` // список через запятую
	CreatedAt       time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	User *User `json:"user,omitempty"`
}

// TutorFilter параметры поиска репетиторов со студенческого дашборда.
// Каждое поле — подстрока без учёта регистра; пустое поле не фильтрует.
type TutorFilter struct {
	Name           string // ищется в имени, фамилии и username
	Language       string
	Specialization string
}

// Empty все поля фильтра пустые
func (f TutorFilter) Empty() bool {
	return f.Name == "" && f.Language == "" && f.Specialization == ""
}

// StudentProfile дополнительные данные пользователя-студента (one-to-one с users)
type StudentProfile struct {
	ID                           int64     `json:"id"`
	UserID                       int64     `json:"user_id"`
	ContactNumber                string    `json:"contact_number"`
	PreferredCommunicationMethod string    `json:"preferred_communication_method"`
	Notes                        string    `json:"notes"`
	CreatedAt                    time.Time `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	User *User `json:"user,omitempty"`
}
