package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
)

var (
	// ErrMalformedRecurrence у урока нет даты конца периода или период задан задом наперёд
	ErrMalformedRecurrence = errors.New("malformed recurrence: term has no end date or ends before it starts")
	// ErrUnknownFrequency неизвестная частота повторения
	ErrUnknownFrequency = errors.New("unknown lesson frequency")
)

// Viewpoint определяет, для кого разворачивается расписание:
// студент видит данные репетитора, репетитор — данные студента.
type Viewpoint string

const (
	ViewpointStudent Viewpoint = "student"
	ViewpointTutor   Viewpoint = "tutor"
)

// NoVenue значение-заглушка для уроков без привязанного места
const NoVenue = "N/A"

// Occurrence одно конкретное занятие регулярного урока.
// Вычисляется на лету, в базе не хранится.
type Occurrence struct {
	LessonID         int64           `json:"lesson_id"`
	Date             time.Time       `json:"date"`
	StartHour        int             `json:"start_hour"`
	StartMinute      int             `json:"start_minute"`
	CounterpartName  string          `json:"counterpart_name"`
	CounterpartEmail string          `json:"counterpart_email"`
	VenueName        string          `json:"venue_name"`
	VenueAddress     string          `json:"venue_address"`
	VenueRoom        string          `json:"venue_room"`
	Frequency        model.Frequency `json:"frequency"`
	DurationMinutes  int             `json:"duration_minutes"`
}

// TimeString время начала в виде "14:30" для отображения
func (o Occurrence) TimeString() string {
	return fmt.Sprintf("%02d:%02d", o.StartHour, o.StartMinute)
}

// Expand разворачивает регулярные уроки в список будущих занятий.
// Для каждого урока курсор идёт от start_date с шагом 7 или 14 дней,
// пока не выйдет за конец учебного периода; занятия раньше today
// (не включительно) отбрасываются. Результат объединяется по всем урокам
// и сортируется по дате и времени; при равенстве порядок задаёт id урока.
//
// Уроки должны быть гидрированы: Term обязателен, Venue опционален,
// Tutor.User/Student.User — в зависимости от viewpoint.
// Функция чистая, ввода-вывода не делает.
func Expand(lessons []*model.Lesson, today time.Time, vp Viewpoint) ([]Occurrence, error) {
	today = truncateToDate(today)

	var occurrences []Occurrence
	for _, lesson := range lessons {
		expanded, err := expandLesson(lesson, today, vp)
		if err != nil {
			return nil, err
		}
		occurrences = append(occurrences, expanded...)
	}

	sort.Slice(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartHour != b.StartHour {
			return a.StartHour < b.StartHour
		}
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		return a.LessonID < b.LessonID
	})

	return occurrences, nil
}

// expandLesson разворачивает один урок
func expandLesson(lesson *model.Lesson, today time.Time, vp Viewpoint) ([]Occurrence, error) {
	if lesson.Term == nil || lesson.Term.EndDate.IsZero() || lesson.Term.EndDate.Before(lesson.Term.StartDate) {
		return nil, fmt.Errorf("lesson %d: %w", lesson.ID, ErrMalformedRecurrence)
	}

	step, err := stepDays(lesson.Frequency)
	if err != nil {
		return nil, fmt.Errorf("lesson %d: %w", lesson.ID, err)
	}

	counterpartName, counterpartEmail := counterpart(lesson, vp)

	venueName, venueAddress, venueRoom := NoVenue, NoVenue, NoVenue
	if lesson.Venue != nil {
		venueName = lesson.Venue.Name
		venueAddress = lesson.Venue.Address
		venueRoom = lesson.Venue.RoomNumber
	}

	end := truncateToDate(lesson.Term.EndDate)

	var occurrences []Occurrence
	// Курсор строго возрастает, граница цикла фиксирована — завершение гарантировано.
	// Если start_date уже позже конца периода, не будет ни одного занятия (и ни одной ошибки).
	for cursor := truncateToDate(lesson.StartDate); !cursor.After(end); cursor = cursor.AddDate(0, 0, step) {
		if cursor.Before(today) {
			continue // прошедшие занятия не показываем; сегодняшнее — показываем
		}
		occurrences = append(occurrences, Occurrence{
			LessonID:         lesson.ID,
			Date:             cursor,
			StartHour:        lesson.StartHour,
			StartMinute:      lesson.StartMinute,
			CounterpartName:  counterpartName,
			CounterpartEmail: counterpartEmail,
			VenueName:        venueName,
			VenueAddress:     venueAddress,
			VenueRoom:        venueRoom,
			Frequency:        lesson.Frequency,
			DurationMinutes:  lesson.DurationMinutes,
		})
	}

	return occurrences, nil
}

// stepDays возвращает шаг курсора в днях для частоты
func stepDays(f model.Frequency) (int, error) {
	switch f {
	case model.FrequencyWeekly:
		return 7, nil
	case model.FrequencyFortnightly:
		return 14, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, f)
	}
}

// counterpart возвращает имя и email второй стороны урока
func counterpart(lesson *model.Lesson, vp Viewpoint) (name, email string) {
	if vp == ViewpointTutor {
		if lesson.Student != nil && lesson.Student.User != nil {
			return lesson.Student.User.FullName(), lesson.Student.User.Email
		}
		return "", ""
	}
	if lesson.Tutor != nil && lesson.Tutor.User != nil {
		return lesson.Tutor.User.FullName(), lesson.Tutor.User.Email
	}
	return "", ""
}

// truncateToDate отбрасывает время, оставляя полночь UTC
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
