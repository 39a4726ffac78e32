package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

// Create создаёт урок
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (request_id, tutor_id, student_id, term_id, venue_id, start_date, start_hour, start_minute, frequency, duration_minutes, active, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		lesson.RequestID,
		lesson.TutorID,
		lesson.StudentID,
		lesson.TermID,
		lesson.VenueID,
		lesson.StartDate,
		lesson.StartHour,
		lesson.StartMinute,
		lesson.Frequency,
		lesson.DurationMinutes,
		lesson.Active,
		lesson.Notes,
	).Scan(&lesson.ID, &lesson.CreatedAt, &lesson.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает урок по ID (без гидрации связей)
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `
		SELECT id, request_id, tutor_id, student_id, term_id, venue_id, start_date, start_hour, start_minute, frequency, duration_minutes, active, notes, created_at, updated_at
		FROM lessons
		WHERE id = $1
	`

	var lesson model.Lesson
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.RequestID,
		&lesson.TutorID,
		&lesson.StudentID,
		&lesson.TermID,
		&lesson.VenueID,
		&lesson.StartDate,
		&lesson.StartHour,
		&lesson.StartMinute,
		&lesson.Frequency,
		&lesson.DurationMinutes,
		&lesson.Active,
		&lesson.Notes,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return &lesson, nil
}

// SetActive включает или выключает урок
func (r *LessonRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `
		UPDATE lessons
		SET active = $1, updated_at = now()
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("set lesson active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson not found")
	}

	return nil
}

// ListByStudent возвращает уроки студента, гидрированные периодом, местом
// и репетитором с его пользователем — всем, что нужно для разворачивания расписания
func (r *LessonRepository) ListByStudent(ctx context.Context, studentID int64, onlyActive bool) ([]*model.Lesson, error) {
	query := lessonSelect(`tutor_profiles`, `tutor_id`) + ` WHERE l.student_id = $1`
	if onlyActive {
		query += ` AND l.active = true`
	}
	query += ` ORDER BY l.start_date, l.start_hour, l.start_minute`

	lessons, err := r.list(ctx, query, studentID, hydrateTutor)
	if err != nil {
		return nil, fmt.Errorf("list lessons by student: %w", err)
	}
	return lessons, nil
}

// ListByTutor возвращает уроки репетитора, гидрированные периодом, местом
// и студентом с его пользователем
func (r *LessonRepository) ListByTutor(ctx context.Context, tutorID int64, onlyActive bool) ([]*model.Lesson, error) {
	query := lessonSelect(`student_profiles`, `student_id`) + ` WHERE l.tutor_id = $1`
	if onlyActive {
		query += ` AND l.active = true`
	}
	query += ` ORDER BY l.start_date, l.start_hour, l.start_minute`

	lessons, err := r.list(ctx, query, tutorID, hydrateStudent)
	if err != nil {
		return nil, fmt.Errorf("list lessons by tutor: %w", err)
	}
	return lessons, nil
}

type hydrateSide int

const (
	hydrateTutor hydrateSide = iota
	hydrateStudent
)

// lessonSelect собирает SELECT с join-ами: term и venue всегда,
// плюс профиль второй стороны урока и её пользователь
func lessonSelect(profileTable, joinColumn string) string {
	return fmt.Sprintf(`
		SELECT l.id, l.request_id, l.tutor_id, l.student_id, l.term_id, l.venue_id,
		       l.start_date, l.start_hour, l.start_minute, l.frequency, l.duration_minutes, l.active, l.notes, l.created_at, l.updated_at,
		       t.id, t.name, t.start_date, t.end_date, t.created_at,
		       v.id, v.name, v.address, v.room_number, v.capacity, v.created_at,
		       p.id, p.user_id, p.created_at,
		       u.id, u.username, u.first_name, u.last_name, u.email, u.is_student, u.is_tutor, u.is_staff, u.is_active, u.created_at
		FROM lessons l
		JOIN terms t ON t.id = l.term_id
		LEFT JOIN venues v ON v.id = l.venue_id
		JOIN %s p ON p.id = l.%s
		JOIN users u ON u.id = p.user_id`, profileTable, joinColumn)
}

func (r *LessonRepository) list(ctx context.Context, query string, arg int64, side hydrateSide) ([]*model.Lesson, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanHydratedLesson(rows, side)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}

	return lessons, nil
}

func scanHydratedLesson(row pgx.Row, side hydrateSide) (*model.Lesson, error) {
	var lesson model.Lesson
	var term model.Term
	var user model.User

	// Venue может отсутствовать, поэтому его поля читаем через указатели
	var venueID *int64
	var venueName, venueAddress, venueRoom *string
	var venueCapacity *int
	var venueCreatedAt *time.Time

	var profileID, profileUserID int64
	var profileCreatedAt time.Time

	err := row.Scan(
		&lesson.ID,
		&lesson.RequestID,
		&lesson.TutorID,
		&lesson.StudentID,
		&lesson.TermID,
		&lesson.VenueID,
		&lesson.StartDate,
		&lesson.StartHour,
		&lesson.StartMinute,
		&lesson.Frequency,
		&lesson.DurationMinutes,
		&lesson.Active,
		&lesson.Notes,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
		&term.ID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
		&venueID,
		&venueName,
		&venueAddress,
		&venueRoom,
		&venueCapacity,
		&venueCreatedAt,
		&profileID,
		&profileUserID,
		&profileCreatedAt,
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsStudent,
		&user.IsTutor,
		&user.IsStaff,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lesson.Term = &term

	if venueID != nil {
		lesson.Venue = &model.Venue{
			ID:         *venueID,
			Name:       *venueName,
			Address:    *venueAddress,
			RoomNumber: *venueRoom,
			Capacity:   venueCapacity,
			CreatedAt:  *venueCreatedAt,
		}
	}

	switch side {
	case hydrateTutor:
		lesson.Tutor = &model.TutorProfile{ID: profileID, UserID: profileUserID, CreatedAt: profileCreatedAt, User: &user}
	case hydrateStudent:
		lesson.Student = &model.StudentProfile{ID: profileID, UserID: profileUserID, CreatedAt: profileCreatedAt, User: &user}
	}

	return &lesson, nil
}
