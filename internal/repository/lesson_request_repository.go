package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRequestRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRequestRepository(pool *pgxpool.Pool) *LessonRequestRepository {
	return &LessonRequestRepository{pool: pool}
}

const lessonRequestColumns = `id, public_id, student_id, tutor_id, term_id, requested_languages, requested_specializations, frequency, duration_minutes, requested_start_date, requested_start_hour, requested_start_minute, requested_venue_id, notes, status, created_at`

// Create создаёт заявку на уроки
func (r *LessonRequestRepository) Create(ctx context.Context, request *model.LessonRequest) error {
	query := `
		INSERT INTO lesson_requests (public_id, student_id, tutor_id, term_id, requested_languages, requested_specializations, frequency, duration_minutes, requested_start_date, requested_start_hour, requested_start_minute, requested_venue_id, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		request.PublicID,
		request.StudentID,
		request.TutorID,
		request.TermID,
		request.RequestedLanguages,
		request.RequestedSpecializations,
		request.Frequency,
		request.DurationMinutes,
		request.RequestedStartDate,
		request.RequestedStartHour,
		request.RequestedStartMinute,
		request.RequestedVenueID,
		request.Notes,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson request: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID
func (r *LessonRequestRepository) GetByID(ctx context.Context, id int64) (*model.LessonRequest, error) {
	query := `SELECT ` + lessonRequestColumns + ` FROM lesson_requests WHERE id = $1`

	request, err := scanLessonRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson request by id: %w", err)
	}

	return request, nil
}

// ListByStudent возвращает заявки студента, новые сверху
func (r *LessonRequestRepository) ListByStudent(ctx context.Context, studentID int64) ([]*model.LessonRequest, error) {
	query := `SELECT ` + lessonRequestColumns + ` FROM lesson_requests WHERE student_id = $1 ORDER BY created_at DESC`

	requests, err := r.list(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list lesson requests by student: %w", err)
	}
	return requests, nil
}

// ListPending возвращает все нерассмотренные заявки, старые сверху
func (r *LessonRequestRepository) ListPending(ctx context.Context) ([]*model.LessonRequest, error) {
	query := `SELECT ` + lessonRequestColumns + ` FROM lesson_requests WHERE status = $1 ORDER BY created_at`

	requests, err := r.list(ctx, query, model.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending lesson requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus переводит заявку в новый статус
func (r *LessonRequestRepository) UpdateStatus(ctx context.Context, id int64, status model.LessonRequestStatus) error {
	query := `
		UPDATE lesson_requests
		SET status = $1
		WHERE id = $2
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update lesson request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lesson request not found")
	}

	return nil
}

func (r *LessonRequestRepository) list(ctx context.Context, query string, arg interface{}) ([]*model.LessonRequest, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*model.LessonRequest
	for rows.Next() {
		request, err := scanLessonRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lesson requests: %w", err)
	}

	return requests, nil
}

func scanLessonRequest(row pgx.Row) (*model.LessonRequest, error) {
	var request model.LessonRequest
	err := row.Scan(
		&request.ID,
		&request.PublicID,
		&request.StudentID,
		&request.TutorID,
		&request.TermID,
		&request.RequestedLanguages,
		&request.RequestedSpecializations,
		&request.Frequency,
		&request.DurationMinutes,
		&request.RequestedStartDate,
		&request.RequestedStartHour,
		&request.RequestedStartMinute,
		&request.RequestedVenueID,
		&request.Notes,
		&request.Status,
		&request.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}
