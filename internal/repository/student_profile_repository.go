package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentProfileRepository struct {
	pool *pgxpool.Pool
}

func NewStudentProfileRepository(pool *pgxpool.Pool) *StudentProfileRepository {
	return &StudentProfileRepository{pool: pool}
}

// Create создаёт профиль студента
func (r *StudentProfileRepository) Create(ctx context.Context, profile *model.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (user_id, contact_number, preferred_communication_method, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		profile.UserID,
		profile.ContactNumber,
		profile.PreferredCommunicationMethod,
		profile.Notes,
	).Scan(&profile.ID, &profile.CreatedAt)

	if err != nil {
		return fmt.Errorf("create student profile: %w", err)
	}

	return nil
}

// GetByID получает профиль студента по ID вместе с пользователем
func (r *StudentProfileRepository) GetByID(ctx context.Context, id int64) (*model.StudentProfile, error) {
	profile, err := r.getOne(ctx, `sp.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get student profile by id: %w", err)
	}
	return profile, nil
}

// GetByUserID получает профиль студента по ID пользователя
func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.StudentProfile, error) {
	profile, err := r.getOne(ctx, `sp.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get student profile by user id: %w", err)
	}
	return profile, nil
}

const studentProfileSelect = `
	SELECT sp.id, sp.user_id, sp.contact_number, sp.preferred_communication_method, sp.notes, sp.created_at,
	       u.id, u.username, u.first_name, u.last_name, u.email, u.is_student, u.is_tutor, u.is_staff, u.is_active, u.created_at
	FROM student_profiles sp
	JOIN users u ON u.id = sp.user_id`

func (r *StudentProfileRepository) getOne(ctx context.Context, cond string, arg interface{}) (*model.StudentProfile, error) {
	row := r.pool.QueryRow(ctx, studentProfileSelect+` WHERE `+cond, arg)

	var profile model.StudentProfile
	var user model.User
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ContactNumber,
		&profile.PreferredCommunicationMethod,
		&profile.Notes,
		&profile.CreatedAt,
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
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	profile.User = &user
	return &profile, nil
}
