package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TutorProfileRepository struct {
	pool *pgxpool.Pool
}

func NewTutorProfileRepository(pool *pgxpool.Pool) *TutorProfileRepository {
	return &TutorProfileRepository{pool: pool}
}

// Create создаёт профиль репетитора
func (r *TutorProfileRepository) Create(ctx context.Context, profile *model.TutorProfile) error {
	query := `
		INSERT INTO tutor_profiles (user_id, bio, experience_years, contact_number, languages, specializations)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		profile.UserID,
		profile.Bio,
		profile.ExperienceYears,
		profile.ContactNumber,
		profile.Languages,
		profile.Specializations,
	).Scan(&profile.ID, &profile.CreatedAt)

	if err != nil {
		return fmt.Errorf("create tutor profile: %w", err)
	}

	return nil
}

// GetByID получает профиль репетитора по ID вместе с пользователем
func (r *TutorProfileRepository) GetByID(ctx context.Context, id int64) (*model.TutorProfile, error) {
	profile, err := r.getOne(ctx, `tp.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get tutor profile by id: %w", err)
	}
	return profile, nil
}

// GetByUserID получает профиль репетитора по ID пользователя
func (r *TutorProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.TutorProfile, error) {
	profile, err := r.getOne(ctx, `tp.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get tutor profile by user id: %w", err)
	}
	return profile, nil
}

// GetOrCreateByUserID возвращает профиль репетитора, создавая его при первом входе.
// Гонку двух одновременных первых входов разрешает уникальный индекс на user_id:
// проигравшая вставка ничего не меняет, после чего профиль просто перечитывается.
func (r *TutorProfileRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (*model.TutorProfile, error) {
	insert := `
		INSERT INTO tutor_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, insert, userID); err != nil {
		return nil, fmt.Errorf("ensure tutor profile: %w", err)
	}

	profile, err := r.getOne(ctx, `tp.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("get tutor profile after ensure: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("tutor profile missing after ensure")
	}

	return profile, nil
}

// Update обновляет профиль репетитора
func (r *TutorProfileRepository) Update(ctx context.Context, profile *model.TutorProfile) error {
	query := `
		UPDATE tutor_profiles
		SET bio = $1, experience_years = $2, contact_number = $3, languages = $4, specializations = $5
		WHERE id = $6
	`

	result, err := r.pool.Exec(
		ctx, query,
		profile.Bio,
		profile.ExperienceYears,
		profile.ContactNumber,
		profile.Languages,
		profile.Specializations,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("update tutor profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tutor profile not found")
	}

	return nil
}

// Filter ищет репетиторов по имени, языкам и специализациям.
// Пустые поля фильтра не ограничивают выборку; совпадение — подстрока без учёта регистра.
func (r *TutorProfileRepository) Filter(ctx context.Context, filter model.TutorFilter) ([]*model.TutorProfile, error) {
	query := tutorProfileSelect + `
		WHERE ($1 = '' OR u.first_name ILIKE '%' || $1 || '%' OR u.last_name ILIKE '%' || $1 || '%' OR u.username ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR tp.languages ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR tp.specializations ILIKE '%' || $3 || '%')
		ORDER BY u.last_name, u.first_name
	`

	rows, err := r.pool.Query(ctx, query, filter.Name, filter.Language, filter.Specialization)
	if err != nil {
		return nil, fmt.Errorf("filter tutors: %w", err)
	}
	defer rows.Close()

	var profiles []*model.TutorProfile
	for rows.Next() {
		profile, err := scanTutorProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tutor profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutor profiles: %w", err)
	}

	return profiles, nil
}

const tutorProfileSelect = `
	SELECT tp.id, tp.user_id, tp.bio, tp.experience_years, tp.contact_number, tp.languages, tp.specializations, tp.created_at,
	       u.id, u.username, u.first_name, u.last_name, u.email, u.is_student, u.is_tutor, u.is_staff, u.is_active, u.created_at
	FROM tutor_profiles tp
	JOIN users u ON u.id = tp.user_id`

func (r *TutorProfileRepository) getOne(ctx context.Context, cond string, arg interface{}) (*model.TutorProfile, error) {
	row := r.pool.QueryRow(ctx, tutorProfileSelect+` WHERE `+cond, arg)

	profile, err := scanTutorProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func scanTutorProfile(row pgx.Row) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	var user model.User
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.ExperienceYears,
		&profile.ContactNumber,
		&profile.Languages,
		&profile.Specializations,
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
		return nil, err
	}
	profile.User = &user
	return &profile, nil
}
