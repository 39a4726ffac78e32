package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TermRepository struct {
	pool *pgxpool.Pool
}

func NewTermRepository(pool *pgxpool.Pool) *TermRepository {
	return &TermRepository{pool: pool}
}

// Create создаёт учебный период
func (r *TermRepository) Create(ctx context.Context, term *model.Term) error {
	query := `
		INSERT INTO terms (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, term.Name, term.StartDate, term.EndDate).
		Scan(&term.ID, &term.CreatedAt)
	if err != nil {
		return fmt.Errorf("create term: %w", err)
	}

	return nil
}

// GetByID получает учебный период по ID
func (r *TermRepository) GetByID(ctx context.Context, id int64) (*model.Term, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM terms
		WHERE id = $1
	`

	var term model.Term
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&term.ID,
		&term.Name,
		&term.StartDate,
		&term.EndDate,
		&term.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get term by id: %w", err)
	}

	return &term, nil
}

// List возвращает все учебные периоды, от ранних к поздним
func (r *TermRepository) List(ctx context.Context) ([]*model.Term, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at
		FROM terms
		ORDER BY start_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	defer rows.Close()

	var terms []*model.Term
	for rows.Next() {
		var term model.Term
		err := rows.Scan(
			&term.ID,
			&term.Name,
			&term.StartDate,
			&term.EndDate,
			&term.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		terms = append(terms, &term)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate terms: %w", err)
	}

	return terms, nil
}
