package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_marketplace/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

// Create создаёт место проведения уроков
func (r *VenueRepository) Create(ctx context.Context, venue *model.Venue) error {
	query := `
		INSERT INTO venues (name, address, room_number, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, venue.Name, venue.Address, venue.RoomNumber, venue.Capacity).
		Scan(&venue.ID, &venue.CreatedAt)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}

	return nil
}

// GetByID получает место по ID
func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*model.Venue, error) {
	query := `
		SELECT id, name, address, room_number, capacity, created_at
		FROM venues
		WHERE id = $1
	`

	var venue model.Venue
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Address,
		&venue.RoomNumber,
		&venue.Capacity,
		&venue.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get venue by id: %w", err)
	}

	return &venue, nil
}

// List возвращает все места по алфавиту
func (r *VenueRepository) List(ctx context.Context) ([]*model.Venue, error) {
	query := `
		SELECT id, name, address, room_number, capacity, created_at
		FROM venues
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []*model.Venue
	for rows.Next() {
		var venue model.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Address,
			&venue.RoomNumber,
			&venue.Capacity,
			&venue.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, &venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}

	return venues, nil
}
