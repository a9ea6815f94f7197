package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

// GetTravelerByID returns a single traveler record.
func (r *Repository) GetTravelerByID(ctx context.Context, travelerID int64) (*domain.Traveler, error) {
	t := &domain.Traveler{}

	err := r.q.QueryRow(ctx,
		`SELECT id, home_country, created_at
		 FROM travelers WHERE id = $1`,
		travelerID,
	).Scan(&t.ID, &t.HomeCountry, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTravelerNotFound
		}
		return nil, fmt.Errorf("query traveler id=%d: %w", travelerID, err)
	}

	return t, nil
}

// GetTravelerIDsPaginated returns traveler IDs for one page.
func (r *Repository) GetTravelerIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	offset := (page - 1) * limit
	rows, err := r.q.Query(ctx,
		`SELECT id FROM travelers ORDER BY id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query traveler ids for page %d: %w", page, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan traveler id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate traveler ids: %w", err)
	}
	return ids, nil
}

// CountTravelers returns the total traveler count.
func (r *Repository) CountTravelers(ctx context.Context) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM travelers`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count travelers: %w", err)
	}
	return total, nil
}
