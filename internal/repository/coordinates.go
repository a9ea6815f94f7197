package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

// GetCoordinates returns the coordinate for one country, or nil when the
// country has no coordinate entry. Absence is not an error: it simply makes
// the country ineligible as home or destination.
func (r *Repository) GetCoordinates(ctx context.Context, code string) (*domain.Coordinate, error) {
	var c domain.Coordinate

	err := r.q.QueryRow(ctx,
		`SELECT lat, lng FROM country_coordinates WHERE country_code = $1`,
		code,
	).Scan(&c.Lat, &c.Lng)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query coordinates for %s: %w", code, err)
	}

	return &c, nil
}

// ListCoordinates returns the full coordinate table keyed by country code.
func (r *Repository) ListCoordinates(ctx context.Context) (map[string]domain.Coordinate, error) {
	rows, err := r.q.Query(ctx,
		`SELECT country_code, lat, lng FROM country_coordinates`,
	)
	if err != nil {
		return nil, fmt.Errorf("query coordinates: %w", err)
	}
	defer rows.Close()

	coords := make(map[string]domain.Coordinate)
	for rows.Next() {
		var code string
		var c domain.Coordinate
		if err := rows.Scan(&code, &c.Lat, &c.Lng); err != nil {
			return nil, fmt.Errorf("scan coordinate: %w", err)
		}
		coords[code] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate coordinates: %w", err)
	}
	return coords, nil
}
