package repository

import (
	"context"
	"fmt"
)

// GetVisitedCodes returns the country codes a traveler has marked visited.
func (r *Repository) GetVisitedCodes(ctx context.Context, travelerID int64) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT country_code FROM visited_countries
		 WHERE traveler_id = $1
		 ORDER BY visited_at DESC`,
		travelerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query visited countries for traveler %d: %w", travelerID, err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan visited country: %w", err)
		}
		codes = append(codes, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visited countries: %w", err)
	}
	return codes, nil
}

// AddVisited marks a country visited for a traveler. Re-marking an already
// visited country is a no-op.
func (r *Repository) AddVisited(ctx context.Context, travelerID int64, countryCode string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO visited_countries (traveler_id, country_code, visited_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (traveler_id, country_code) DO NOTHING`,
		travelerID, countryCode,
	)
	if err != nil {
		return fmt.Errorf("add visited country %s for traveler %d: %w", countryCode, travelerID, err)
	}
	return nil
}
