package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

// ListCountries returns the full country catalog.
func (r *Repository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.q.Query(ctx,
		`SELECT code, name, region, interests
		 FROM countries
		 ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("query countries: %w", err)
	}
	defer rows.Close()

	var countries []domain.Country
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Code, &c.Name, &c.Region, &c.Interests); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return countries, nil
}

// GetCountry returns a single catalog record, or domain.ErrCountryNotFound.
func (r *Repository) GetCountry(ctx context.Context, code string) (*domain.Country, error) {
	c := &domain.Country{}

	err := r.q.QueryRow(ctx,
		`SELECT code, name, region, interests
		 FROM countries WHERE code = $1`,
		code,
	).Scan(&c.Code, &c.Name, &c.Region, &c.Interests)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCountryNotFound
		}
		return nil, fmt.Errorf("query country %s: %w", code, err)
	}

	return c, nil
}
