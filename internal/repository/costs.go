package repository

import (
	"context"
	"fmt"

	"github.com/wanderpick/recommendation-service/internal/pricing"
)

// LoadCostTable reads the full per-country, per-tier cost table. It satisfies
// pricing.TableLoader; the estimator calls it once and caches the result.
func (r *Repository) LoadCostTable(ctx context.Context) (pricing.CostTable, error) {
	rows, err := r.q.Query(ctx,
		`SELECT country_code, tier, hotel_per_night, daily_per_person
		 FROM country_costs`,
	)
	if err != nil {
		return nil, fmt.Errorf("query country costs: %w", err)
	}
	defer rows.Close()

	table := make(pricing.CostTable)
	for rows.Next() {
		var code, tier string
		var stay pricing.StayCosts
		if err := rows.Scan(&code, &tier, &stay.HotelPerNight, &stay.DailyPerPerson); err != nil {
			return nil, fmt.Errorf("scan country cost: %w", err)
		}
		if table[code] == nil {
			table[code] = make(map[pricing.Tier]pricing.StayCosts, 3)
		}
		table[code][pricing.Tier(tier)] = stay
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate country costs: %w", err)
	}
	return table, nil
}
