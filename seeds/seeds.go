package seeds

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedCountry bundles one catalog row with its capital coordinate and a cost
// level (1 cheap .. 3 expensive) that drives the generated cost table.
type seedCountry struct {
	code      string
	name      string
	region    string
	interests []string
	lat, lng  float64
	costLevel int
}

var countries = []seedCountry{
	{"US", "United States", "North America", []string{"action", "culture"}, 38.9072, -77.0369, 3},
	{"CA", "Canada", "North America", []string{"action", "culture"}, 45.4215, -75.6972, 3},
	{"MX", "Mexico", "North America", []string{"weather", "relaxation", "culture"}, 19.4326, -99.1332, 1},
	{"CR", "Costa Rica", "Latin America & Caribbean", []string{"weather", "action", "relaxation"}, 9.9281, -84.0907, 2},
	{"BR", "Brazil", "Latin America & Caribbean", []string{"weather", "culture", "action"}, -15.8267, -47.9218, 1},
	{"PE", "Peru", "Latin America & Caribbean", []string{"culture", "action"}, -12.0464, -77.0428, 1},
	{"AR", "Argentina", "Latin America & Caribbean", []string{"culture", "action"}, -34.6037, -58.3816, 1},
	{"CO", "Colombia", "Latin America & Caribbean", []string{"weather", "culture"}, 4.711, -74.0721, 1},
	{"JM", "Jamaica", "Latin America & Caribbean", []string{"weather", "relaxation"}, 17.9714, -76.7936, 2},
	{"FR", "France", "Europe & Central Asia", []string{"culture", "relaxation"}, 48.8566, 2.3522, 3},
	{"IT", "Italy", "Europe & Central Asia", []string{"culture", "weather", "relaxation"}, 41.9028, 12.4964, 3},
	{"ES", "Spain", "Europe & Central Asia", []string{"weather", "culture", "relaxation"}, 40.4168, -3.7038, 2},
	{"PT", "Portugal", "Europe & Central Asia", []string{"weather", "relaxation"}, 38.7223, -9.1393, 2},
	{"GR", "Greece", "Europe & Central Asia", []string{"weather", "relaxation", "culture"}, 37.9838, 23.7275, 2},
	{"GB", "United Kingdom", "Europe & Central Asia", []string{"culture"}, 51.5074, -0.1278, 3},
	{"DE", "Germany", "Europe & Central Asia", []string{"culture", "action"}, 52.52, 13.405, 3},
	{"NL", "Netherlands", "Europe & Central Asia", []string{"culture", "relaxation"}, 52.3676, 4.9041, 3},
	{"CH", "Switzerland", "Europe & Central Asia", []string{"action", "relaxation"}, 46.948, 7.4474, 3},
	{"IS", "Iceland", "Europe & Central Asia", []string{"action", "relaxation"}, 64.1466, -21.9426, 3},
	{"HR", "Croatia", "Europe & Central Asia", []string{"weather", "relaxation"}, 45.815, 15.9819, 2},
	{"TR", "Turkey", "Europe & Central Asia", []string{"culture", "weather"}, 39.9334, 32.8597, 1},
	{"MA", "Morocco", "Middle East & North Africa", []string{"culture", "action"}, 33.9716, -6.8498, 1},
	{"EG", "Egypt", "Middle East & North Africa", []string{"culture"}, 30.0444, 31.2357, 1},
	{"JO", "Jordan", "Middle East & North Africa", []string{"culture", "action"}, 31.9454, 35.9284, 2},
	{"AE", "United Arab Emirates", "Middle East & North Africa", []string{"weather", "action"}, 24.4539, 54.3773, 3},
	{"KE", "Kenya", "Sub-Saharan Africa", []string{"action"}, -1.2921, 36.8219, 2},
	{"TZ", "Tanzania", "Sub-Saharan Africa", []string{"action", "weather"}, -6.7924, 39.2083, 2},
	{"ZA", "South Africa", "Sub-Saharan Africa", []string{"action", "weather", "culture"}, -33.9249, 18.4241, 1},
	{"IN", "India", "South Asia", []string{"culture", "action"}, 28.6139, 77.209, 1},
	{"LK", "Sri Lanka", "South Asia", []string{"weather", "relaxation", "culture"}, 6.9271, 79.8612, 1},
	{"NP", "Nepal", "South Asia", []string{"action", "culture"}, 27.7172, 85.324, 1},
	{"JP", "Japan", "East Asia & Pacific", []string{"culture", "action"}, 35.6762, 139.6503, 3},
	{"TH", "Thailand", "East Asia & Pacific", []string{"weather", "relaxation", "culture"}, 13.7563, 100.5018, 1},
	{"VN", "Vietnam", "East Asia & Pacific", []string{"weather", "culture"}, 21.0285, 105.8542, 1},
	{"ID", "Indonesia", "East Asia & Pacific", []string{"weather", "relaxation", "action"}, -6.2088, 106.8456, 1},
	{"AU", "Australia", "East Asia & Pacific", []string{"action", "weather"}, -35.2809, 149.13, 3},
	{"NZ", "New Zealand", "East Asia & Pacific", []string{"action", "relaxation"}, -41.2866, 174.7756, 3},
	{"KR", "South Korea", "East Asia & Pacific", []string{"culture", "action"}, 37.5665, 126.978, 2},
}

// Countries deliberately left out of the cost table so fallback pricing gets
// exercised end to end.
var missingCostCountries = map[string]bool{"NP": true, "JM": true}

func Setup(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	rng := rand.New(rand.NewSource(42))

	log.Info("seed: truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE visited_countries, travelers, country_costs, country_coordinates, countries
		RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Info("seed: inserting countries")
	if err := seedCountries(ctx, pool); err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}

	log.Info("seed: inserting coordinates")
	if err := seedCoordinates(ctx, pool); err != nil {
		return fmt.Errorf("seed coordinates: %w", err)
	}

	log.Info("seed: inserting costs")
	if err := seedCosts(ctx, pool, rng); err != nil {
		return fmt.Errorf("seed costs: %w", err)
	}

	log.Info("seed: inserting travelers")
	if err := seedTravelers(ctx, pool, rng, 12); err != nil {
		return fmt.Errorf("seed travelers: %w", err)
	}

	log.Info("seed: inserting visited countries")
	if err := seedVisited(ctx, pool, rng, 40); err != nil {
		return fmt.Errorf("seed visited countries: %w", err)
	}

	log.Info("seed: complete")
	return nil
}

func seedCountries(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for _, c := range countries {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, c.code, c.name, c.region, c.interests)
	}

	query := "INSERT INTO countries (code, name, region, interests) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedCoordinates(ctx context.Context, pool *pgxpool.Pool) error {
	rows := []string{}
	args := []any{}

	for _, c := range countries {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, c.code, c.lat, c.lng)
	}

	query := "INSERT INTO country_coordinates (country_code, lat, lng) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedCosts(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) error {
	// Tier multipliers over a cost-level base, with a little jitter so the
	// table doesn't look machine-generated.
	type tierSpec struct {
		name       string
		hotelMult  float64
		dailyMult  float64
	}
	tiers := []tierSpec{
		{"budget", 0.5, 0.5},
		{"modest", 1.0, 1.0},
		{"bougie", 2.8, 2.2},
	}

	rows := []string{}
	args := []any{}

	for _, c := range countries {
		if missingCostCountries[c.code] {
			continue
		}

		baseHotel := 40.0 * float64(c.costLevel)
		baseDaily := 35.0 * float64(c.costLevel)

		for _, t := range tiers {
			jitter := 0.85 + rng.Float64()*0.3
			hotel := int(math.Round(baseHotel * t.hotelMult * jitter))
			daily := int(math.Round(baseDaily * t.dailyMult * jitter))

			base := len(args)
			rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
			args = append(args, c.code, t.name, hotel, daily)
		}
	}

	query := "INSERT INTO country_costs (country_code, tier, hotel_per_night, daily_per_person) VALUES " +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedTravelers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		home := countries[rng.Intn(len(countries))].code
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))

		base := i * 2
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, home, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO travelers (home_country, created_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedVisited(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	seen := make(map[[2]string]bool)

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		travelerID := int64(rng.Intn(12) + 1)
		country := countries[rng.Intn(len(countries))].code

		key := [2]string{fmt.Sprint(travelerID), country}
		if seen[key] {
			continue
		}
		seen[key] = true

		visitedAt := time.Now().AddDate(0, 0, -rng.Intn(720))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, travelerID, country, visitedAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO visited_countries (traveler_id, country_code, visited_at) VALUES " +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}
