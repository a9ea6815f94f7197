package pricing

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

// Tier is one of the three budget levels.
type Tier string

const (
	TierBudget Tier = "budget"
	TierModest Tier = "modest"
	TierBougie Tier = "bougie"
)

var Tiers = []Tier{TierBudget, TierModest, TierBougie}

// StayCosts are the per-tier nightly and daily figures for one country.
type StayCosts struct {
	HotelPerNight  int
	DailyPerPerson int
}

// CostTable maps country code -> tier -> stay costs. Partial tables are
// expected; missing entries fall back to constants.
type CostTable map[string]map[Tier]StayCosts

// TableLoader supplies the external country-cost table.
type TableLoader interface {
	LoadCostTable(ctx context.Context) (CostTable, error)
}

const (
	tripNights = 7

	// Modest flight rate per kilometer, USD.
	baseRatePerKm = 0.11

	// Substituted when the table lacks a country or tier entry.
	fallbackHotelPerNight  = 100
	fallbackDailyPerPerson = 80
)

// Multipliers are strictly increasing budget -> modest -> bougie so flight
// cost ordering across tiers always holds for the same destination.
var tierMultipliers = map[Tier]float64{
	TierBudget: 0.7,
	TierModest: 1.0,
	TierBougie: 2.0,
}

// Estimator produces per-tier cost breakdowns. The cost table is loaded once
// on first use and cached for the process lifetime; a load failure degrades
// to an empty table (all fallbacks) and is logged, never raised.
type Estimator struct {
	loader TableLoader
	log    *slog.Logger

	once  sync.Once
	table CostTable
}

func NewEstimator(loader TableLoader, log *slog.Logger) *Estimator {
	return &Estimator{loader: loader, log: log}
}

// CalculateCosts returns the three-tier breakdown for a destination at the
// given flight distance. It never fails: missing cost data degrades to the
// documented fallback constants.
func (e *Estimator) CalculateCosts(ctx context.Context, countryCode string, distanceKm float64) domain.TierCosts {
	e.once.Do(func() { e.load(ctx) })

	return domain.TierCosts{
		Budget: e.tierBreakdown(countryCode, TierBudget, distanceKm),
		Modest: e.tierBreakdown(countryCode, TierModest, distanceKm),
		Bougie: e.tierBreakdown(countryCode, TierBougie, distanceKm),
	}
}

func (e *Estimator) load(ctx context.Context) {
	table, err := e.loader.LoadCostTable(ctx)
	if err != nil {
		e.log.Warn("cost table load failed, using fallback constants", "err", err)
		e.table = CostTable{}
		return
	}
	e.table = table
	e.log.Info("cost table loaded", "countries", len(table))
}

func (e *Estimator) tierBreakdown(countryCode string, tier Tier, distanceKm float64) domain.CostBreakdown {
	flight := int(math.Round(distanceKm * baseRatePerKm * tierMultipliers[tier]))

	hotel := fallbackHotelPerNight
	daily := fallbackDailyPerPerson
	if stay, ok := e.table[countryCode][tier]; ok {
		hotel = stay.HotelPerNight
		daily = stay.DailyPerPerson
	}

	return domain.CostBreakdown{
		Flight: flight,
		Hotel:  hotel,
		Daily:  daily,
		Total:  flight + tripNights*hotel + tripNights*daily,
	}
}
