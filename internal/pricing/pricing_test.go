package pricing

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	table CostTable
	err   error
	calls atomic.Int32
}

func (s *stubLoader) LoadCostTable(ctx context.Context) (CostTable, error) {
	s.calls.Add(1)
	return s.table, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleTable() CostTable {
	return CostTable{
		"JP": {
			TierBudget: {HotelPerNight: 60, DailyPerPerson: 50},
			TierModest: {HotelPerNight: 140, DailyPerPerson: 100},
			TierBougie: {HotelPerNight: 400, DailyPerPerson: 250},
		},
	}
}

func TestCalculateCosts_TableEntry(t *testing.T) {
	e := NewEstimator(&stubLoader{table: sampleTable()}, discardLogger())

	costs := e.CalculateCosts(context.Background(), "JP", 10000)

	assert.Equal(t, 60, costs.Budget.Hotel)
	assert.Equal(t, 140, costs.Modest.Hotel)
	assert.Equal(t, 400, costs.Bougie.Hotel)
	assert.Equal(t, 100, costs.Modest.Daily)
}

func TestCalculateCosts_FlightMonotonicAcrossTiers(t *testing.T) {
	e := NewEstimator(&stubLoader{table: sampleTable()}, discardLogger())

	for _, km := range []float64{100, 730, 6170, 10900} {
		costs := e.CalculateCosts(context.Background(), "JP", km)
		assert.LessOrEqual(t, costs.Budget.Flight, costs.Modest.Flight, "budget <= modest at %v km", km)
		assert.LessOrEqual(t, costs.Modest.Flight, costs.Bougie.Flight, "modest <= bougie at %v km", km)
	}
}

func TestCalculateCosts_TotalIdentity(t *testing.T) {
	e := NewEstimator(&stubLoader{table: sampleTable()}, discardLogger())

	costs := e.CalculateCosts(context.Background(), "JP", 6170)

	check := func(name string, flight, hotel, daily, total int) {
		assert.Equal(t, flight+7*hotel+7*daily, total, "%s total identity", name)
	}
	check("budget", costs.Budget.Flight, costs.Budget.Hotel, costs.Budget.Daily, costs.Budget.Total)
	check("modest", costs.Modest.Flight, costs.Modest.Hotel, costs.Modest.Daily, costs.Modest.Total)
	check("bougie", costs.Bougie.Flight, costs.Bougie.Hotel, costs.Bougie.Daily, costs.Bougie.Total)
}

func TestCalculateCosts_MissingCountryUsesFallbacks(t *testing.T) {
	e := NewEstimator(&stubLoader{table: sampleTable()}, discardLogger())

	// Country with no table entry degrades to hotel=100, daily=80.
	costs := e.CalculateCosts(context.Background(), "XX", 1000)
	assert.Equal(t, 100, costs.Modest.Hotel)
	assert.Equal(t, 80, costs.Modest.Daily)
	assert.Equal(t, 100, costs.Bougie.Hotel)
}

func TestCalculateCosts_LoadFailureDegrades(t *testing.T) {
	loader := &stubLoader{err: errors.New("connection refused")}
	e := NewEstimator(loader, discardLogger())

	costs := e.CalculateCosts(context.Background(), "JP", 1000)
	assert.Equal(t, 100, costs.Budget.Hotel)
	assert.Equal(t, 80, costs.Budget.Daily)
}

func TestCalculateCosts_TableLoadedOnce(t *testing.T) {
	loader := &stubLoader{table: sampleTable()}
	e := NewEstimator(loader, discardLogger())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		e.CalculateCosts(ctx, "JP", 500)
	}
	require.Equal(t, int32(1), loader.calls.Load())
}

func TestCalculateCosts_NonNegative(t *testing.T) {
	e := NewEstimator(&stubLoader{table: sampleTable()}, discardLogger())

	costs := e.CalculateCosts(context.Background(), "JP", 0)
	assert.GreaterOrEqual(t, costs.Budget.Flight, 0)
	assert.GreaterOrEqual(t, costs.Budget.Total, 0)
}
