package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderpick/recommendation-service/internal/domain"
	"github.com/wanderpick/recommendation-service/internal/geo"
)

// stubCosts returns a fixed breakdown so engine tests don't depend on the
// pricing table.
type stubCosts struct{}

func (stubCosts) CalculateCosts(ctx context.Context, countryCode string, distanceKm float64) domain.TierCosts {
	flight := int(distanceKm * 0.11)
	bd := func(mult int) domain.CostBreakdown {
		f := flight * mult
		return domain.CostBreakdown{Flight: f, Hotel: 100, Daily: 80, Total: f + 7*100 + 7*80}
	}
	return domain.TierCosts{Budget: bd(1), Modest: bd(2), Bougie: bd(3)}
}

func newTestEngine(seed int64) *Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(stubCosts{}, log, WithRandSource(func() *rand.Rand {
		return rand.New(rand.NewSource(seed))
	}))
}

// testCatalog spans enough regions and distances from Washington DC that a
// full-size batch is always possible with the 12h+ bucket.
func testCatalog() ([]domain.Country, map[string]domain.Coordinate) {
	catalog := []domain.Country{
		{Code: "CA", Name: "Canada", Region: "North America", Interests: []string{"action", "culture"}},
		{Code: "MX", Name: "Mexico", Region: "North America", Interests: []string{"weather", "relaxation"}},
		{Code: "CR", Name: "Costa Rica", Region: "Latin America & Caribbean", Interests: []string{"weather", "action"}},
		{Code: "BR", Name: "Brazil", Region: "Latin America & Caribbean", Interests: []string{"weather", "culture"}},
		{Code: "PE", Name: "Peru", Region: "Latin America & Caribbean", Interests: []string{"culture", "action"}},
		{Code: "FR", Name: "France", Region: "Europe & Central Asia", Interests: []string{"culture", "relaxation"}},
		{Code: "IT", Name: "Italy", Region: "Europe & Central Asia", Interests: []string{"culture", "weather"}},
		{Code: "ES", Name: "Spain", Region: "Europe & Central Asia", Interests: []string{"weather", "culture"}},
		{Code: "GR", Name: "Greece", Region: "Europe & Central Asia", Interests: []string{"weather", "relaxation"}},
		{Code: "MA", Name: "Morocco", Region: "Middle East & North Africa", Interests: []string{"culture", "action"}},
		{Code: "EG", Name: "Egypt", Region: "Middle East & North Africa", Interests: []string{"culture"}},
		{Code: "KE", Name: "Kenya", Region: "Sub-Saharan Africa", Interests: []string{"action"}},
		{Code: "ZA", Name: "South Africa", Region: "Sub-Saharan Africa", Interests: []string{"action", "weather"}},
		{Code: "IN", Name: "India", Region: "South Asia", Interests: []string{"culture", "action"}},
		{Code: "JP", Name: "Japan", Region: "East Asia & Pacific", Interests: []string{"culture", "action"}},
		{Code: "TH", Name: "Thailand", Region: "East Asia & Pacific", Interests: []string{"weather", "relaxation"}},
		{Code: "US", Name: "United States", Region: "North America", Interests: []string{"action", "culture"}},
	}
	coords := map[string]domain.Coordinate{
		"CA": {Lat: 45.4215, Lng: -75.6972},
		"MX": {Lat: 19.4326, Lng: -99.1332},
		"CR": {Lat: 9.9281, Lng: -84.0907},
		"BR": {Lat: -15.8267, Lng: -47.9218},
		"PE": {Lat: -12.0464, Lng: -77.0428},
		"FR": {Lat: 48.8566, Lng: 2.3522},
		"IT": {Lat: 41.9028, Lng: 12.4964},
		"ES": {Lat: 40.4168, Lng: -3.7038},
		"GR": {Lat: 37.9838, Lng: 23.7275},
		"MA": {Lat: 33.9716, Lng: -6.8498},
		"EG": {Lat: 30.0444, Lng: 31.2357},
		"KE": {Lat: -1.2921, Lng: 36.8219},
		"ZA": {Lat: -33.9249, Lng: 18.4241},
		"IN": {Lat: 28.6139, Lng: 77.209},
		"JP": {Lat: 35.6762, Lng: 139.6503},
		"TH": {Lat: 13.7563, Lng: 100.5018},
		"US": {Lat: 38.9072, Lng: -77.0369},
	}
	return catalog, coords
}

func defaultInput() Input {
	catalog, coords := testCatalog()
	return Input{
		Preferences: domain.Preferences{
			HomeLocation:      "US",
			Interests:         []string{"culture"},
			MaxFlightDuration: domain.Duration12hPlus,
		},
		Catalog:     catalog,
		Coordinates: coords,
	}
}

func TestGenerate_MissingHomeLocation(t *testing.T) {
	e := newTestEngine(1)
	in := defaultInput()
	in.Preferences.HomeLocation = ""

	_, err := e.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingHomeLocation))
}

func TestGenerate_UnknownHomeCoordinates(t *testing.T) {
	e := newTestEngine(1)
	in := defaultInput()
	in.Preferences.HomeLocation = "ZZ"

	_, err := e.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsUnknownHomeCoordinates(err))
	assert.Contains(t, err.Error(), "ZZ")
}

func TestGenerate_NoCandidates(t *testing.T) {
	e := newTestEngine(1)
	in := defaultInput()
	// Everything except home is marked visited.
	for _, c := range in.Catalog {
		if c.Code != "US" {
			in.Visited = append(in.Visited, c.Code)
		}
	}

	_, err := e.Generate(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoCandidates))
}

func TestGenerate_ExclusionInvariant(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		e := newTestEngine(seed)
		in := defaultInput()
		in.Visited = []string{"FR", "JP", "KE"}

		recs, err := e.Generate(context.Background(), in)
		require.NoError(t, err)

		for _, r := range recs {
			assert.NotEqual(t, "US", r.CountryCode, "home must never be recommended (seed %d)", seed)
			assert.NotContains(t, in.Visited, r.CountryCode, "visited countries are excluded (seed %d)", seed)
		}
	}
}

func TestGenerate_NoDuplicatesAndDistinctVerbs(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		e := newTestEngine(seed)
		recs, err := e.Generate(context.Background(), defaultInput())
		require.NoError(t, err)

		codes := make(map[string]bool)
		verbs := make(map[string]bool)
		for _, r := range recs {
			assert.False(t, codes[r.CountryCode], "country %s appears twice (seed %d)", r.CountryCode, seed)
			assert.False(t, verbs[r.ActionVerb], "verb %s assigned twice (seed %d)", r.ActionVerb, seed)
			codes[r.CountryCode] = true
			verbs[r.ActionVerb] = true
		}
	}
}

func TestGenerate_BatchSizeBound(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		e := newTestEngine(seed)
		recs, err := e.Generate(context.Background(), defaultInput())
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(recs), minTargetSize, "seed %d", seed)
		assert.LessOrEqual(t, len(recs), maxTargetSize, "seed %d", seed)
	}
}

func TestGenerate_SmallPoolReturnsPoolSize(t *testing.T) {
	// A single-region catalog collapses to at most regionCap entries after
	// the diversity filter, so the output equals the pool size.
	catalog, coords := testCatalog()
	var small []domain.Country
	for _, c := range catalog {
		if c.Region == "Europe & Central Asia" || c.Code == "US" {
			small = append(small, c)
		}
	}

	e := newTestEngine(9)
	recs, err := e.Generate(context.Background(), Input{
		Preferences: domain.Preferences{HomeLocation: "US", MaxFlightDuration: domain.Duration12hPlus},
		Catalog:     small,
		Coordinates: coords,
	})
	require.NoError(t, err)
	assert.Len(t, recs, regionCap)
}

func TestGenerate_DurationInvariant(t *testing.T) {
	_, coords := testCatalog()
	home := coords["US"]

	for seed := int64(0); seed < 25; seed++ {
		e := newTestEngine(seed)
		in := defaultInput()
		in.Preferences.MaxFlightDuration = domain.Duration6to12h

		recs, err := e.Generate(context.Background(), in)
		require.NoError(t, err)

		for _, r := range recs {
			dest := coords[r.CountryCode]
			km := geo.Distance(home.Lat, home.Lng, dest.Lat, dest.Lng)
			assert.LessOrEqual(t, geo.EstimateFlightHours(km), 12.0,
				"%s exceeds the 6-12h ceiling (seed %d)", r.CountryCode, seed)
		}
	}
}

func TestGenerate_SortedByScoreDesc(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		e := newTestEngine(seed)
		recs, err := e.Generate(context.Background(), defaultInput())
		require.NoError(t, err)

		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore, "seed %d", seed)
		}
	}
}

func TestGenerate_CostsAndImageURL(t *testing.T) {
	e := newTestEngine(4)
	recs, err := e.Generate(context.Background(), defaultInput())
	require.NoError(t, err)

	for _, r := range recs {
		assert.Nil(t, r.ImageURL, "image URL is filled by a later collaborator")
		assert.LessOrEqual(t, r.Costs.Budget.Flight, r.Costs.Modest.Flight)
		assert.LessOrEqual(t, r.Costs.Modest.Flight, r.Costs.Bougie.Flight)
		assert.NotEmpty(t, r.Reason)
	}
}

// Scenario A: with a 3-6h bucket from Washington DC, Ottawa (~1h) is eligible
// and Paris (~8h) never appears.
func TestGenerate_ScenarioA(t *testing.T) {
	catalog := []domain.Country{
		{Code: "FR", Name: "France", Region: "Europe & Central Asia", Interests: []string{"culture"}},
		{Code: "CA", Name: "Canada", Region: "North America", Interests: []string{"culture"}},
	}
	coords := map[string]domain.Coordinate{
		"US": {Lat: 38.9072, Lng: -77.0369},
		"FR": {Lat: 48.8566, Lng: 2.3522},
		"CA": {Lat: 45.4215, Lng: -75.6972},
	}

	for seed := int64(0); seed < 50; seed++ {
		e := newTestEngine(seed)
		recs, err := e.Generate(context.Background(), Input{
			Preferences: domain.Preferences{
				HomeLocation:      "US",
				Interests:         []string{"culture"},
				MaxFlightDuration: domain.Duration3to6h,
			},
			Catalog:     catalog,
			Coordinates: coords,
		})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "CA", recs[0].CountryCode, "seed %d", seed)
	}
}

// Scenario B: two unseeded runs may differ, but each must satisfy every
// invariant independently.
func TestGenerate_ScenarioB_UnseededRunsAreValid(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(stubCosts{}, log) // ambient random source

	for run := 0; run < 2; run++ {
		recs, err := e.Generate(context.Background(), defaultInput())
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(recs), minTargetSize)
		require.LessOrEqual(t, len(recs), maxTargetSize)

		verbs := make(map[string]bool)
		for _, r := range recs {
			assert.NotEqual(t, "US", r.CountryCode)
			assert.False(t, verbs[r.ActionVerb])
			verbs[r.ActionVerb] = true
		}
	}
}

// Scenario D: empty interests yield generic reasons and no interest bonus.
func TestGenerate_ScenarioD_EmptyInterests(t *testing.T) {
	e := newTestEngine(11)
	in := defaultInput()
	in.Preferences.Interests = nil

	recs, err := e.Generate(context.Background(), in)
	require.NoError(t, err)

	for _, r := range recs {
		assert.Contains(t, r.Reason, "diverse experiences")
		// base 50 + optional sweet spot 15 + noise in [-10, 10]
		assert.GreaterOrEqual(t, r.MatchScore, baseScore-noiseRange)
		assert.LessOrEqual(t, r.MatchScore, baseScore+sweetSpotBonus+noiseRange)
	}
}

func TestScoreCandidates_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	candidates := []scoredCandidate{
		{country: domain.Country{Code: "JP", Interests: []string{"culture", "action"}}, distanceKm: 5000}, // sweet spot
		{country: domain.Country{Code: "CA", Interests: []string{"culture"}}, distanceKm: 700},            // short haul
		{country: domain.Country{Code: "KE", Interests: []string{"action"}}, distanceKm: 12000},           // beyond sweet spot
	}

	for i := 0; i < 200; i++ {
		scoreCandidates(candidates, []string{"culture", "action"}, rng)

		// JP: 50 + 20 + 15 +- 10
		assert.InDelta(t, 85, candidates[0].score, noiseRange)
		// CA: 50 + 10 +- 10, no sweet spot at ~1.4h
		assert.InDelta(t, 60, candidates[1].score, noiseRange)
		// KE: 50 + 10 +- 10, 15.5h is past the sweet spot
		assert.InDelta(t, 60, candidates[2].score, noiseRange)
	}
}

func TestScoreCandidates_NoiseVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	candidates := []scoredCandidate{
		{country: domain.Country{Code: "JP"}, distanceKm: 5000},
	}

	seen := make(map[int]bool)
	for i := 0; i < 300; i++ {
		scoreCandidates(candidates, nil, rng)
		seen[candidates[0].score] = true
	}
	// 21 possible noise values; a few hundred draws should hit most of them.
	assert.Greater(t, len(seen), 15, "score noise should spread across the [-10,+10] band")
}

func TestDiversityFilter_RegionCap(t *testing.T) {
	var candidates []scoredCandidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, scoredCandidate{
			country: domain.Country{Code: fmt.Sprintf("E%d", i), Region: "Europe & Central Asia"},
			score:   100 - i,
		})
	}
	for i := 0; i < 5; i++ {
		candidates = append(candidates, scoredCandidate{
			country: domain.Country{Code: fmt.Sprintf("A%d", i), Region: "East Asia & Pacific"},
			score:   50 - i,
		})
	}

	pool := diversityFilter(candidates)

	counts := make(map[string]int)
	for _, c := range pool {
		counts[c.country.Region]++
	}
	assert.Equal(t, regionCap, counts["Europe & Central Asia"])
	assert.Equal(t, regionCap, counts["East Asia & Pacific"])

	// Highest-scored entries per region survive.
	assert.Equal(t, "E0", pool[0].country.Code)
}

func TestDiversityFilter_ScoredPoolInvariant(t *testing.T) {
	// End-to-end variant of the diversity invariant: filter + score + cap,
	// then no region exceeds the cap in the sampling pool.
	e := newTestEngine(13)
	in := defaultInput()

	home := in.Coordinates["US"]
	candidates := e.filterCandidates(in, home)
	scoreCandidates(candidates, in.Preferences.Interests, rand.New(rand.NewSource(13)))
	sortByScoreDesc(candidates)
	if len(candidates) > scoredPoolSize {
		candidates = candidates[:scoredPoolSize]
	}
	pool := diversityFilter(candidates)

	counts := make(map[string]int)
	for _, c := range pool {
		counts[c.country.Region]++
		assert.LessOrEqual(t, counts[c.country.Region], regionCap)
	}
}

func TestFilterCandidates_DropsMissingCoordinates(t *testing.T) {
	e := newTestEngine(1)
	in := defaultInput()
	delete(in.Coordinates, "JP")

	home := in.Coordinates["US"]
	candidates := e.filterCandidates(in, home)
	for _, c := range candidates {
		assert.NotEqual(t, "JP", c.country.Code)
	}
}
