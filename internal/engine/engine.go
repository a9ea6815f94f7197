// Package engine generates destination recommendations: it filters the
// country catalog by flight feasibility, scores candidates with controlled
// randomness, samples a region-diverse selection, and enriches each pick
// with costs, reason text, and a batch-distinct action verb.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/wanderpick/recommendation-service/internal/domain"
	"github.com/wanderpick/recommendation-service/internal/geo"
	"github.com/wanderpick/recommendation-service/internal/phrase"
)

const (
	baseScore      = 50
	interestBonus  = 10
	sweetSpotBonus = 15
	noiseRange     = 10 // score noise is uniform in [-noiseRange, +noiseRange]

	scoredPoolSize = 25
	regionCap      = 3
	minTargetSize  = 6
	maxTargetSize  = 8

	sweetSpotMinHours = 4.0
	sweetSpotMaxHours = 10.0
)

// CostEstimator produces the per-tier cost breakdown for one destination.
type CostEstimator interface {
	CalculateCosts(ctx context.Context, countryCode string, distanceKm float64) domain.TierCosts
}

// Input carries everything one generation run consumes. The catalog and
// coordinate table are treated as read-only.
type Input struct {
	Preferences domain.Preferences
	Catalog     []domain.Country
	Coordinates map[string]domain.Coordinate
	Visited     []string
}

// scoredCandidate is ephemeral per-run state; created and discarded within
// one Generate call.
type scoredCandidate struct {
	country    domain.Country
	score      int
	distanceKm float64
}

type Engine struct {
	costs  CostEstimator
	log    *slog.Logger
	newRNG func() *rand.Rand
}

type Option func(*Engine)

// WithRandSource overrides the per-run random source factory. Tests supply a
// seeded source to pin down the otherwise intentionally varied output.
func WithRandSource(newRNG func() *rand.Rand) Option {
	return func(e *Engine) { e.newRNG = newRNG }
}

func New(costs CostEstimator, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		costs: costs,
		log:   log,
		newRNG: func() *rand.Rand {
			// rand.Int63 is the process-wide thread-safe source, so
			// concurrent runs get independent streams.
			return rand.New(rand.NewSource(rand.Int63()))
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs the full pipeline. Two calls with identical inputs may
// legitimately return different results; the noise and sampling are part of
// the product contract, not a defect. It either fully succeeds or fails with
// one of the three validation errors; there are no partial results.
func (e *Engine) Generate(ctx context.Context, in Input) ([]domain.CountryRecommendation, error) {
	home, err := homeCoordinate(in)
	if err != nil {
		return nil, err
	}

	rng := e.newRNG()

	candidates := e.filterCandidates(in, home)
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	eligible := len(candidates)

	scoreCandidates(candidates, in.Preferences.Interests, rng)

	sortByScoreDesc(candidates)
	if len(candidates) > scoredPoolSize {
		candidates = candidates[:scoredPoolSize]
	}

	pool := diversityFilter(candidates)

	target := minTargetSize + rng.Intn(maxTargetSize-minTargetSize+1)
	if target > len(pool) {
		target = len(pool)
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	selection := pool[:target]

	recs, err := e.enrich(ctx, selection, in.Preferences.Interests, rng)
	if err != nil {
		return nil, err
	}

	e.log.Debug("generation complete",
		"eligible", eligible, "pool", len(pool), "selected", len(selection))

	return recs, nil
}

func homeCoordinate(in Input) (domain.Coordinate, error) {
	code := in.Preferences.HomeLocation
	if code == "" {
		return domain.Coordinate{}, domain.ErrMissingHomeLocation
	}
	coord, ok := in.Coordinates[code]
	if !ok {
		return domain.Coordinate{}, &domain.UnknownHomeCoordinatesError{CountryCode: code}
	}
	return coord, nil
}

// filterCandidates drops the home country, visited countries, countries
// without coordinates, and anything whose estimated flight time exceeds the
// preference bucket's ceiling.
func (e *Engine) filterCandidates(in Input, home domain.Coordinate) []scoredCandidate {
	visited := make(map[string]bool, len(in.Visited))
	for _, code := range in.Visited {
		visited[code] = true
	}

	ceiling, ok := in.Preferences.MaxFlightDuration.CeilingHours()
	if !ok {
		ceiling = math.Inf(1)
	}

	var candidates []scoredCandidate
	for _, c := range in.Catalog {
		if c.Code == in.Preferences.HomeLocation || visited[c.Code] {
			continue
		}
		coord, ok := in.Coordinates[c.Code]
		if !ok {
			continue
		}

		km := geo.Distance(home.Lat, home.Lng, coord.Lat, coord.Lng)
		if geo.EstimateFlightHours(km) > ceiling {
			continue
		}

		candidates = append(candidates, scoredCandidate{country: c, distanceKm: km})
	}
	return candidates
}

// scoreCandidates assigns the composite score in place: base 50, +10 per
// matching interest, +15 when flight time lands in the sweet-spot band, plus
// uniform integer noise so repeat runs surface different but still relevant
// results.
func scoreCandidates(candidates []scoredCandidate, interests []string, rng *rand.Rand) {
	for i := range candidates {
		score := baseScore

		for _, tag := range interests {
			if candidates[i].country.HasInterest(tag) {
				score += interestBonus
			}
		}

		hours := geo.EstimateFlightHours(candidates[i].distanceKm)
		if hours >= sweetSpotMinHours && hours <= sweetSpotMaxHours {
			score += sweetSpotBonus
		}

		score += rng.Intn(2*noiseRange+1) - noiseRange

		candidates[i].score = score
	}
}

func sortByScoreDesc(candidates []scoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
}

// diversityFilter walks candidates in score order and admits each one only
// while its region holds fewer than regionCap entries, so no single region
// can dominate the pre-sampling pool.
func diversityFilter(candidates []scoredCandidate) []scoredCandidate {
	counts := make(map[string]int)
	pool := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if counts[c.country.Region] >= regionCap {
			continue
		}
		counts[c.country.Region]++
		pool = append(pool, c)
	}
	return pool
}

// enrich attaches costs, reason text, and verbs to the selection. Cost
// calculations have no cross-candidate state and run concurrently; verb
// assignment is a single batched call afterwards so distinctness holds
// across the whole selection. Final order is score descending, nearer
// destination first on ties.
func (e *Engine) enrich(ctx context.Context, selection []scoredCandidate, interests []string, rng *rand.Rand) ([]domain.CountryRecommendation, error) {
	recs := make([]domain.CountryRecommendation, len(selection))

	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range selection {
		i, cand := i, cand
		g.Go(func() error {
			recs[i].Costs = e.costs.CalculateCosts(gctx, cand.country.Code, cand.distanceKm)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enrich costs: %w", err)
	}

	phrases := phrase.NewGenerator(rng)

	batch := make([]phrase.BatchCountry, len(selection))
	for i, cand := range selection {
		recs[i].CountryCode = cand.country.Code
		recs[i].CountryName = cand.country.Name
		recs[i].MatchScore = cand.score
		recs[i].Reason = phrases.Reason(cand.country.Name, interests)
		batch[i] = phrase.BatchCountry{Code: cand.country.Code, Region: cand.country.Region}
	}

	verbs, err := phrases.VerbsForBatch(batch)
	if err != nil {
		return nil, fmt.Errorf("assign verbs: %w", err)
	}
	for i := range recs {
		recs[i].ActionVerb = verbs[i]
	}

	order := make([]int, len(recs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if recs[order[a]].MatchScore != recs[order[b]].MatchScore {
			return recs[order[a]].MatchScore > recs[order[b]].MatchScore
		}
		return selection[order[a]].distanceKm < selection[order[b]].distanceKm
	})

	out := make([]domain.CountryRecommendation, len(recs))
	for i, idx := range order {
		out[i] = recs[idx]
	}
	return out, nil
}
