package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wanderpick/recommendation-service/internal/cache"
	"github.com/wanderpick/recommendation-service/internal/domain"
	"github.com/wanderpick/recommendation-service/internal/engine"
	"github.com/wanderpick/recommendation-service/internal/repository"
)

const (
	batchConcurrency = 10
)

type Service struct {
	repo   *repository.Repository
	cache  *cache.Cache
	engine *engine.Engine
	log    *slog.Logger
}

func NewService(repo *repository.Repository, c *cache.Cache, e *engine.Engine, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  c,
		engine: e,
		log:    log,
	}
}

// GenerateRequest carries the per-request preference inputs. The traveler's
// home country comes from their stored record. Fresh bypasses the cache so a
// traveler can explicitly re-roll the batch.
type GenerateRequest struct {
	Interests         []string
	MaxFlightDuration domain.FlightDurationBucket
	Fresh             bool
}

func prefsFingerprint(req GenerateRequest) string {
	// Interest order is preserved: the first interest drives reason text, so
	// differently ordered sets are different preference states.
	return strings.Join(req.Interests, ",") + "|" + string(req.MaxFlightDuration)
}

func (s *Service) GetRecommendations(ctx context.Context, travelerID int64, req GenerateRequest) (*domain.RecommendationResult, error) {
	fingerprint := prefsFingerprint(req)

	if !req.Fresh {
		cached, found, err := s.cache.Get(ctx, travelerID, fingerprint)
		if err != nil {
			s.log.Warn("cache get failed", "traveler", travelerID, "err", err)
		}
		if found {
			return &domain.RecommendationResult{
				Recommendations: cached,
				CacheHit:        true,
			}, nil
		}
	}

	recs, err := s.generate(ctx, travelerID, req)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.Set(ctx, travelerID, fingerprint, recs); cacheErr != nil {
		s.log.Warn("cache set failed", "traveler", travelerID, "err", cacheErr)
	}

	return &domain.RecommendationResult{
		Recommendations: recs,
		CacheHit:        false,
	}, nil
}

func (s *Service) generate(ctx context.Context, travelerID int64, req GenerateRequest) ([]domain.CountryRecommendation, error) {
	traveler, err := s.repo.GetTravelerByID(ctx, travelerID)
	if err != nil {
		if errors.Is(err, domain.ErrTravelerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch traveler: %w", err)
	}

	catalog, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch country catalog: %w", err)
	}

	coords, err := s.repo.ListCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch coordinates: %w", err)
	}

	visited, err := s.repo.GetVisitedCodes(ctx, travelerID)
	if err != nil {
		return nil, fmt.Errorf("fetch visited countries: %w", err)
	}

	return s.engine.Generate(ctx, engine.Input{
		Preferences: domain.Preferences{
			HomeLocation:      traveler.HomeCountry,
			Interests:         req.Interests,
			MaxFlightDuration: req.MaxFlightDuration,
		},
		Catalog:     catalog,
		Coordinates: coords,
		Visited:     visited,
	})
}

// GetBatchRecommendations generates non-personalized batches (no interests,
// unbounded flight duration) for a page of travelers with a bounded worker
// pool.
func (s *Service) GetBatchRecommendations(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	travelerIDs, err := s.repo.GetTravelerIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch traveler ids: %w", err)
	}

	totalTravelers, err := s.repo.CountTravelers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count travelers: %w", err)
	}

	results := make([]domain.BatchTravelerResult, len(travelerIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, travelerID := range travelerIDs {
		wg.Add(1)
		go func(idx int, tid int64) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processTravelerForBatch(ctx, tid)
		}(i, travelerID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	elapsed := time.Since(start).Milliseconds()

	return &domain.BatchResponse{
		Page:           page,
		Limit:          limit,
		TotalTravelers: totalTravelers,
		Results:        results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: elapsed,
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Generates a batch for a single traveler, capturing errors.
func (s *Service) processTravelerForBatch(ctx context.Context, travelerID int64) domain.BatchTravelerResult {
	result, err := s.GetRecommendations(ctx, travelerID, GenerateRequest{
		MaxFlightDuration: domain.Duration12hPlus,
	})
	if err != nil {
		s.log.Warn("batch generation failed", "traveler", travelerID, "err", err)
		code, msg := categorizeError(err)
		return domain.BatchTravelerResult{
			TravelerID: travelerID,
			Status:     domain.StatusFailed,
			Error:      code,
			Message:    msg,
		}
	}

	return domain.BatchTravelerResult{
		TravelerID:      travelerID,
		Recommendations: result.Recommendations,
		Status:          domain.StatusSuccess,
	}
}

// MarkVisited records a visited country for a traveler and clears the
// traveler's cached batches so the country stops being recommended.
func (s *Service) MarkVisited(ctx context.Context, travelerID int64, countryCode string) error {
	if _, err := s.repo.GetCountry(ctx, countryCode); err != nil {
		return err
	}
	if _, err := s.repo.GetTravelerByID(ctx, travelerID); err != nil {
		return err
	}
	if err := s.repo.AddVisited(ctx, travelerID, countryCode); err != nil {
		return err
	}
	if err := s.cache.ClearTravelerCache(ctx, travelerID); err != nil {
		s.log.Warn("cache invalidation failed", "traveler", travelerID, "err", err)
	}
	return nil
}

// Handle response error
func categorizeError(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrTravelerNotFound):
		return "traveler_not_found", "traveler not found"
	case errors.Is(err, domain.ErrMissingHomeLocation):
		return "missing_home_location", "please select a home country"
	case domain.IsUnknownHomeCoordinates(err):
		return "unknown_home_coordinates", err.Error()
	case errors.Is(err, domain.ErrNoCandidates):
		return "no_candidates", "no countries match the criteria, try loosening flight duration or interests"
	}
	return "internal_error", "an unexpected error occurred"
}
