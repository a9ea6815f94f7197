package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanderpick/recommendation-service/internal/domain"
)

const defaultTTL = 10 * time.Minute

// Cache stores generated recommendation batches per traveler and preference
// fingerprint. Repeat requests inside the TTL see the same batch; marking a
// country visited invalidates every entry for that traveler.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Connect parses redisURL, creates a client, and verifies connectivity.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func buildKey(travelerID int64, fingerprint string) string {
	return fmt.Sprintf("rec:traveler:%d:prefs:%s", travelerID, fingerprint)
}

// Get returns a cached batch. found is false on a miss.
func (c *Cache) Get(ctx context.Context, travelerID int64, fingerprint string) ([]domain.CountryRecommendation, bool, error) {
	key := buildKey(travelerID, fingerprint)
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get recommendations from cache: %w", err)
	}

	var recs []domain.CountryRecommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal recommendations %s: %w", key, err)
	}

	return recs, true, nil
}

// Set stores a batch with the configured TTL.
func (c *Cache) Set(ctx context.Context, travelerID int64, fingerprint string, recs []domain.CountryRecommendation) error {
	key := buildKey(travelerID, fingerprint)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set recommendations in cache: %w", err)
	}

	return nil
}

// ClearTravelerCache removes every cached batch for a traveler. Used when the
// visited set changes.
func (c *Cache) ClearTravelerCache(ctx context.Context, travelerID int64) error {
	pattern := fmt.Sprintf("rec:traveler:%d:prefs:*", travelerID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
