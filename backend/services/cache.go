package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dsatracker/backend/models"
)

// LeaderboardCache stores the last computed leaderboard entries.
type LeaderboardCache interface {
	Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error)
	Set(ctx context.Context, entries []models.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// NoopCache never hits.
type NoopCache struct{}

func (NoopCache) Get(context.Context) ([]models.LeaderboardEntry, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, []models.LeaderboardEntry) error        { return nil }
func (NoopCache) Invalidate(context.Context) error                            { return nil }

const leaderboardCacheKey = "dsa-tracker:leaderboard:v1"

type RedisLeaderboardCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisLeaderboardCache(client redis.UniversalClient, ttl time.Duration) *RedisLeaderboardCache {
	return &RedisLeaderboardCache{client: client, ttl: ttl}
}

func (c *RedisLeaderboardCache) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	raw, err := c.client.Get(ctx, leaderboardCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

func (c *RedisLeaderboardCache) Set(ctx context.Context, entries []models.LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardCacheKey, raw, c.ttl).Err()
}

func (c *RedisLeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardCacheKey).Err()
}
