package leaderboardcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

var _ secondary.LeaderboardCache = (*LeaderboardCache)(nil)

const (
	leaderboardKey    = "leaderboard:ranking"
	defaultExpiration = time.Minute
)

// LeaderboardCache keeps the ranked leaderboard as one JSON value in Redis.
type LeaderboardCache struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewLeaderboardCache(redisClient *redis.Client, logger primary.Logger) *LeaderboardCache {
	return &LeaderboardCache{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool, error) {
	data, err := c.redisClient.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		c.logger.Error("Failed to get cached leaderboard", "error", err)
		return nil, false, fmt.Errorf("failed to get cached leaderboard: %w", err)
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Error("Failed to unmarshal cached leaderboard", "error", err)
		return nil, false, fmt.Errorf("failed to unmarshal cached leaderboard: %w", err)
	}

	return entries, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []domain.LeaderboardEntry, ttl time.Duration) error {
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if ttl <= 0 {
		ttl = defaultExpiration
	}

	if err := c.redisClient.Set(ctx, leaderboardKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to cache leaderboard", "error", err)
		return fmt.Errorf("failed to cache leaderboard: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.redisClient.Del(ctx, leaderboardKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate leaderboard cache", "error", err)
		return fmt.Errorf("failed to invalidate leaderboard cache: %w", err)
	}
	return nil
}
