package secondary

import (
	"context"
	"time"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type LeaderboardPort interface {
	SaveScore(ctx context.Context, teamName string, score float64) error
	// List returns every registered team ordered by score, highest first.
	List(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

type LeaderboardCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context) ([]domain.LeaderboardEntry, bool, error)
	Set(ctx context.Context, entries []domain.LeaderboardEntry, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
