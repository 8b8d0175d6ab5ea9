package leaderboard

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type ILeaderboardService interface {
	// List returns every registered team ranked by total score.
	List(ctx context.Context) ([]domain.LeaderboardEntry, error)

	// Recalculate recomputes one team's total from its stage scores.
	Recalculate(ctx context.Context, teamName string) (float64, error)

	// Refresh reloads the ranking from storage into the cache.
	Refresh(ctx context.Context) error
}
