package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
)

// SchedulerEngine runs the server's periodic background work.
type SchedulerEngine struct {
	LeaderboardCfg *config.LeaderboardCfg
	leaderboard    leaderboard.ILeaderboardService
	logger         primary.Logger
	wg             sync.WaitGroup
}

func NewSchedulerEngine(
	leaderboardCfg *config.LeaderboardCfg,
	leaderboard leaderboard.ILeaderboardService,
	logger primary.Logger,
) *SchedulerEngine {
	return &SchedulerEngine{
		LeaderboardCfg: leaderboardCfg,
		leaderboard:    leaderboard,
		logger:         logger,
	}
}

// StartLeaderboardRefresh warms the ranking cache immediately and then on
// every tick until ctx is cancelled.
func (s *SchedulerEngine) StartLeaderboardRefresh(ctx context.Context) {
	interval := s.LeaderboardCfg.RefreshInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.refreshLeaderboard(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refreshLeaderboard(ctx)
			}
		}
	}()
}

// Wait blocks until every started task has returned.
func (s *SchedulerEngine) Wait() {
	s.wg.Wait()
}

func (s *SchedulerEngine) refreshLeaderboard(ctx context.Context) {
	if err := s.leaderboard.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("Failed to refresh leaderboard cache", "error", err)
	}
}
