package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

var _ ILeaderboardService = (*LeaderboardService)(nil)

type LeaderboardService struct {
	// cacheMu orders snapshot writes against invalidation, so a snapshot read
	// before a score change is never cached after it.
	cacheMu sync.Mutex

	leaderboardRepo secondary.LeaderboardPort
	roundRepo       secondary.RoundPort
	submissionRepo  secondary.SubmissionPort
	cache           secondary.LeaderboardCache
	cacheTTL        time.Duration
	logger          primary.Logger
}

func NewLeaderboardService(
	leaderboardRepo secondary.LeaderboardPort,
	roundRepo secondary.RoundPort,
	submissionRepo secondary.SubmissionPort,
	cache secondary.LeaderboardCache,
	cacheTTL time.Duration,
	logger primary.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		leaderboardRepo: leaderboardRepo,
		roundRepo:       roundRepo,
		submissionRepo:  submissionRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		logger:          logger,
	}
}

func (s *LeaderboardService) List(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	entries, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("Leaderboard cache unavailable, reading storage", "error", err)
	}
	if ok {
		return entries, nil
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	entries, err = s.leaderboardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	if err := s.cache.Set(ctx, entries, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache leaderboard", "error", err)
	}
	return entries, nil
}

func (s *LeaderboardService) Recalculate(ctx context.Context, teamName string) (float64, error) {
	rounds, err := s.roundRepo.Scores(ctx, teamName)
	if err != nil {
		return 0, fmt.Errorf("failed to load round scores: %w", err)
	}
	stage1, err := s.submissionRepo.BestScore(ctx, teamName)
	if err != nil {
		return 0, fmt.Errorf("failed to load stage one score: %w", err)
	}

	total := domain.TeamScores{Stage1: stage1, Rounds: rounds}.Total()
	if err := s.leaderboardRepo.SaveScore(ctx, teamName, total); err != nil {
		return 0, fmt.Errorf("failed to save team score: %w", err)
	}
	s.cacheMu.Lock()
	err = s.cache.Invalidate(ctx)
	s.cacheMu.Unlock()
	if err != nil {
		s.logger.Warn("Failed to invalidate leaderboard cache", "error", err)
	}

	s.logger.Info("Team score recalculated", "team", teamName, "score", total)
	return total, nil
}

func (s *LeaderboardService) Refresh(ctx context.Context) error {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	entries, err := s.leaderboardRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leaderboard: %w", err)
	}
	if err := s.cache.Set(ctx, entries, s.cacheTTL); err != nil {
		return fmt.Errorf("failed to cache leaderboard: %w", err)
	}
	s.logger.Debug("Leaderboard cache refreshed", "teams", len(entries))
	return nil
}
