package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var _ ISubmissionService = (*SubmissionService)(nil)

type SubmissionService struct {
	teamRepo         secondary.TeamPort
	problemRepo      secondary.ProblemPort
	submissionRepo   secondary.SubmissionPort
	leaderboard      leaderboard.ILeaderboardService
	defaultContestID string
	logger           primary.Logger
}

func NewSubmissionService(
	teamRepo secondary.TeamPort,
	problemRepo secondary.ProblemPort,
	submissionRepo secondary.SubmissionPort,
	leaderboard leaderboard.ILeaderboardService,
	defaultContestID string,
	logger primary.Logger,
) *SubmissionService {
	return &SubmissionService{
		teamRepo:         teamRepo,
		problemRepo:      problemRepo,
		submissionRepo:   submissionRepo,
		leaderboard:      leaderboard,
		defaultContestID: defaultContestID,
		logger:           logger,
	}
}

// Submit scores a passing submission with the problem's full score and a
// failing one with zero, then updates the team total.
func (s *SubmissionService) Submit(ctx context.Context, sub *domain.CodeSubmission) (*domain.CodeSubmission, error) {
	sub.TeamName = strings.TrimSpace(sub.TeamName)
	if sub.TeamName == "" {
		return nil, errs.TeamNameRequired
	}
	status, err := normalizeStatus(sub.Status)
	if err != nil {
		return nil, err
	}
	sub.Status = status

	team, err := s.teamRepo.Get(ctx, sub.TeamName)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, errs.TeamNotFound
	}

	problem, err := s.problemRepo.Get(ctx, sub.ProblemID)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, errs.ProblemNotFound
	}

	if sub.ContestID == "" {
		sub.ContestID = s.defaultContestID
	}
	sub.ID = uuid.New()
	sub.SubmittedAt = time.Now()
	sub.Score = 0
	if sub.Status == domain.SubmissionPassed {
		sub.Score = problem.Score
	}

	if err := s.submissionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info("Code submission recorded",
		"team", sub.TeamName,
		"problemId", sub.ProblemID,
		"status", sub.Status,
		"score", sub.Score,
	)

	if _, err := s.leaderboard.Recalculate(ctx, sub.TeamName); err != nil {
		return nil, fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return sub, nil
}

func normalizeStatus(status string) (string, error) {
	switch {
	case strings.EqualFold(status, domain.SubmissionPassed):
		return domain.SubmissionPassed, nil
	case strings.EqualFold(status, domain.SubmissionFailed):
		return domain.SubmissionFailed, nil
	}
	return "", errs.InvalidStatus
}
