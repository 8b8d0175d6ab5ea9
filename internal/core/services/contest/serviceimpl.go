package contest

import (
	"context"
	"strings"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var _ IContestService = (*ContestService)(nil)

type ContestService struct {
	contestRepo secondary.ContestPort
	logger      primary.Logger
}

func NewContestService(contestRepo secondary.ContestPort, logger primary.Logger) *ContestService {
	return &ContestService{
		contestRepo: contestRepo,
		logger:      logger,
	}
}

func (s *ContestService) CreateContest(ctx context.Context, contest *domain.Contest) error {
	contest.ID = strings.TrimSpace(contest.ID)
	var problems errs.ValidationErrors
	if contest.ID == "" {
		problems = append(problems, errs.FieldError{Field: "contest_id", Msg: "field required"})
	}
	if !contest.EndTime.IsZero() && contest.EndTime.Before(contest.StartTime) {
		problems = append(problems, errs.FieldError{Field: "end_time", Msg: "must not be before start_time"})
	}
	if len(problems) > 0 {
		return problems
	}

	if err := s.contestRepo.Save(ctx, contest); err != nil {
		return err
	}
	s.logger.Info("Contest saved", "contestId", contest.ID)
	return nil
}

func (s *ContestService) GetContest(ctx context.Context, id string) (*domain.Contest, error) {
	contest, err := s.contestRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if contest == nil {
		return nil, errs.ContestNotFound
	}
	return contest, nil
}
