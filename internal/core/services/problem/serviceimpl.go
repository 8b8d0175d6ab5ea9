package problem

import (
	"context"
	"strings"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var _ IProblemService = (*ProblemService)(nil)

type ProblemService struct {
	problemRepo      secondary.ProblemPort
	defaultContestID string
	logger           primary.Logger
}

func NewProblemService(problemRepo secondary.ProblemPort, defaultContestID string, logger primary.Logger) *ProblemService {
	return &ProblemService{
		problemRepo:      problemRepo,
		defaultContestID: defaultContestID,
		logger:           logger,
	}
}

func (s *ProblemService) CreateProblem(ctx context.Context, problem *domain.Problem) error {
	problem.Title = strings.TrimSpace(problem.Title)
	if problem.ContestID == "" {
		problem.ContestID = s.defaultContestID
	}

	var problems errs.ValidationErrors
	if problem.ID <= 0 {
		problems = append(problems, errs.FieldError{Field: "problem_id", Msg: "must be a positive integer"})
	}
	if problem.Title == "" {
		problems = append(problems, errs.FieldError{Field: "title", Msg: "field required"})
	}
	if len(problem.TestCases) == 0 {
		problems = append(problems, errs.FieldError{Field: "test_cases", Msg: "at least one test case is required"})
	}
	if problem.Score < 0 {
		problems = append(problems, errs.FieldError{Field: "score", Msg: "must not be negative"})
	}
	if len(problems) > 0 {
		return problems
	}

	if err := s.problemRepo.Save(ctx, problem); err != nil {
		return err
	}
	s.logger.Info("Problem saved", "problemId", problem.ID, "testCases", len(problem.TestCases))
	return nil
}

func (s *ProblemService) GetProblem(ctx context.Context, id int) (*domain.Problem, error) {
	problem, err := s.problemRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if problem == nil {
		return nil, errs.ProblemNotFound
	}
	return problem, nil
}
