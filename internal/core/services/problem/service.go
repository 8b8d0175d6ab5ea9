package problem

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type IProblemService interface {
	CreateProblem(ctx context.Context, problem *domain.Problem) error

	// GetProblem returns errs.ProblemNotFound for unknown ids.
	GetProblem(ctx context.Context, id int) (*domain.Problem, error)
}
