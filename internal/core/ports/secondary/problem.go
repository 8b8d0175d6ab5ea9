package secondary

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type ProblemPort interface {
	Save(ctx context.Context, problem *domain.Problem) error
	// Get returns nil, nil when the problem does not exist.
	Get(ctx context.Context, id int) (*domain.Problem, error)
}
