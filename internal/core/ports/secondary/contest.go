package secondary

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type ContestPort interface {
	Save(ctx context.Context, contest *domain.Contest) error
	Get(ctx context.Context, id string) (*domain.Contest, error)
}
