package secondary

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type TeamPort interface {
	// Create inserts a team, returning errs.TeamAlreadyRegistered on a duplicate name.
	Create(ctx context.Context, team *domain.Team) error
	// Get returns nil, nil when the team does not exist.
	Get(ctx context.Context, name string) (*domain.Team, error)
	ListNames(ctx context.Context) ([]string, error)
}
