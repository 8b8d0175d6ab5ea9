package registration

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type IRegistrationService interface {
	// Register stores a new team and places it on the leaderboard at zero.
	Register(ctx context.Context, team *domain.Team) error

	// GetTeam returns errs.TeamNotFound for unknown names.
	GetTeam(ctx context.Context, name string) (*domain.Team, error)
}
