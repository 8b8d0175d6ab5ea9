package contest

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type IContestService interface {
	CreateContest(ctx context.Context, contest *domain.Contest) error
	GetContest(ctx context.Context, id string) (*domain.Contest, error)
}
