package secondary

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type RoundPort interface {
	// Upsert stores the team's submission for the round, replacing an earlier one.
	Upsert(ctx context.Context, record *domain.RoundRecord) error
	// SetScore grades an existing submission. It reports false when the team
	// has not submitted the round.
	SetScore(ctx context.Context, round domain.Round, teamName string, score float64) (bool, error)
	// Scores returns the score of every round the team has submitted.
	Scores(ctx context.Context, teamName string) (map[domain.Round]float64, error)
}
