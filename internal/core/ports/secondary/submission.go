package secondary

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

type SubmissionPort interface {
	Save(ctx context.Context, submission *domain.CodeSubmission) error
	// BestScore is the highest stage one score recorded for the team, 0 if none.
	BestScore(ctx context.Context, teamName string) (float64, error)
}
