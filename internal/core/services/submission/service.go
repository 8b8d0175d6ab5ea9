package submission

import (
	"context"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

// ISubmissionService records the editor's stage one results.
type ISubmissionService interface {
	Submit(ctx context.Context, submission *domain.CodeSubmission) (*domain.CodeSubmission, error)
}
