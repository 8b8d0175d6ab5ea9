package round

import (
	"context"
	"io"

	"gitlab.com/stark-bootcamp.net/internal/domain"
)

// Upload is one file attached to a round submission.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Input is a decoded round submission. Fields holds the round's form fields
// keyed by their wire names. A score_N sent by the client is not carried:
// scores only change through Grade.
type Input struct {
	Round    domain.Round
	TeamName string
	Fields   map[string]string
	Files    []Upload
}

type IRoundService interface {
	// Submit uploads the files, stores the round and updates the team total.
	Submit(ctx context.Context, in Input) (*domain.UploadResponse, error)

	// Grade sets the score of an existing round submission.
	Grade(ctx context.Context, round domain.Round, teamName string, score float64) (float64, error)
}
