package round

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var _ IRoundService = (*RoundService)(nil)

type fieldSpec struct {
	name     string
	required bool
}

var roundFields = map[domain.Round][]fieldSpec{
	domain.Round2: {{"git_hub_link", true}, {"hosted_link", true}},
	domain.Round3: {{"figma_links", true}, {"description", false}},
	domain.Round4: {{"structured_submission", true}, {"status_4", false}, {"question", false}},
	domain.Round5: {{"abstract", true}},
}

type RoundService struct {
	teamRepo    secondary.TeamPort
	roundRepo   secondary.RoundPort
	fileStore   secondary.FileStore
	leaderboard leaderboard.ILeaderboardService
	logger      primary.Logger
}

func NewRoundService(
	teamRepo secondary.TeamPort,
	roundRepo secondary.RoundPort,
	fileStore secondary.FileStore,
	leaderboard leaderboard.ILeaderboardService,
	logger primary.Logger,
) *RoundService {
	return &RoundService{
		teamRepo:    teamRepo,
		roundRepo:   roundRepo,
		fileStore:   fileStore,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

func (s *RoundService) Submit(ctx context.Context, in Input) (*domain.UploadResponse, error) {
	if !in.Round.Valid() {
		return nil, errs.InvalidRound
	}
	in.TeamName = strings.TrimSpace(in.TeamName)
	fields, err := collectFields(in)
	if err != nil {
		return nil, err
	}

	team, err := s.teamRepo.Get(ctx, in.TeamName)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, errs.TeamNotFound
	}

	urls := make([]string, 0, len(in.Files))
	if in.Round.HasFiles() {
		for _, f := range in.Files {
			url, err := s.fileStore.Put(ctx, secondary.Object{
				Key:         objectKey(in.Round, in.TeamName, f.Name),
				ContentType: f.ContentType,
				Size:        f.Size,
				Body:        f.Body,
			})
			if err != nil {
				s.logger.Error("Failed to upload round file", "round", int(in.Round), "team", in.TeamName, "file", f.Name, "error", err)
				return nil, fmt.Errorf("%w %s: %v", errs.UploadFailed, f.Name, err)
			}
			urls = append(urls, url)
		}
	}

	record := &domain.RoundRecord{
		Round:       in.Round,
		TeamName:    in.TeamName,
		Fields:      fields,
		FileURLs:    urls,
		SubmittedAt: time.Now(),
	}
	if err := s.roundRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info("Round submission stored", "round", int(in.Round), "team", in.TeamName, "files", len(urls))

	if _, err := s.leaderboard.Recalculate(ctx, in.TeamName); err != nil {
		return nil, fmt.Errorf("failed to update leaderboard: %w", err)
	}

	return &domain.UploadResponse{
		Message: fmt.Sprintf("Round %d submission received", int(in.Round)),
		URLs:    urls,
	}, nil
}

func (s *RoundService) Grade(ctx context.Context, round domain.Round, teamName string, score float64) (float64, error) {
	if !round.Valid() {
		return 0, errs.InvalidRound
	}
	if score < 0 {
		return 0, errs.ValidationErrors{{Field: "score", Msg: "must not be negative"}}
	}
	found, err := s.roundRepo.SetScore(ctx, round, teamName, score)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errs.RoundNotSubmitted
	}
	s.logger.Info("Round graded", "round", int(round), "team", teamName, "score", score)
	return s.leaderboard.Recalculate(ctx, teamName)
}

// collectFields keeps the round's known fields and reports every missing
// required one at once.
func collectFields(in Input) (map[string]string, error) {
	var problems errs.ValidationErrors
	if in.TeamName == "" {
		problems = append(problems, errs.FieldError{Field: "Team_Name", Msg: "field required"})
	}

	fields := make(map[string]string)
	for _, spec := range roundFields[in.Round] {
		value := strings.TrimSpace(in.Fields[spec.name])
		if value == "" && spec.required {
			problems = append(problems, errs.FieldError{Field: spec.name, Msg: "field required"})
			continue
		}
		fields[spec.name] = value
	}

	if in.Round == domain.Round4 {
		if fields["status_4"] == "" {
			fields["status_4"] = domain.Round4StatusSubmitted
		}
		if raw := fields["structured_submission"]; raw != "" {
			var nodes []domain.LogicNode
			if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
				problems = append(problems, errs.FieldError{Field: "structured_submission", Msg: errs.InvalidSubmission.Error()})
			}
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return fields, nil
}

func objectKey(round domain.Round, teamName, fileName string) string {
	team := strings.NewReplacer("/", "_", "\\", "_").Replace(teamName)
	return fmt.Sprintf("%s/%s/%s-%s", round.TableName(), team, uuid.NewString(), path.Base(strings.ReplaceAll(fileName, "\\", "/")))
}
