package registration

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
)

var _ IRegistrationService = (*RegistrationService)(nil)

const maxTeamNameLen = 64

type RegistrationService struct {
	teamRepo    secondary.TeamPort
	leaderboard leaderboard.ILeaderboardService
	logger      primary.Logger
}

func NewRegistrationService(teamRepo secondary.TeamPort, leaderboard leaderboard.ILeaderboardService, logger primary.Logger) *RegistrationService {
	return &RegistrationService{
		teamRepo:    teamRepo,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

func (s *RegistrationService) Register(ctx context.Context, team *domain.Team) error {
	team.Name = strings.TrimSpace(team.Name)
	if err := validateTeam(team); err != nil {
		return err
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		s.logger.Warn("Team registration rejected", "team", team.Name, "error", err)
		return err
	}
	s.logger.Info("Team registered", "team", team.Name, "members", len(team.Members))

	if _, err := s.leaderboard.Recalculate(ctx, team.Name); err != nil {
		return fmt.Errorf("failed to place team on leaderboard: %w", err)
	}
	return nil
}

func (s *RegistrationService) GetTeam(ctx context.Context, name string) (*domain.Team, error) {
	team, err := s.teamRepo.Get(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, errs.TeamNotFound
	}
	return team, nil
}

func validateTeam(team *domain.Team) error {
	var problems errs.ValidationErrors
	switch {
	case team.Name == "":
		problems = append(problems, errs.FieldError{Field: "Team_Name", Msg: "field required"})
	case len(team.Name) > maxTeamNameLen:
		problems = append(problems, errs.FieldError{Field: "Team_Name", Msg: fmt.Sprintf("must be at most %d characters", maxTeamNameLen)})
	}
	for i := range team.Members {
		m := &team.Members[i]
		m.Name = strings.TrimSpace(m.Name)
		m.Email = strings.TrimSpace(m.Email)
		if m.Name == "" {
			problems = append(problems, errs.FieldError{Field: fmt.Sprintf("team_members.%d.name", i), Msg: "field required"})
		}
		if m.Email != "" {
			if _, err := mail.ParseAddress(m.Email); err != nil {
				problems = append(problems, errs.FieldError{Field: fmt.Sprintf("team_members.%d.email", i), Msg: "value is not a valid email address"})
			}
		}
	}
	if len(problems) > 0 {
		return problems
	}
	return nil
}
