package teamrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
	querybuilder "gitlab.com/stark-bootcamp.net/internal/utils"
)

var _ secondary.TeamPort = &teamRepo{}

const uniqueViolation = "23505"

type teamRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

type teamRow struct {
	Name      string    `db:"team_name"`
	Members   []byte    `db:"team_members"`
	CreatedAt time.Time `db:"created_at"`
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.TeamPort {
	return &teamRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (t teamRepo) Create(ctx context.Context, team *domain.Team) error {
	members, err := json.Marshal(team.Members)
	if err != nil {
		return fmt.Errorf("failed to marshal team members: %w", err)
	}

	teamTbl := domain.GetTeamTable()
	query, args := querybuilder.NewQueryBuilder(t.schema).
		Insert(teamTbl.Name, teamTbl.Members, teamTbl.CreatedAt).
		Into(teamTbl.TableName()).
		Values(team.Name, members, team.CreatedAt).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := t.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.TeamAlreadyRegistered
		}
		t.logger.Error("Failed to create team", "team", team.Name, "error", err)
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

func (t teamRepo) Get(ctx context.Context, name string) (*domain.Team, error) {
	teamTbl := domain.GetTeamTable()
	query, args := querybuilder.NewQueryBuilder(t.schema).
		Select(teamTbl.Name, teamTbl.Members, teamTbl.CreatedAt).
		From(teamTbl.TableName()).
		Where(fmt.Sprintf("%s = ?", teamTbl.Name), name).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var row teamRow
	if err := t.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		t.logger.Error("Failed to get team", "team", name, "error", err)
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	team := &domain.Team{Name: row.Name, CreatedAt: row.CreatedAt}
	if len(row.Members) > 0 {
		if err := json.Unmarshal(row.Members, &team.Members); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team members: %w", err)
		}
	}

	return team, nil
}

func (t teamRepo) ListNames(ctx context.Context) ([]string, error) {
	teamTbl := domain.GetTeamTable()
	query, args := querybuilder.NewQueryBuilder(t.schema).
		Select(teamTbl.Name).
		From(teamTbl.TableName()).
		OrderBy(teamTbl.Name, true).
		Build()

	var names []string
	if err := t.db.SelectContext(ctx, &names, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		t.logger.Error("Failed to list teams", "error", err)
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return names, nil
}
