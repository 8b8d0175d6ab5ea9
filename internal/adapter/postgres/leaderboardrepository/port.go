package leaderboardrepository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	querybuilder "gitlab.com/stark-bootcamp.net/internal/utils"
)

var _ secondary.LeaderboardPort = &LeaderboardRepository{}

type LeaderboardRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewLeaderboardRepository(db *sqlx.DB, logger primary.Logger, schema string) *LeaderboardRepository {
	return &LeaderboardRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *LeaderboardRepository) SaveScore(ctx context.Context, teamName string, score float64) error {
	tbl := domain.GetLeaderboardTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.TeamName, tbl.TeamScore, tbl.UpdatedAt).
		Into(tbl.TableName()).
		Values(teamName, score, time.Now()).
		OnConflict(tbl.TeamName).
		SetExclude(tbl.TeamScore, tbl.UpdatedAt).
		Build()

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to save leaderboard score", "team", teamName, "error", err)
		return fmt.Errorf("failed to save leaderboard score: %w", err)
	}
	return nil
}

// List includes teams that have never scored, at zero.
func (r *LeaderboardRepository) List(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	tbl := domain.GetLeaderboardTable()
	teamTbl := domain.GetTeamTable()
	lbTable := tbl.TableName()
	if r.schema != "" {
		lbTable = r.schema + "." + lbTable
	}

	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(
			fmt.Sprintf("t.%s AS %s", teamTbl.Name, tbl.TeamName),
			fmt.Sprintf("COALESCE(l.%s, 0) AS %s", tbl.TeamScore, tbl.TeamScore),
		).
		From(teamTbl.TableName()+" t").
		Join(querybuilder.JoinTypeLeft, lbTable, "l", fmt.Sprintf("l.%s = t.%s", tbl.TeamName, teamTbl.Name)).
		OrderBy(tbl.TeamScore, false).
		OrderBy(tbl.TeamName, true).
		Build()

	entries := make([]domain.LeaderboardEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to list leaderboard", "error", err)
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	return entries, nil
}
