package contestrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	querybuilder "gitlab.com/stark-bootcamp.net/internal/utils"
)

var _ secondary.ContestPort = &ContestRepository{}

type ContestRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewContestRepository(db *sqlx.DB, logger primary.Logger, schema string) *ContestRepository {
	return &ContestRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Save creates the contest or overwrites an existing one with the same id.
func (r *ContestRepository) Save(ctx context.Context, contest *domain.Contest) error {
	tbl := domain.GetContestTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.Description, tbl.StartTime, tbl.EndTime).
		Into(tbl.TableName()).
		Values(contest.ID, contest.Description, contest.StartTime, contest.EndTime).
		OnConflict(tbl.ID).
		SetExclude(tbl.Description, tbl.StartTime, tbl.EndTime).
		Build()

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to save contest", "contestId", contest.ID, "error", err)
		return fmt.Errorf("failed to save contest: %w", err)
	}
	return nil
}

func (r *ContestRepository) Get(ctx context.Context, id string) (*domain.Contest, error) {
	tbl := domain.GetContestTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.Description, tbl.StartTime, tbl.EndTime).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	var contest domain.Contest
	if err := r.db.GetContext(ctx, &contest, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get contest", "contestId", id, "error", err)
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}
	return &contest, nil
}
