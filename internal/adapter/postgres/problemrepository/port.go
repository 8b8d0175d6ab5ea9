package problemrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	querybuilder "gitlab.com/stark-bootcamp.net/internal/utils"
)

var _ secondary.ProblemPort = &ProblemRepository{}

// ProblemRepository stores problems with test cases and code templates as JSONB.
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewProblemRepository(db *sqlx.DB, logger primary.Logger, schema string) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *ProblemRepository) Save(ctx context.Context, problem *domain.Problem) error {
	testCases, err := json.Marshal(problem.TestCases)
	if err != nil {
		return fmt.Errorf("failed to marshal test cases: %w", err)
	}
	preCode, err := json.Marshal(nonNilMap(problem.PreCode))
	if err != nil {
		return fmt.Errorf("failed to marshal pre code: %w", err)
	}
	postCode, err := json.Marshal(nonNilMap(problem.PostCode))
	if err != nil {
		return fmt.Errorf("failed to marshal post code: %w", err)
	}

	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.ContestID, tbl.Title, tbl.Description, tbl.TestCases, tbl.Score, tbl.PreCode, tbl.PostCode).
		Into(tbl.TableName()).
		Values(problem.ID, problem.ContestID, problem.Title, problem.Description, testCases, problem.Score, preCode, postCode).
		OnConflict(tbl.ID).
		SetExclude(tbl.ContestID, tbl.Title, tbl.Description, tbl.TestCases, tbl.Score, tbl.PreCode, tbl.PostCode).
		Build()

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to save problem", "problemId", problem.ID, "error", err)
		return fmt.Errorf("failed to save problem: %w", err)
	}

	return nil
}

func (r *ProblemRepository) Get(ctx context.Context, id int) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.ContestID, tbl.Title, tbl.Description, tbl.TestCases, tbl.Score, tbl.PreCode, tbl.PostCode).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.ID), id).
		Build()

	var (
		problem                       domain.Problem
		testCases, preCode, postCode []byte
	)
	err := r.db.QueryRowContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...).Scan(
		&problem.ID,
		&problem.ContestID,
		&problem.Title,
		&problem.Description,
		&testCases,
		&problem.Score,
		&preCode,
		&postCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get problem", "problemId", id, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	if err := json.Unmarshal(testCases, &problem.TestCases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal test cases: %w", err)
	}
	if err := json.Unmarshal(preCode, &problem.PreCode); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pre code: %w", err)
	}
	if err := json.Unmarshal(postCode, &problem.PostCode); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post code: %w", err)
	}

	return &problem, nil
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
