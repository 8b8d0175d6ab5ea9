package submissionrepository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	querybuilder "gitlab.com/stark-bootcamp.net/internal/utils"
)

var _ secondary.SubmissionPort = &SubmissionRepository{}

// SubmissionRepository implements the SubmissionPort interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger, schema string) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// Save saves a code submission to PostgreSQL
func (r *SubmissionRepository) Save(ctx context.Context, s *domain.CodeSubmission) error {
	tbl := domain.GetCodeSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			tbl.ID, tbl.TeamName, tbl.ContestID, tbl.ProblemID,
			tbl.Code, tbl.Language, tbl.Status,
			tbl.Passed, tbl.Total, tbl.Score, tbl.SubmittedAt,
		).
		Into(tbl.TableName()).
		Values(
			s.ID, s.TeamName, s.ContestID, s.ProblemID,
			s.Code, s.Language, s.Status,
			s.Passed, s.Total, s.Score, s.SubmittedAt,
		).
		Build()

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to save submission", "team", s.TeamName, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

func (r *SubmissionRepository) BestScore(ctx context.Context, teamName string) (float64, error) {
	tbl := domain.GetCodeSubmissionTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(fmt.Sprintf("MAX(%s)", tbl.Score)).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.TeamName), teamName).
		Build()

	var best sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...).Scan(&best); err != nil {
		r.logger.Error("Failed to get best submission score", "team", teamName, "error", err)
		return 0, fmt.Errorf("failed to get best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return best.Float64, nil
}
