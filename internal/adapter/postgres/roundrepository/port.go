package roundrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/secondary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
	"gitlab.com/stark-bootcamp.net/internal/static/errs"
	querybuilder "gitlab.com/stark-bootcamp.net/internal/utils"
)

var _ secondary.RoundPort = &RoundRepository{}

const (
	colTeamName    = "team_name"
	colFileURLs    = "file_urls"
	colSubmittedAt = "submitted_at"
)

// RoundRepository keeps one row per team in each round_N table.
type RoundRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func NewRoundRepository(db *sqlx.DB, logger primary.Logger, schema string) *RoundRepository {
	return &RoundRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *RoundRepository) Upsert(ctx context.Context, record *domain.RoundRecord) error {
	if !record.Round.Valid() {
		return errs.InvalidRound
	}

	query, args := upsertQuery(r.schema, record)
	if query == "" {
		return fmt.Errorf("failed to build %s upsert", record.Round.TableName())
	}

	if _, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to save round submission", "round", int(record.Round), "team", record.TeamName, "error", err)
		return fmt.Errorf("failed to save %s submission: %w", record.Round.TableName(), err)
	}

	return nil
}

// upsertQuery inserts a new row with the record's score and, on conflict,
// replaces everything except the score, which only SetScore changes.
func upsertQuery(schema string, record *domain.RoundRecord) (string, []interface{}) {
	fieldCols := make([]string, 0, len(record.Fields))
	for col := range record.Fields {
		fieldCols = append(fieldCols, col)
	}
	sort.Strings(fieldCols)

	cols := []string{colTeamName}
	values := []interface{}{record.TeamName}
	for _, col := range fieldCols {
		cols = append(cols, col)
		values = append(values, record.Fields[col])
	}
	if record.Round.HasFiles() {
		cols = append(cols, colFileURLs)
		values = append(values, pq.Array(record.FileURLs))
	}
	submittedAt := record.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	replaced := append(append([]string{}, cols[1:]...), colSubmittedAt)
	cols = append(cols, record.Round.ScoreColumn(), colSubmittedAt)
	values = append(values, record.Score, submittedAt)

	return querybuilder.NewQueryBuilder(schema).
		Insert(cols...).
		Into(record.Round.TableName()).
		Values(values...).
		OnConflict(colTeamName).
		SetExclude(replaced...).
		Build()
}

func (r *RoundRepository) SetScore(ctx context.Context, round domain.Round, teamName string, score float64) (bool, error) {
	if !round.Valid() {
		return false, errs.InvalidRound
	}

	query, args := querybuilder.NewQueryBuilder(r.schema).
		Update(round.TableName(), querybuilder.UpdateData{round.ScoreColumn(): score}).
		Where(fmt.Sprintf("%s = ?", colTeamName), teamName).
		Build()

	result, err := r.db.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		r.logger.Error("Failed to grade round submission", "round", int(round), "team", teamName, "error", err)
		return false, fmt.Errorf("failed to grade %s: %w", round.TableName(), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *RoundRepository) Scores(ctx context.Context, teamName string) (map[domain.Round]float64, error) {
	scores := make(map[domain.Round]float64, 4)
	for round := domain.Round2; round <= domain.Round5; round++ {
		query, args := querybuilder.NewQueryBuilder(r.schema).
			Select(round.ScoreColumn()).
			From(round.TableName()).
			Where(fmt.Sprintf("%s = ?", colTeamName), teamName).
			Build()

		var score float64
		err := r.db.QueryRowContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...).Scan(&score)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			r.logger.Error("Failed to get round score", "round", int(round), "team", teamName, "error", err)
			return nil, fmt.Errorf("failed to get %s score: %w", round.TableName(), err)
		}
		scores[round] = score
	}
	return scores, nil
}
