// Package postgres holds the schema bootstrap shared by the repositories.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS {schema}.teams (
		team_name    TEXT PRIMARY KEY,
		team_members JSONB NOT NULL DEFAULT '[]',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.contests (
		contest_id  TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		start_time  TIMESTAMPTZ NOT NULL,
		end_time    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.problems (
		problem_id  INTEGER PRIMARY KEY,
		contest_id  TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		test_cases  JSONB NOT NULL DEFAULT '[]',
		score       INTEGER NOT NULL DEFAULT 0,
		pre_code    JSONB NOT NULL DEFAULT '{}',
		post_code   JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.submissions (
		id           UUID PRIMARY KEY,
		team_name    TEXT NOT NULL,
		contest_id   TEXT NOT NULL,
		problem_id   INTEGER NOT NULL,
		code         TEXT NOT NULL,
		language     TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		passed       INTEGER NOT NULL DEFAULT 0,
		total        INTEGER NOT NULL DEFAULT 0,
		score        INTEGER NOT NULL DEFAULT 0,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS submissions_team_idx ON {schema}.submissions (team_name)`,
	`CREATE TABLE IF NOT EXISTS {schema}.round_2 (
		team_name    TEXT PRIMARY KEY,
		git_hub_link TEXT NOT NULL,
		hosted_link  TEXT NOT NULL,
		file_urls    TEXT[] NOT NULL DEFAULT '{}',
		score_2      DOUBLE PRECISION NOT NULL DEFAULT 0,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.round_3 (
		team_name    TEXT PRIMARY KEY,
		figma_links  TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		file_urls    TEXT[] NOT NULL DEFAULT '{}',
		score_3      DOUBLE PRECISION NOT NULL DEFAULT 0,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.round_4 (
		team_name             TEXT PRIMARY KEY,
		structured_submission TEXT NOT NULL,
		status_4              TEXT NOT NULL,
		question              TEXT NOT NULL DEFAULT '',
		score_4               DOUBLE PRECISION NOT NULL DEFAULT 0,
		submitted_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.round_5 (
		team_name    TEXT PRIMARY KEY,
		abstract     TEXT NOT NULL,
		file_urls    TEXT[] NOT NULL DEFAULT '{}',
		score_5      DOUBLE PRECISION NOT NULL DEFAULT 0,
		submitted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS {schema}.leaderboard (
		team_name  TEXT PRIMARY KEY,
		team_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the contest tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB, schema string) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, strings.ReplaceAll(stmt, "{schema}", schema)); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
