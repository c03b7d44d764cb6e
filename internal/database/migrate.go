package database

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		skills TEXT[] NOT NULL DEFAULT '{}',
		company_name TEXT NOT NULL DEFAULT '',
		resume_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES users (id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		skills TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_company_id_idx ON jobs (company_id)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs (id),
		candidate_id UUID NOT NULL REFERENCES users (id),
		message TEXT NOT NULL DEFAULT '',
		company_message TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL,
		decision_at TIMESTAMPTZ
	)`,
	// duplicate submissions race on the read-then-insert check; the index is
	// the authoritative guard
	`CREATE UNIQUE INDEX IF NOT EXISTS applications_job_candidate_key ON applications (job_id, candidate_id)`,
	`CREATE INDEX IF NOT EXISTS applications_candidate_id_idx ON applications (candidate_id)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
