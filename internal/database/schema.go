package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS walks (
		id TEXT PRIMARY KEY,
		group_code TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		additional_details TEXT NOT NULL DEFAULT '',
		shape TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		publish BOOLEAN NOT NULL DEFAULT FALSE,
		start_input TEXT NOT NULL DEFAULT '',
		start_at TIMESTAMPTZ,
		finish_time TEXT NOT NULL DEFAULT '',
		meeting_time TEXT NOT NULL DEFAULT '',
		distance TEXT NOT NULL DEFAULT '',
		ascent TEXT NOT NULL DEFAULT '',
		grade TEXT NOT NULL DEFAULT '',
		start_location JSONB,
		finish_location JSONB,
		meeting_location JSONB,
		contact JSONB,
		features TEXT[] NOT NULL DEFAULT '{}',
		media JSONB,
		risk_assessments JSONB,
		average_speed_mph DOUBLE PRECISION NOT NULL DEFAULT 0,
		remote_id TEXT NOT NULL DEFAULT '',
		remote_url TEXT NOT NULL DEFAULT '',
		links JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_walks_start_at ON walks (start_at)`,
	`CREATE INDEX IF NOT EXISTS idx_walks_remote_url ON walks (remote_url)`,
	`CREATE TABLE IF NOT EXISTS upload_audits (
		id TEXT PRIMARY KEY,
		operator TEXT NOT NULL DEFAULT '',
		row_count INTEGER NOT NULL DEFAULT 0,
		deletion_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_upload_audits_created_at ON upload_audits (created_at DESC)`,
}

// EnsureSchema creates the tables and indexes the service needs.
func EnsureSchema(db *sql.DB, logger *slog.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	logger.Info("database schema ensured")
	return nil
}
