package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Migrate runs all schema migrations.
func Migrate(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		owner_id         TEXT NOT NULL DEFAULT '',
		title            TEXT NOT NULL,
		prep_start_date  TEXT NOT NULL,
		shoot_start_date TEXT NOT NULL,
		wrap_date        TEXT,
		is_versioned     INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id)`,

	`CREATE TABLE IF NOT EXISTS calendars (
		project_id      TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		owner_id        TEXT NOT NULL DEFAULT '',
		base_version_id TEXT,
		is_draft        INTEGER NOT NULL DEFAULT 1,
		last_modified   TEXT NOT NULL,
		data            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS versions (
		id                  TEXT PRIMARY KEY,
		project_id          TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		owner_id            TEXT NOT NULL DEFAULT '',
		version_number      TEXT NOT NULL,
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		published_at        TEXT,
		is_published        INTEGER NOT NULL DEFAULT 0,
		is_latest_published INTEGER NOT NULL DEFAULT 0,
		data                TEXT NOT NULL,
		UNIQUE(project_id, version_number)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_versions_project ON versions(project_id)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date         TEXT NOT NULL,
		name         TEXT NOT NULL DEFAULT '',
		is_working   INTEGER NOT NULL DEFAULT 0,
		is_shoot_day INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS hiatus_periods (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		CHECK(start_date <= end_date)
	)`,

	`CREATE TABLE IF NOT EXISTS working_weekends (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		UNIQUE(project_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS special_dates (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		type        TEXT NOT NULL DEFAULT 'other'
		            CHECK(type IN ('travel','meeting','rehearsal','other')),
		name        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		is_working  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_holidays_project ON holidays(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_hiatus_project ON hiatus_periods(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_special_dates_project ON special_dates(project_id)`,

	`CREATE TABLE IF NOT EXISTS areas (
		id    TEXT PRIMARY KEY,
		name  TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS locations (
		id        TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		area_id   TEXT NOT NULL DEFAULT '',
		address   TEXT NOT NULL DEFAULT '',
		notes     TEXT NOT NULL DEFAULT '',
		latitude  REAL,
		longitude REAL
	)`,

	`CREATE TABLE IF NOT EXISTS departments (
		id   TEXT PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS access_grants (
		code          TEXT PRIMARY KEY,
		token         TEXT NOT NULL UNIQUE,
		owner_id      TEXT NOT NULL DEFAULT '',
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		created_at    TEXT NOT NULL,
		view_count    INTEGER NOT NULL DEFAULT 0,
		last_accessed TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_access_grants_project ON access_grants(project_id)`,
}
