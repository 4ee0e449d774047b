package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
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
	`CREATE TABLE IF NOT EXISTS snapshots (
		id               TEXT PRIMARY KEY,
		project_name     TEXT NOT NULL,
		prefix           TEXT NOT NULL,
		source_dir       TEXT NOT NULL,
		file_application TEXT NOT NULL DEFAULT '',
		start_date       TEXT,
		finish_date      TEXT,
		status_date      TEXT,
		company          TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshots_prefix ON snapshots(prefix, created_at)`,

	`CREATE TABLE IF NOT EXISTS snapshot_tasks (
		snapshot_id      TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		task_index       INTEGER NOT NULL,
		parent_index     INTEGER NOT NULL DEFAULT -1,
		activity_id      TEXT NOT NULL DEFAULT '',
		wbs              TEXT NOT NULL DEFAULT '',
		name             TEXT NOT NULL DEFAULT '',
		summary          INTEGER NOT NULL DEFAULT 0,
		milestone        INTEGER NOT NULL DEFAULT 0,
		critical         INTEGER NOT NULL DEFAULT 0,
		percent_complete REAL NOT NULL DEFAULT 0,
		start            TEXT,
		finish           TEXT,
		actual_start     TEXT,
		actual_finish    TEXT,
		early_start      TEXT,
		early_finish     TEXT,
		late_start       TEXT,
		late_finish      TEXT,
		total_slack_days REAL,
		PRIMARY KEY (snapshot_id, task_index)
	)`,

	`CREATE TABLE IF NOT EXISTS snapshot_resources (
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		code        TEXT NOT NULL,
		name        TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshot_resources_snapshot ON snapshot_resources(snapshot_id)`,

	`CREATE TABLE IF NOT EXISTS snapshot_relations (
		snapshot_id       TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		predecessor_index INTEGER NOT NULL,
		successor_index   INTEGER NOT NULL,
		type              TEXT NOT NULL CHECK(type IN ('FS','SS','FF','SF')),
		lag_days          REAL NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshot_relations_snapshot ON snapshot_relations(snapshot_id)`,

	`CREATE TABLE IF NOT EXISTS snapshot_assignments (
		snapshot_id   TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		task_index    INTEGER NOT NULL,
		resource_code TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_snapshot_assignments_snapshot ON snapshot_assignments(snapshot_id)`,

	// Task totals were added after the first snapshot release.
	`ALTER TABLE snapshots ADD COLUMN task_count INTEGER NOT NULL DEFAULT 0`,

	// Every P3 snapshot written before file_type existed came from a
	// Btrieve directory.
	`ALTER TABLE snapshots ADD COLUMN file_type TEXT NOT NULL DEFAULT 'BTRIEVE'`,
}
