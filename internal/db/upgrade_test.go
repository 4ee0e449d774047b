package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A store created before task_count and file_type existed keeps its rows
// and gains both columns with their defaults.
func TestMigrate_UpgradePath_AddsTaskCount(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE snapshots (
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
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO snapshots (id, project_name, prefix, source_dir, created_at)
		VALUES ('old', 'Legacy', 'LEG', '/data', '2023-05-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var name, fileType string
	var count int
	err = db.QueryRow(`SELECT project_name, task_count, file_type FROM snapshots WHERE id = 'old'`).
		Scan(&name, &count, &fileType)
	require.NoError(t, err)
	assert.Equal(t, "Legacy", name)
	assert.Zero(t, count)
	assert.Equal(t, "BTRIEVE", fileType)

	// Re-running tolerates the existing column.
	require.NoError(t, Migrate(db))
}
