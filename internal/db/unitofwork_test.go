package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/db"
)

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertSnapshot(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO snapshots (id, project_name, prefix, source_dir, created_at)
		VALUES (?, 'Demo', 'DEMO', '/tmp', '2024-01-01T00:00:00Z')`, id)
	return err
}

func snapshotExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var n int
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE id = ?`, id).Scan(&n)
	})
	require.NoError(t, err)
	return n > 0
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertSnapshot(ctx, tx, "k1")
	})
	require.NoError(t, err)
	assert.True(t, snapshotExists(t, uow, "k1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertSnapshot(ctx, tx, "k2"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, snapshotExists(t, uow, "k2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertSnapshot(ctx, tx, "k3")
			panic("boom")
		})
	})
	assert.False(t, snapshotExists(t, uow, "k3"))
}

func TestWithinTx_CancelledContext(t *testing.T) {
	uow := openUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertSnapshot(ctx, tx, "k4")
	})
	assert.Error(t, err)
	assert.False(t, snapshotExists(t, uow, "k4"))
}
