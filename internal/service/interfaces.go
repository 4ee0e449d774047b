package service

import (
	"context"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/p3"
)

// ReadResult is a reconstructed project with its reconstruction counters.
type ReadResult struct {
	Project *domain.Project
	Report  p3.Report
	Summary ProjectSummary
}

// TableSummary describes one scanned table file.
type TableSummary struct {
	Code       string
	File       string
	Rows       int
	Superseded int
	Stats      btrieve.ScanStats
}

// TableDump holds the decoded rows of one table in key order. Present is
// false when the project has no file for the table type.
type TableDump struct {
	Code    string
	File    string
	Present bool
	Columns []string
	Rows    []btrieve.Row
}

type ScheduleService interface {
	ListProjects(ctx context.Context, dir string) ([]string, error)
	Read(ctx context.Context, dir, prefix string) (*ReadResult, error)
	// ReadFirst reads the first project of dir in name order.
	ReadFirst(ctx context.Context, dir string) (*ReadResult, error)
	ReadAll(ctx context.Context, dir string) ([]*domain.Project, error)
	Tables(ctx context.Context, dir, prefix string) ([]TableSummary, error)
	DumpTable(ctx context.Context, dir, prefix, code string) (*TableDump, error)
}

type SnapshotService interface {
	// Capture reads a project and stores it as a new snapshot.
	Capture(ctx context.Context, dir, prefix string) (*domain.Snapshot, error)
	List(ctx context.Context, prefix string) ([]*domain.Snapshot, error)
	Load(ctx context.Context, id string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
