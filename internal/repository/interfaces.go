package repository

import (
	"context"

	"github.com/alexanderramin/strata/internal/domain"
)

// SnapshotRepo persists reconstructed projects.
type SnapshotRepo interface {
	// Create stores the snapshot header and every task, resource, relation
	// and assignment of p. Callers wrap it in a UnitOfWork.
	Create(ctx context.Context, s *domain.Snapshot, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	// List returns snapshots newest first, optionally limited to one prefix.
	List(ctx context.Context, prefix string) ([]*domain.Snapshot, error)
	// LoadTasks returns the stored tasks in index order with parent and
	// child links restored.
	LoadTasks(ctx context.Context, id string) ([]domain.Task, error)
	// LoadProject rebuilds the stored project, hierarchy included.
	LoadProject(ctx context.Context, id string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
