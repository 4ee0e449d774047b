package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/p3"
	"github.com/alexanderramin/strata/internal/repository"
)

type snapshotService struct {
	reader    *p3.Reader
	snapshots repository.SnapshotRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

// NewSnapshotService stores projects read by reader. Writes go through uow;
// reads use snapshots directly.
func NewSnapshotService(reader *p3.Reader, snapshots repository.SnapshotRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SnapshotService {
	return &snapshotService{
		reader:    reader,
		snapshots: snapshots,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		now:       time.Now,
	}
}

func (s *snapshotService) Capture(ctx context.Context, dir, prefix string) (snap *domain.Snapshot, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir, "project": prefix}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "capture-snapshot",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var project *domain.Project
	project, err = s.reader.Read(ctx, dir, prefix)
	if err != nil {
		return nil, err
	}

	snap = domain.NewSnapshot(project, dir, s.now())
	snap.ID = uuid.New().String()
	fields["snapshot_id"] = snap.ID
	fields["tasks"] = snap.TaskCount

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSnapshotRepo(tx).Create(ctx, snap, project)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *snapshotService) List(ctx context.Context, prefix string) ([]*domain.Snapshot, error) {
	return s.snapshots.List(ctx, prefix)
}

func (s *snapshotService) Load(ctx context.Context, id string) (*domain.Project, error) {
	return s.snapshots.LoadProject(ctx, id)
}

func (s *snapshotService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSnapshotRepo(tx).Delete(ctx, id)
	})
}
