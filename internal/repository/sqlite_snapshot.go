package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

const snapshotColumns = `id, project_name, prefix, source_dir, file_application, file_type,
	company, start_date, finish_date, status_date, task_count, created_at`

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot, p *domain.Project) error {
	query := `INSERT INTO snapshots (` + snapshotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectName,
		s.Prefix,
		s.SourceDir,
		s.FileApplication,
		s.FileType,
		s.Company,
		dateValue(s.StartDate),
		dateValue(s.FinishDate),
		dateValue(s.StatusDate),
		s.TaskCount,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	for i := range p.Tasks {
		if err := r.insertTask(ctx, s.ID, &p.Tasks[i]); err != nil {
			return err
		}
	}
	for _, res := range p.Resources {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO snapshot_resources (snapshot_id, code, name) VALUES (?, ?, ?)`,
			s.ID, res.Code, res.Name)
		if err != nil {
			return fmt.Errorf("inserting snapshot resource %s: %w", res.Code, err)
		}
	}
	for _, rel := range p.Relations {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO snapshot_relations (snapshot_id, predecessor_index, successor_index, type, lag_days)
			VALUES (?, ?, ?, ?, ?)`,
			s.ID, int(rel.Predecessor), int(rel.Successor), string(rel.Type), rel.Lag.Value)
		if err != nil {
			return fmt.Errorf("inserting snapshot relation: %w", err)
		}
	}
	for _, a := range p.Assignments {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO snapshot_assignments (snapshot_id, task_index, resource_code) VALUES (?, ?, ?)`,
			s.ID, int(a.Task), a.ResourceCode)
		if err != nil {
			return fmt.Errorf("inserting snapshot assignment: %w", err)
		}
	}
	return nil
}

func (r *SQLiteSnapshotRepo) insertTask(ctx context.Context, snapshotID string, t *domain.Task) error {
	query := `INSERT INTO snapshot_tasks (snapshot_id, task_index, parent_index, activity_id, wbs, name,
		summary, milestone, critical, percent_complete, start, finish, actual_start, actual_finish,
		early_start, early_finish, late_start, late_finish, total_slack_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		snapshotID,
		int(t.ID),
		int(t.Parent),
		t.ActivityID,
		t.WBS,
		t.Name,
		t.Summary,
		t.Milestone,
		t.Critical,
		t.PercentComplete,
		dateValue(t.Start),
		dateValue(t.Finish),
		dateValue(t.ActualStart),
		dateValue(t.ActualFinish),
		dateValue(t.EarlyStart),
		dateValue(t.EarlyFinish),
		dateValue(t.LateStart),
		dateValue(t.LateFinish),
		daysValue(t.TotalSlack),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot task %d: %w", t.ID, err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ?`
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context, prefix string) ([]*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots`
	var args []any
	if prefix != "" {
		query += ` WHERE UPPER(prefix) = UPPER(?)`
		args = append(args, prefix)
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return out, nil
}

func (r *SQLiteSnapshotRepo) LoadTasks(ctx context.Context, id string) ([]domain.Task, error) {
	query := `SELECT task_index, parent_index, activity_id, wbs, name, summary, milestone, critical,
		percent_complete, start, finish, actual_start, actual_finish,
		early_start, early_finish, late_start, late_finish, total_slack_days
		FROM snapshot_tasks WHERE snapshot_id = ? ORDER BY task_index`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var (
			t                         domain.Task
			index, parent             int
			start, finish             sql.NullString
			actualStart, actualFinish sql.NullString
			earlyStart, earlyFinish   sql.NullString
			lateStart, lateFinish     sql.NullString
			slack                     sql.NullFloat64
		)
		err := rows.Scan(
			&index, &parent, &t.ActivityID, &t.WBS, &t.Name,
			&t.Summary, &t.Milestone, &t.Critical, &t.PercentComplete,
			&start, &finish, &actualStart, &actualFinish,
			&earlyStart, &earlyFinish, &lateStart, &lateFinish, &slack,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot task: %w", err)
		}
		if index != len(tasks) {
			return nil, fmt.Errorf("snapshot %s: task index %d out of sequence", id, index)
		}
		t.ID = domain.TaskID(index)
		t.Parent = domain.TaskID(parent)
		t.Start = parseDate(start)
		t.Finish = parseDate(finish)
		t.ActualStart = parseDate(actualStart)
		t.ActualFinish = parseDate(actualFinish)
		t.EarlyStart = parseDate(earlyStart)
		t.EarlyFinish = parseDate(earlyFinish)
		t.LateStart = parseDate(lateStart)
		t.LateFinish = parseDate(lateFinish)
		t.TotalSlack = parseDays(slack)
		t.InferSlack()
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot tasks: %w", err)
	}

	// Children follow task order, which is the order they were added.
	for i := range tasks {
		p := tasks[i].Parent
		if p < 0 || int(p) >= len(tasks) {
			tasks[i].Parent = domain.NoTask
			continue
		}
		tasks[p].Children = append(tasks[p].Children, tasks[i].ID)
	}
	return tasks, nil
}

func (r *SQLiteSnapshotRepo) LoadProject(ctx context.Context, id string) (*domain.Project, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := r.LoadTasks(ctx, id)
	if err != nil {
		return nil, err
	}

	p := domain.NewProject()
	p.Properties = domain.ProjectProperties{
		Name:            s.ProjectName,
		Company:         s.Company,
		StartDate:       s.StartDate,
		FinishDate:      s.FinishDate,
		StatusDate:      s.StatusDate,
		FileApplication: s.FileApplication,
		FileType:        s.FileType,
		Prefix:          s.Prefix,
	}
	// Only the default calendar is ever reconstructed, so it is not stored.
	p.Calendars = []domain.Calendar{domain.NewDefaultCalendar()}
	p.DefaultCalendar = domain.DefaultCalendarName
	p.Tasks = tasks
	for _, t := range tasks {
		if t.Parent == domain.NoTask {
			p.Roots = append(p.Roots, t.ID)
		}
	}

	if err := r.loadResources(ctx, id, p); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, id, p); err != nil {
		return nil, err
	}
	if err := r.loadAssignments(ctx, id, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteSnapshotRepo) loadResources(ctx context.Context, id string, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, name FROM snapshot_resources WHERE snapshot_id = ? ORDER BY rowid`, id)
	if err != nil {
		return fmt.Errorf("loading snapshot resources: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var res domain.Resource
		if err := rows.Scan(&res.Code, &res.Name); err != nil {
			return fmt.Errorf("scanning snapshot resource: %w", err)
		}
		p.AddResource(res)
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) loadRelations(ctx context.Context, id string, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT predecessor_index, successor_index, type, lag_days
		FROM snapshot_relations WHERE snapshot_id = ? ORDER BY rowid`, id)
	if err != nil {
		return fmt.Errorf("loading snapshot relations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pred, succ int
		var kind string
		var lag float64
		if err := rows.Scan(&pred, &succ, &kind, &lag); err != nil {
			return fmt.Errorf("scanning snapshot relation: %w", err)
		}
		p.Relations = append(p.Relations, domain.Relation{
			Predecessor: domain.TaskID(pred),
			Successor:   domain.TaskID(succ),
			Type:        domain.RelationType(kind),
			Lag:         domain.Days(lag),
		})
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) loadAssignments(ctx context.Context, id string, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_index, resource_code FROM snapshot_assignments WHERE snapshot_id = ? ORDER BY rowid`, id)
	if err != nil {
		return fmt.Errorf("loading snapshot assignments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var task int
		var code string
		if err := rows.Scan(&task, &code); err != nil {
			return fmt.Errorf("scanning snapshot assignment: %w", err)
		}
		p.Assignments = append(p.Assignments, domain.Assignment{Task: domain.TaskID(task), ResourceCode: code})
	}
	return rows.Err()
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var start, finish, status sql.NullString
	var createdAt string
	err := row.Scan(
		&s.ID, &s.ProjectName, &s.Prefix, &s.SourceDir, &s.FileApplication, &s.FileType, &s.Company,
		&start, &finish, &status, &s.TaskCount, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.StartDate = parseDate(start)
	s.FinishDate = parseDate(finish)
	s.StatusDate = parseDate(status)
	s.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
