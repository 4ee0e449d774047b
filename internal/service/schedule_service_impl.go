package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/p3"
)

type scheduleService struct {
	reader   *p3.Reader
	observer UseCaseObserver
}

// NewScheduleService serves reads of P3 project directories through reader.
func NewScheduleService(reader *p3.Reader, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		reader:   reader,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	if err != nil {
		fields["structural"] = btrieve.IsStructural(err)
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *scheduleService) ListProjects(ctx context.Context, dir string) (names []string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir}
	defer func() { s.observe(ctx, "list-projects", startedAt, fields, err) }()

	names, err = p3.ListProjectNames(dir)
	if err != nil {
		return nil, err
	}
	fields["projects"] = len(names)
	return names, nil
}

func (s *scheduleService) Read(ctx context.Context, dir, prefix string) (result *ReadResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir, "project": prefix}
	defer func() { s.observe(ctx, "read-project", startedAt, fields, err) }()

	project, report, err := s.reader.ReadWithReport(ctx, dir, prefix)
	if err != nil {
		return nil, err
	}
	fields["tasks"] = len(project.Tasks)
	fields["dropped_relations"] = report.DroppedRelations
	fields["dropped_assignments"] = report.DroppedAssignments

	return &ReadResult{
		Project: project,
		Report:  report,
		Summary: SummarizeProject(project),
	}, nil
}

func (s *scheduleService) ReadFirst(ctx context.Context, dir string) (result *ReadResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir}
	defer func() { s.observe(ctx, "read-first-project", startedAt, fields, err) }()

	project, report, err := s.reader.ReadFirst(ctx, dir)
	if err != nil {
		return nil, err
	}
	fields["project"] = project.Properties.Prefix
	fields["tasks"] = len(project.Tasks)

	return &ReadResult{
		Project: project,
		Report:  report,
		Summary: SummarizeProject(project),
	}, nil
}

func (s *scheduleService) ReadAll(ctx context.Context, dir string) (projects []*domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir}
	defer func() { s.observe(ctx, "read-all-projects", startedAt, fields, err) }()

	projects, err = s.reader.ReadAll(ctx, dir)
	if err != nil {
		return nil, err
	}
	fields["projects"] = len(projects)
	return projects, nil
}

func (s *scheduleService) Tables(ctx context.Context, dir, prefix string) (tables []TableSummary, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dir": dir, "project": prefix}
	defer func() { s.observe(ctx, "list-tables", startedAt, fields, err) }()

	db, err := s.reader.Load(ctx, dir, prefix)
	if err != nil {
		return nil, err
	}
	for _, code := range db.Codes() {
		table := db.Table(code)
		tables = append(tables, TableSummary{
			Code:       code,
			File:       db.File(code),
			Rows:       table.Len(),
			Superseded: table.Superseded(),
			Stats:      db.Stats(code),
		})
	}
	fields["tables"] = len(tables)
	return tables, nil
}

func (s *scheduleService) DumpTable(ctx context.Context, dir, prefix, code string) (dump *TableDump, err error) {
	startedAt := time.Now().UTC()
	code = strings.ToUpper(code)
	fields := map[string]any{"dir": dir, "project": prefix, "table": code}
	defer func() { s.observe(ctx, "dump-table", startedAt, fields, err) }()

	def, ok := s.reader.Catalog().Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%q: %w", code, ErrUnknownTable)
	}
	db, err := s.reader.Load(ctx, dir, prefix)
	if err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(def.Columns)+2)
	for _, c := range def.Columns {
		columns = append(columns, c.Name)
	}
	columns = append(columns, btrieve.ColumnRowVersion, btrieve.ColumnRowNumber)

	rows := db.Table(code).Rows()
	fields["rows"] = len(rows)
	return &TableDump{
		Code:    code,
		File:    db.File(code),
		Present: db.HasTable(code),
		Columns: columns,
		Rows:    rows,
	}, nil
}
