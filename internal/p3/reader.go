package p3

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sort"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Activity flag codes shared by the start and finish flag columns.
const (
	flagStartNoEarlier  = 1
	flagStartNoLater    = 2
	flagFinishNoEarlier = 3
	flagFinishNoLater   = 4
	flagActual          = 99
)

// Report counts what reconstruction kept and dropped.
type Report struct {
	WBSNodes             int
	Activities           int
	Resources            int
	Relations            int
	Assignments          int
	DroppedRelations     int
	DroppedAssignments   int
	UnparentedWBS        int
	UnparentedActivities int
}

// Reader reads P3 project directories.
type Reader struct {
	catalog *btrieve.Catalog
	opts    LoadOptions
}

// NewReader returns a reader using catalog, or the P3 catalog when nil.
func NewReader(catalog *btrieve.Catalog, opts LoadOptions) *Reader {
	if catalog == nil {
		catalog = NewCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger
	}
	return &Reader{catalog: catalog, opts: opts}
}

// Catalog returns the table registry the reader scans with.
func (r *Reader) Catalog() *btrieve.Catalog {
	return r.catalog
}

// Load scans the tables of one project without reconstructing it.
func (r *Reader) Load(ctx context.Context, dir, prefix string) (*Database, error) {
	return LoadDatabase(ctx, dir, prefix, r.catalog, r.opts)
}

// Read scans and reconstructs one project.
func (r *Reader) Read(ctx context.Context, dir, prefix string) (*domain.Project, error) {
	project, _, err := r.ReadWithReport(ctx, dir, prefix)
	return project, err
}

// ReadWithReport is Read that also returns reconstruction counters.
func (r *Reader) ReadWithReport(ctx context.Context, dir, prefix string) (*domain.Project, Report, error) {
	db, err := r.Load(ctx, dir, prefix)
	if err != nil {
		return nil, Report{}, err
	}
	project, report, err := Reconstruct(db, r.opts.Logger)
	if err != nil {
		return nil, report, fmt.Errorf("reconstruct %s: %w", prefix, err)
	}
	return project, report, nil
}

// ReadAll reads every project in dir, in name order.
func (r *Reader) ReadAll(ctx context.Context, dir string) ([]*domain.Project, error) {
	names, err := ListProjectNames(dir)
	if err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, 0, len(names))
	for _, name := range names {
		p, err := r.Read(ctx, dir, name)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// ReadFirst reads the first project in dir by name order, with its
// reconstruction counters.
func (r *Reader) ReadFirst(ctx context.Context, dir string) (*domain.Project, Report, error) {
	names, err := ListProjectNames(dir)
	if err != nil {
		return nil, Report{}, err
	}
	if len(names) == 0 {
		return nil, Report{}, fmt.Errorf("%s: %w", dir, ErrNoProjects)
	}
	return r.ReadWithReport(ctx, dir, names[0])
}

// reconstruction holds the lookup tables of one run.
type reconstruction struct {
	db        *Database
	project   *domain.Project
	format    WBSFormat
	logger    *slog.Logger
	report    Report
	wbs       map[string]domain.TaskID
	activity  map[string]domain.TaskID
	resources map[string]bool
}

// Reconstruct builds the project tree from scanned tables. Only a missing or
// ambiguous header row is an error; dangling references are dropped.
func Reconstruct(db *Database, logger *slog.Logger) (*domain.Project, Report, error) {
	if logger == nil {
		logger = discardLogger
	}
	rc := &reconstruction{
		db:        db,
		project:   domain.NewProject(),
		logger:    logger,
		wbs:       make(map[string]domain.TaskID),
		activity:  make(map[string]domain.TaskID),
		resources: make(map[string]bool),
	}

	if err := rc.readHeader(); err != nil {
		return nil, rc.report, err
	}
	rc.readCalendars()
	rc.readResources()
	rc.readWBS()
	rc.readActivities()
	rc.readRelations()
	rc.readAssignments()
	rc.project.Rollup()

	logger.Debug("p3_reconstruct",
		"prefix", db.Prefix,
		"wbs_nodes", rc.report.WBSNodes,
		"activities", rc.report.Activities,
		"dropped_relations", rc.report.DroppedRelations,
		"dropped_assignments", rc.report.DroppedAssignments,
	)
	return rc.project, rc.report, nil
}

// headerRow picks the project header. The master project row is keyed by a
// blank sub-project name; without one, a single surviving row is used.
func headerRow(table *btrieve.Table) (btrieve.Row, error) {
	if row, ok := table.FindString(""); ok {
		return row, nil
	}
	switch table.Len() {
	case 0:
		return btrieve.Row{}, ErrMissingHeaderRow
	case 1:
		return table.Rows()[0], nil
	default:
		return btrieve.Row{}, fmt.Errorf("%d candidate rows: %w", table.Len(), ErrAmbiguousHeaderRow)
	}
}

func (rc *reconstruction) readHeader() error {
	row, err := headerRow(rc.db.Table(TableHeader))
	if err != nil {
		return err
	}
	props := &rc.project.Properties
	props.FileApplication = "P3"
	props.FileType = "BTRIEVE"
	props.Prefix = rc.db.Prefix
	projectFields.apply(props, row)
	rc.format = WBSFormatFromHeader(row)
	return nil
}

// readCalendars installs the default calendar. Calendar tables are not
// decoded.
func (rc *reconstruction) readCalendars() {
	cal := domain.NewDefaultCalendar()
	rc.project.Calendars = append(rc.project.Calendars, cal)
	rc.project.DefaultCalendar = cal.Name
}

func (rc *reconstruction) readResources() {
	for row := range rc.db.Table(TableResources).All() {
		var res domain.Resource
		resourceFields.apply(&res, row)
		rc.project.AddResource(res)
		rc.resources[res.Code] = true
	}
	rc.report.Resources = len(rc.project.Resources)
}

type wbsRow struct {
	code  WBSCode
	title string
}

// readWBS creates summary tasks level by level so that every parent exists
// before its children are attached.
func (rc *reconstruction) readWBS() {
	levels := make(map[int][]wbsRow)
	for row := range rc.db.Table(TableWBS).All() {
		code := rc.format.Parse(row.StringOr("CODE_VALUE", ""))
		levels[code.Level] = append(levels[code.Level], wbsRow{
			code:  code,
			title: row.StringOr("CODE_TITLE", ""),
		})
	}

	for _, level := range slices.Sorted(maps.Keys(levels)) {
		items := levels[level]
		sort.SliceStable(items, func(a, b int) bool {
			return CompareNatural(items[a].code.Value, items[b].code.Value) < 0
		})

		for _, item := range items {
			if item.code.Value == "" {
				continue
			}
			parent := domain.NoTask
			if item.code.HasParent {
				if id, ok := rc.wbs[item.code.Parent]; ok {
					parent = id
				} else {
					rc.report.UnparentedWBS++
				}
			}

			id := rc.project.AddTask(parent)
			task := rc.project.Task(id)
			task.Name = domain.CoalesceStr(item.title, item.code.Value)
			task.WBS = item.code.Value
			task.Summary = true
			rc.wbs[item.code.Value] = id
			rc.report.WBSNodes++
		}
	}
}

func (rc *reconstruction) readActivities() {
	parents := make(map[string]domain.TaskID)
	for row := range rc.db.Table(TableWBSXref).All() {
		code := rc.format.Parse(row.StringOr("CODE_VALUE", ""))
		if id, ok := rc.wbs[code.Value]; ok {
			parents[row.StringOr("ACTIVITY_ID", "")] = id
		}
	}

	rows := rc.db.Table(TableActivities).Rows()
	sort.SliceStable(rows, func(a, b int) bool {
		return CompareNatural(rows[a].StringOr("ACTIVITY_ID", ""), rows[b].StringOr("ACTIVITY_ID", "")) < 0
	})

	for _, row := range rows {
		activityID := row.StringOr("ACTIVITY_ID", "")
		parent, ok := parents[activityID]
		if !ok {
			parent = domain.NoTask
			rc.report.UnparentedActivities++
		}

		id := rc.project.AddTask(parent)
		task := rc.project.Task(id)
		taskFields.apply(task, row)
		task.Start = task.EarlyStart
		task.Finish = task.EarlyFinish
		task.Milestone = task.Duration.IsZero()
		if parent != domain.NoTask {
			task.WBS = rc.project.Task(parent).WBS
		}
		task.PercentComplete = domain.ClampPercent(task.PercentComplete)

		applyStartFlag(task, row)
		applyFinishFlag(task, row)

		// Only total slack is stored; start and finish slack are inferred.
		task.InferSlack()
		task.Critical = task.TotalSlack != nil && task.TotalSlack.Value <= 0

		rc.activity[activityID] = id
		rc.report.Activities++
	}
}

func applyStartFlag(task *domain.Task, row btrieve.Row) {
	date := row.DatePtr("AS_OR_ED_CONSTRAINT")
	switch row.IntOr("ACTUAL_START_OR_CONSTRAINT_FLAG", 0) {
	case flagStartNoEarlier:
		task.SetConstraint(domain.ConstraintStartNoEarlierThan, date)
	case flagFinishNoEarlier:
		task.SetConstraint(domain.ConstraintFinishNoEarlier, date)
	case flagActual:
		task.ActualStart = date
	}
}

func applyFinishFlag(task *domain.Task, row btrieve.Row) {
	date := row.DatePtr("AF_OR_LD_CONSTRAINT")
	switch row.IntOr("ACTUAL_FINISH_OR_CONSTRAINT_FLAG", 0) {
	case flagStartNoLater:
		task.SetConstraint(domain.ConstraintStartNoLaterThan, date)
	case flagFinishNoLater:
		task.SetConstraint(domain.ConstraintFinishNoLaterThan, date)
	case flagActual:
		task.ActualFinish = date
	}
}

func (rc *reconstruction) readRelations() {
	for row := range rc.db.Table(TableRelations).All() {
		pred, okPred := rc.activity[row.StringOr("PREDECESSOR_ACTIVITY_ID", "")]
		succ, okSucc := rc.activity[row.StringOr("SUCCESSOR_ACTIVITY_ID", "")]
		if !okPred || !okSucc {
			rc.report.DroppedRelations++
			continue
		}

		rel := domain.Relation{Predecessor: pred, Successor: succ, Type: domain.RelationStartFinish}
		if t, err := row.RelationType("LAG_TYPE"); err == nil {
			rel.Type = t
		}
		if lag, err := row.Duration("LAG_VALUE"); err == nil {
			rel.Lag = lag
		} else {
			rel.Lag = domain.Days(0)
		}
		rc.project.Relations = append(rc.project.Relations, rel)
		rc.report.Relations++
	}
}

func (rc *reconstruction) readAssignments() {
	for row := range rc.db.Table(TableAssignments).All() {
		task, okTask := rc.activity[row.StringOr("ACTIVITY_ID", "")]
		code := row.StringOr("RESOURCE_ID", "")
		if !okTask || !rc.resources[code] {
			rc.report.DroppedAssignments++
			continue
		}
		rc.project.Assignments = append(rc.project.Assignments, domain.Assignment{Task: task, ResourceCode: code})
		rc.report.Assignments++
	}
}
