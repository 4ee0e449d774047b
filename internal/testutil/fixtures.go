package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/strata/internal/domain"
)

// ProjectOption customises a project built by NewTestProject.
type ProjectOption func(*domain.Project)

// WithCompany sets the project company.
func WithCompany(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Properties.Company = c
	}
}

// WithStatusDate sets the project status date.
func WithStatusDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Properties.StatusDate = &d
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// NewTestProject builds a small reconstructed project: one WBS summary with
// two activities, a finish-start relation between them and one assignment.
//
//	01        Phase One (summary)
//	  A100    Design
//	  A200    Build (critical)
func NewTestProject(prefix string, opts ...ProjectOption) *domain.Project {
	p := domain.NewProject()
	p.Properties = domain.ProjectProperties{
		Name:            prefix + " Project",
		StartDate:       date(2020, time.January, 6),
		FileApplication: "P3",
		FileType:        "BTRIEVE",
		Prefix:          prefix,
	}
	p.Calendars = []domain.Calendar{domain.NewDefaultCalendar()}
	p.DefaultCalendar = domain.DefaultCalendarName

	wbs := p.AddTask(domain.NoTask)
	summary := p.Task(wbs)
	summary.WBS = "01"
	summary.Name = "Phase One"
	summary.Summary = true

	slack := domain.Days(4)
	designID := p.AddTask(wbs)
	design := p.Task(designID)
	design.ActivityID = "A100"
	design.WBS = "01"
	design.Name = "Design"
	design.PercentComplete = 100
	design.Duration = domain.Days(5)
	design.Start, design.Finish = date(2020, time.January, 6), date(2020, time.January, 10)
	design.EarlyStart, design.EarlyFinish = design.Start, design.Finish
	design.ActualStart, design.ActualFinish = design.Start, design.Finish
	design.TotalSlack = &slack
	design.InferSlack()

	zero := domain.Days(0)
	buildID := p.AddTask(wbs)
	build := p.Task(buildID)
	build.ActivityID = "A200"
	build.WBS = "01"
	build.Name = "Build"
	build.PercentComplete = 40
	build.Duration = domain.Days(10)
	build.Start, build.Finish = date(2020, time.January, 13), date(2020, time.January, 24)
	build.EarlyStart, build.EarlyFinish = build.Start, build.Finish
	build.LateStart, build.LateFinish = build.Start, build.Finish
	build.TotalSlack = &zero
	build.Critical = true
	build.InferSlack()

	p.AddResource(domain.Resource{Code: "ENG", Name: "Engineer"})
	p.Relations = append(p.Relations, domain.Relation{
		Predecessor: designID,
		Successor:   buildID,
		Type:        domain.RelationFinishStart,
		Lag:         domain.Days(0),
	})
	p.Assignments = append(p.Assignments, domain.Assignment{Task: buildID, ResourceCode: "ENG"})

	for _, opt := range opts {
		opt(p)
	}
	p.Rollup()
	return p
}

// NewTestSnapshot describes p with a fresh random ID.
func NewTestSnapshot(p *domain.Project, sourceDir string, created time.Time) *domain.Snapshot {
	s := domain.NewSnapshot(p, sourceDir, created)
	s.ID = uuid.New().String()
	return s
}
