package p3_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/p3"
	"github.com/alexanderramin/strata/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func read(t *testing.T, f *testutil.P3Fixture) (*domain.Project, p3.Report) {
	t.Helper()
	dir := f.Write()
	project, report, err := p3.NewReader(nil, p3.LoadOptions{}).ReadWithReport(context.Background(), dir, f.Prefix)
	require.NoError(t, err)
	return project, report
}

func byActivity(p *domain.Project, id string) *domain.Task {
	for n := range p.Tasks {
		if p.Tasks[n].ActivityID == id {
			return &p.Tasks[n]
		}
	}
	return nil
}

func byWBS(p *domain.Project, wbs string) *domain.Task {
	for n := range p.Tasks {
		if p.Tasks[n].Summary && p.Tasks[n].WBS == wbs {
			return &p.Tasks[n]
		}
	}
	return nil
}

func TestRead_EndToEndHierarchy(t *testing.T) {
	f := testutil.NewP3Fixture(t, "PROJ").
		Header(nil).
		WBS("0102", "Foundations").
		WBS("01", "Site").
		WBS("0101", "").
		Activity("A100", "0102", testutil.Values{
			"ACTIVITY_TITLE": "Pour footings",
			"EARLY_START":    date(2020, 2, 3),
			"EARLY_FINISH":   date(2020, 2, 7),
		})

	project, report := read(t, f)
	require.Len(t, project.Roots, 1)
	assert.Equal(t, 3, report.WBSNodes)
	assert.Equal(t, 1, report.Activities)

	site := project.Task(project.Roots[0])
	assert.Equal(t, "Site", site.Name)
	assert.Equal(t, "01", site.WBS)
	require.Len(t, site.Children, 2)

	first := project.Task(site.Children[0])
	second := project.Task(site.Children[1])
	assert.Equal(t, "01.01", first.WBS)
	assert.Equal(t, "01.01", first.Name, "blank title falls back to the WBS code")
	assert.Equal(t, "Foundations", second.Name)
	require.Len(t, second.Children, 1)

	act := project.Task(second.Children[0])
	assert.Equal(t, "A100", act.ActivityID)
	assert.Equal(t, "Pour footings", act.Name)
	assert.Equal(t, "01.02", act.WBS)
	assert.Equal(t, 2, project.Depth(act.ID))

	for _, summary := range []*domain.Task{site, second} {
		require.NotNil(t, summary.Start)
		require.NotNil(t, summary.Finish)
		assert.Equal(t, *act.Start, *summary.Start)
		assert.Equal(t, *act.Finish, *summary.Finish)
	}
	assert.Nil(t, first.Start, "an empty summary has no dates")
}

func TestRead_ProjectProperties(t *testing.T) {
	f := testutil.NewP3Fixture(t, "ABCD").
		Header(testutil.Values{
			"PROJECT_TITLE":       "Bridge",
			"COMPANY_TITLE":       "Acme",
			"PROJECT_FINISH_DATE": date(2021, 6, 30),
			"CURRENT_DATA_DATE":   date(2020, 3, 1),
		})

	project, _ := read(t, f)
	props := project.Properties
	assert.Equal(t, "Bridge", props.Name)
	assert.Equal(t, "Acme", props.Company)
	assert.Equal(t, "P3", props.FileApplication)
	assert.Equal(t, "BTRIEVE", props.FileType)
	assert.Equal(t, "ABCD", props.Prefix)
	require.NotNil(t, props.StartDate)
	assert.Equal(t, date(2020, 1, 6), *props.StartDate)
	require.NotNil(t, props.FinishDate)
	assert.Equal(t, date(2021, 6, 30), *props.FinishDate)
	require.NotNil(t, props.StatusDate)
	assert.Equal(t, date(2020, 3, 1), *props.StatusDate)

	require.Len(t, project.Calendars, 1)
	assert.Equal(t, domain.DefaultCalendarName, project.DefaultCalendar)
}

func TestRead_HeaderRowErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		f := testutil.NewP3Fixture(t, "NOHD").
			Header(testutil.Values{"PROJECT_START_DATE": uint32(1980010100)})
		dir := f.Write()

		_, err := p3.NewReader(nil, p3.LoadOptions{}).Read(context.Background(), dir, "NOHD")
		assert.ErrorIs(t, err, p3.ErrMissingHeaderRow)
	})

	t.Run("ambiguous", func(t *testing.T) {
		f := testutil.NewP3Fixture(t, "TWOH").
			Header(testutil.Values{"SUB_PROJECT_NAME": "SUB1"}).
			Header(testutil.Values{"SUB_PROJECT_NAME": "SUB2"})
		dir := f.Write()

		_, err := p3.NewReader(nil, p3.LoadOptions{}).Read(context.Background(), dir, "TWOH")
		assert.ErrorIs(t, err, p3.ErrAmbiguousHeaderRow)
	})

	t.Run("master row wins over sub-projects", func(t *testing.T) {
		f := testutil.NewP3Fixture(t, "MAST").
			Header(testutil.Values{"SUB_PROJECT_NAME": "SUB1", "PROJECT_TITLE": "Sub"}).
			Header(testutil.Values{"PROJECT_TITLE": "Master"})

		project, _ := read(t, f)
		assert.Equal(t, "Master", project.Properties.Name)
	})

	t.Run("stale slot superseded", func(t *testing.T) {
		f := testutil.NewP3Fixture(t, "VERS")
		f.Row(p3.TableHeader, 5, testutil.Values{
			"PROJECT_TITLE":      "Current",
			"PROJECT_START_DATE": date(2020, 1, 6),
			"WBSW_01":            2,
		})
		f.Row(p3.TableHeader, 2, testutil.Values{
			"PROJECT_TITLE":      "Stale",
			"PROJECT_START_DATE": date(2019, 1, 7),
		})

		project, _ := read(t, f)
		assert.Equal(t, "Current", project.Properties.Name)
	})
}

func TestRead_ActivityFields(t *testing.T) {
	f := testutil.NewP3Fixture(t, "ACTS").
		Header(nil).
		Activity("A1", "", testutil.Values{
			"ORIGINAL_DURATION":  10,
			"REMAINING_DURATION": 4,
			"PERCENT_COMPLETE":   60.0,
			"TOTAL_FLOAT":        3,
			"FREE_FLOAT":         1,
			"EARLY_START":        date(2020, 1, 6),
			"EARLY_FINISH":       date(2020, 1, 17),
			"LATE_START":         date(2020, 1, 9),
			"LATE_FINISH":        date(2020, 1, 22),
		}).
		Activity("A2", "", testutil.Values{
			"ORIGINAL_DURATION": 0,
			"PERCENT_COMPLETE":  150.0,
			"TOTAL_FLOAT":       -2,
		}).
		Activity("A3", "", testutil.Values{"PERCENT_COMPLETE": -5.0})

	project, report := read(t, f)
	assert.Equal(t, 3, report.UnparentedActivities)
	assert.Len(t, project.Roots, 3)

	a1 := byActivity(project, "A1")
	require.NotNil(t, a1)
	assert.Equal(t, domain.Days(10), a1.Duration)
	assert.Equal(t, domain.Days(4), a1.RemainingDuration)
	assert.Equal(t, 60.0, a1.PercentComplete)
	assert.False(t, a1.Milestone)
	assert.False(t, a1.Critical)
	require.NotNil(t, a1.Start)
	assert.Equal(t, date(2020, 1, 6), *a1.Start)
	assert.Equal(t, date(2020, 1, 17), *a1.Finish)
	assert.Equal(t, date(2020, 1, 22), *a1.LateFinish)
	require.NotNil(t, a1.TotalSlack)
	require.NotNil(t, a1.StartSlack)
	require.NotNil(t, a1.FinishSlack)
	assert.Equal(t, 3.0, a1.StartSlack.Value)
	assert.Equal(t, 3.0, a1.FinishSlack.Value)
	assert.Equal(t, 1.0, a1.FreeSlack.Value)

	a2 := byActivity(project, "A2")
	require.NotNil(t, a2)
	assert.True(t, a2.Milestone)
	assert.True(t, a2.Critical)
	assert.Equal(t, 100.0, a2.PercentComplete)

	a3 := byActivity(project, "A3")
	require.NotNil(t, a3)
	assert.Equal(t, 0.0, a3.PercentComplete)
}

func TestRead_ConstraintAndActualFlags(t *testing.T) {
	c := date(2020, 4, 1)
	e := date(2020, 5, 1)
	f := testutil.NewP3Fixture(t, "FLAG").
		Header(nil).
		Activity("SNET", "", testutil.Values{"ACTUAL_START_OR_CONSTRAINT_FLAG": 1, "AS_OR_ED_CONSTRAINT": c}).
		Activity("FNET", "", testutil.Values{"ACTUAL_START_OR_CONSTRAINT_FLAG": 3, "AS_OR_ED_CONSTRAINT": c}).
		Activity("SNLT", "", testutil.Values{"ACTUAL_FINISH_OR_CONSTRAINT_FLAG": 2, "AF_OR_LD_CONSTRAINT": e}).
		Activity("FNLT", "", testutil.Values{"ACTUAL_FINISH_OR_CONSTRAINT_FLAG": 4, "AF_OR_LD_CONSTRAINT": e}).
		Activity("DONE", "", testutil.Values{
			"ACTUAL_START_OR_CONSTRAINT_FLAG":  99,
			"AS_OR_ED_CONSTRAINT":              c,
			"ACTUAL_FINISH_OR_CONSTRAINT_FLAG": 99,
			"AF_OR_LD_CONSTRAINT":              e,
		}).
		Activity("NONE", "", testutil.Values{"ACTUAL_START_OR_CONSTRAINT_FLAG": 7, "AS_OR_ED_CONSTRAINT": c})

	project, _ := read(t, f)

	tests := []struct {
		id   string
		kind domain.ConstraintType
		date *time.Time
	}{
		{"SNET", domain.ConstraintStartNoEarlierThan, &c},
		{"FNET", domain.ConstraintFinishNoEarlier, &c},
		{"SNLT", domain.ConstraintStartNoLaterThan, &e},
		{"FNLT", domain.ConstraintFinishNoLaterThan, &e},
		{"DONE", domain.ConstraintNone, nil},
		{"NONE", domain.ConstraintNone, nil},
	}
	for _, tt := range tests {
		task := byActivity(project, tt.id)
		require.NotNil(t, task, tt.id)
		assert.Equal(t, tt.kind, task.ConstraintType, tt.id)
		assert.Equal(t, tt.date, task.ConstraintDate, tt.id)
	}

	done := byActivity(project, "DONE")
	require.NotNil(t, done.ActualStart)
	require.NotNil(t, done.ActualFinish)
	assert.Equal(t, c, *done.ActualStart)
	assert.Equal(t, e, *done.ActualFinish)
	assert.Nil(t, byActivity(project, "NONE").ActualStart)
}

func TestRead_ActivitiesSortNaturally(t *testing.T) {
	f := testutil.NewP3Fixture(t, "SORT").
		Header(nil).
		WBS("01", "Phase").
		Activity("A10", "01", nil).
		Activity("A9", "01", nil).
		Activity("A100", "01", nil)

	project, _ := read(t, f)
	phase := byWBS(project, "01")
	require.NotNil(t, phase)
	var ids []string
	for _, c := range phase.Children {
		ids = append(ids, project.Task(c).ActivityID)
	}
	assert.Equal(t, []string{"A9", "A10", "A100"}, ids)
}

func TestRead_WBSWithMissingParentAttachesToRoot(t *testing.T) {
	f := testutil.NewP3Fixture(t, "ORPH").
		Header(nil).
		WBS("0201", "Orphan").
		WBS("01", "Top")

	project, report := read(t, f)
	assert.Len(t, project.Roots, 2)
	assert.Equal(t, 1, report.UnparentedWBS)
}

func TestRead_RelationsAndAssignments(t *testing.T) {
	f := testutil.NewP3Fixture(t, "RELS").
		Header(nil).
		Activity("A1", "", nil).
		Activity("A2", "", nil).
		Row(p3.TableResources, 1, testutil.Values{"RES_ID": "CARP", "RES_TITLE": "Carpenter"}).
		Row(p3.TableRelations, 1, testutil.Values{
			"PREDECESSOR_ACTIVITY_ID": "A1",
			"SUCCESSOR_ACTIVITY_ID":   "A2",
			"LAG_TYPE":                domain.RelationStartStart,
			"LAG_VALUE":               2,
		}).
		Row(p3.TableRelations, 1, testutil.Values{
			"PREDECESSOR_ACTIVITY_ID": "A1",
			"SUCCESSOR_ACTIVITY_ID":   "GONE",
		}).
		Row(p3.TableAssignments, 1, testutil.Values{"ACTIVITY_ID": "A2", "RESOURCE_ID": "CARP"}).
		Row(p3.TableAssignments, 1, testutil.Values{"ACTIVITY_ID": "A2", "RESOURCE_ID": "NOBODY"}).
		Row(p3.TableAssignments, 1, testutil.Values{"ACTIVITY_ID": "ZZ", "RESOURCE_ID": "CARP"})

	project, report := read(t, f)

	require.Len(t, project.Resources, 1)
	assert.Equal(t, domain.Resource{UniqueID: 1, Code: "CARP", Name: "Carpenter"}, project.Resources[0])

	require.Len(t, project.Relations, 1)
	rel := project.Relations[0]
	a1 := byActivity(project, "A1")
	a2 := byActivity(project, "A2")
	assert.Equal(t, a1.ID, rel.Predecessor)
	assert.Equal(t, a2.ID, rel.Successor)
	assert.Equal(t, domain.RelationStartStart, rel.Type)
	assert.Equal(t, domain.Days(2), rel.Lag)
	assert.Len(t, project.PredecessorsOf(a2.ID), 1)
	assert.Equal(t, 1, report.DroppedRelations)

	require.Len(t, project.Assignments, 1)
	assert.Equal(t, domain.Assignment{Task: a2.ID, ResourceCode: "CARP"}, project.Assignments[0])
	assert.Equal(t, 2, report.DroppedAssignments)
}

func TestRead_ParallelMatchesSequential(t *testing.T) {
	f := testutil.NewP3Fixture(t, "PARA").
		Header(nil).
		WBS("01", "Top").
		WBS("0101", "Child").
		Activity("A1", "0101", testutil.Values{"EARLY_START": date(2020, 1, 6), "EARLY_FINISH": date(2020, 1, 10)}).
		Activity("A2", "0101", nil).
		Row(p3.TableRelations, 1, testutil.Values{"PREDECESSOR_ACTIVITY_ID": "A1", "SUCCESSOR_ACTIVITY_ID": "A2"})
	dir := f.Write()

	seq, err := p3.NewReader(nil, p3.LoadOptions{}).Read(context.Background(), dir, "PARA")
	require.NoError(t, err)
	par, err := p3.NewReader(nil, p3.LoadOptions{Workers: 4}).Read(context.Background(), dir, "PARA")
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestRead_UnknownProject(t *testing.T) {
	_, err := p3.NewReader(nil, p3.LoadOptions{}).Read(context.Background(), t.TempDir(), "NOPE")
	assert.ErrorIs(t, err, p3.ErrUnknownProject)
}

func TestRead_ShortPageIsFatal(t *testing.T) {
	f := testutil.NewP3Fixture(t, "SHRT").Header(nil)
	dir := f.Write()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SHRTACT.P3"), make([]byte, 100), 0o644))

	_, err := p3.NewReader(nil, p3.LoadOptions{}).Read(context.Background(), dir, "SHRT")
	require.Error(t, err)
	assert.True(t, btrieve.IsStructural(err))
	assert.ErrorIs(t, err, btrieve.ErrShortPage)
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	testutil.NewP3Fixture(t, "BBBB").InDir(dir).Header(testutil.Values{"PROJECT_TITLE": "Second"}).Write()
	testutil.NewP3Fixture(t, "AAAA").InDir(dir).Header(testutil.Values{"PROJECT_TITLE": "First"}).Write()

	reader := p3.NewReader(nil, p3.LoadOptions{})
	projects, err := reader.ReadAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "First", projects[0].Properties.Name)
	assert.Equal(t, "Second", projects[1].Properties.Name)

	first, report, err := reader.ReadFirst(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "AAAA", first.Properties.Prefix)
	assert.Zero(t, report.Activities)
}

func TestReadFirst_EmptyDirectory(t *testing.T) {
	_, _, err := p3.NewReader(nil, p3.LoadOptions{}).ReadFirst(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, p3.ErrNoProjects)
}
