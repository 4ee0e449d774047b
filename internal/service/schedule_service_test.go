package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/p3"
	"github.com/alexanderramin/strata/internal/testutil"
)

func newScheduleService(t *testing.T) (ScheduleService, *recordingObserver) {
	t.Helper()
	rec := &recordingObserver{}
	return NewScheduleService(p3.NewReader(nil, p3.LoadOptions{}), rec), rec
}

func TestScheduleService_ListProjects(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "BETA").Demo().Write()
	testutil.NewP3Fixture(t, "ALFA").InDir(dir).Demo().Write()
	svc, rec := newScheduleService(t)

	names, err := svc.ListProjects(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"ALFA", "BETA"}, names)

	ev := rec.last()
	assert.Equal(t, "list-projects", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["projects"])
}

func TestScheduleService_Read(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "DEMO").Demo().Write()
	svc, rec := newScheduleService(t)

	res, err := svc.Read(context.Background(), dir, "DEMO")
	require.NoError(t, err)
	assert.Equal(t, "Demo Tower", res.Project.DisplayName())
	assert.Equal(t, 2, res.Report.WBSNodes)
	assert.Equal(t, 3, res.Report.Activities)

	s := res.Summary
	assert.Equal(t, 5, s.Tasks)
	assert.Equal(t, 3, s.Activities)
	assert.Equal(t, 1, s.Milestones)
	assert.Equal(t, 1, s.Critical)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.NotStarted)
	assert.Equal(t, 1, s.Relations)
	assert.Equal(t, 1, s.Assignments)
	assert.InDelta(t, 750.0/11, s.ProgressPct, 0.001)

	ev := rec.last()
	assert.Equal(t, "read-project", ev.Name)
	assert.Equal(t, 5, ev.Fields["tasks"])
}

func TestScheduleService_ReadFailureIsObserved(t *testing.T) {
	svc, rec := newScheduleService(t)

	_, err := svc.Read(context.Background(), t.TempDir(), "NONE")
	require.ErrorIs(t, err, p3.ErrUnknownProject)

	ev := rec.last()
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, p3.ErrUnknownProject)
}

func TestScheduleService_Tables(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "DEMO").Demo().Write()
	svc, _ := newScheduleService(t)

	tables, err := svc.Tables(context.Background(), dir, "DEMO")
	require.NoError(t, err)

	codes := make([]string, 0, len(tables))
	byCode := map[string]TableSummary{}
	for _, tbl := range tables {
		codes = append(codes, tbl.Code)
		byCode[tbl.Code] = tbl
	}
	assert.Equal(t, []string{"ACT", "DIR", "REL", "RES", "RLB", "STR", "WBS"}, codes)
	assert.Equal(t, 3, byCode["ACT"].Rows)
	assert.Equal(t, 3, byCode["ACT"].Stats.Rows)
	assert.Equal(t, 2, byCode["STR"].Rows)
	assert.Contains(t, byCode["DIR"].File, "DEMODIR.P3")
}

func TestScheduleService_DumpTable(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "DEMO").Demo().Write()
	svc, _ := newScheduleService(t)

	dump, err := svc.DumpTable(context.Background(), dir, "DEMO", "act")
	require.NoError(t, err)
	assert.Equal(t, "ACT", dump.Code)
	require.Len(t, dump.Rows, 3)
	assert.Contains(t, dump.Columns, "ACTIVITY_ID")
	assert.Equal(t, btrieve.ColumnRowNumber, dump.Columns[len(dump.Columns)-1])

	id, err := dump.Rows[0].String("ACTIVITY_ID")
	require.NoError(t, err)
	assert.Equal(t, "A100", id)
}

func TestScheduleService_DumpTable_UnknownType(t *testing.T) {
	svc, _ := newScheduleService(t)

	_, err := svc.DumpTable(context.Background(), t.TempDir(), "DEMO", "XYZ")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestScheduleService_DumpTable_MissingTableIsEmpty(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "DEMO").Header(nil).Write()
	svc, _ := newScheduleService(t)

	dump, err := svc.DumpTable(context.Background(), dir, "DEMO", "REL")
	require.NoError(t, err)
	assert.Empty(t, dump.Rows)
	assert.Empty(t, dump.File)
	assert.False(t, dump.Present)

	dump, err = svc.DumpTable(context.Background(), dir, "DEMO", "DIR")
	require.NoError(t, err)
	assert.True(t, dump.Present)
}

func TestScheduleService_ReadFirst(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "ZULU").Header(nil).Activity("Z1", "", nil).Write()
	testutil.NewP3Fixture(t, "DEMO").InDir(dir).Demo().Write()
	svc, rec := newScheduleService(t)

	res, err := svc.ReadFirst(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "DEMO", res.Project.Properties.Prefix)
	assert.Equal(t, 3, res.Report.Activities)
	assert.Equal(t, 5, res.Summary.Tasks)

	ev := rec.last()
	assert.Equal(t, "read-first-project", ev.Name)
	assert.Equal(t, "DEMO", ev.Fields["project"])

	_, err = svc.ReadFirst(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, p3.ErrNoProjects)
}

func TestScheduleService_ReadAll(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "ZULU").Header(nil).Activity("Z1", "", nil).Write()
	testutil.NewP3Fixture(t, "DEMO").InDir(dir).Demo().Write()
	svc, rec := newScheduleService(t)

	projects, err := svc.ReadAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "DEMO", projects[0].Properties.Prefix)
	assert.Equal(t, "ZULU", projects[1].Properties.Prefix)
	assert.Equal(t, 2, rec.last().Fields["projects"])
}

func TestScheduleService_StructuralFailureIsMarked(t *testing.T) {
	dir := testutil.NewP3Fixture(t, "SHRT").Header(nil).Write()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SHRTACT.P3"), make([]byte, 100), 0o644))
	svc, rec := newScheduleService(t)

	_, err := svc.Read(context.Background(), dir, "SHRT")
	require.ErrorIs(t, err, btrieve.ErrShortPage)
	assert.Equal(t, true, rec.last().Fields["structural"])

	_, err = svc.Read(context.Background(), dir, "NONE")
	require.ErrorIs(t, err, p3.ErrUnknownProject)
	assert.Equal(t, false, rec.last().Fields["structural"])
}
