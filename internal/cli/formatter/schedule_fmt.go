package formatter

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/p3"
	"github.com/alexanderramin/strata/internal/service"
)

// TaskStatus classifies a task for display: "done", "in_progress" or "".
func TaskStatus(t *domain.Task) string {
	switch {
	case t.ActualFinish != nil || t.PercentComplete >= 100:
		return "done"
	case t.ActualStart != nil || t.PercentComplete > 0:
		return "in_progress"
	default:
		return ""
	}
}

// ProjectTreeItems flattens the task hierarchy of p in display order.
func ProjectTreeItems(p *domain.Project) []TreeItem {
	items := make([]TreeItem, 0, len(p.Tasks))
	var visit func(id domain.TaskID, last []bool)
	visit = func(id domain.TaskID, last []bool) {
		t := p.Task(id)
		code := t.ActivityID
		if code == "" {
			code = t.WBS
		}
		detail := FormatSpan(t.Start, t.Finish)
		if t.ActivityID != "" {
			detail += "  " + FormatPercent(t.PercentComplete)
		}
		items = append(items, TreeItem{
			Title:     t.Name,
			Code:      code,
			Level:     len(last),
			Last:      last,
			Status:    TaskStatus(t),
			Critical:  t.Critical,
			Milestone: t.Milestone,
			Detail:    detail,
		})
		for i, c := range t.Children {
			child := make([]bool, len(last), len(last)+1)
			copy(child, last)
			visit(c, append(child, i == len(t.Children)-1))
		}
	}
	for _, r := range p.Roots {
		visit(r, nil)
	}
	return items
}

// FormatProjectTree renders the task hierarchy of p.
func FormatProjectTree(p *domain.Project) string {
	if len(p.Tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	return RenderTree(ProjectTreeItems(p))
}

// FormatProject renders a reconstructed project: header properties and
// summary counts side by side, followed by the task tree.
func FormatProject(res *service.ReadResult) string {
	p := res.Project
	meta := buildPropertiesPanel(p)
	summary := buildSummaryPanel(res.Summary, res.Report)
	top := lipgloss.JoinHorizontal(lipgloss.Top, meta, "    ", summary)

	return RenderBox(p.DisplayName(), top) + "\n\n" + FormatProjectTree(p)
}

func field(label, value string) string {
	return fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value)
}

func buildPropertiesPanel(p *domain.Project) string {
	props := p.Properties
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.DisplayName()) + "\n")
	if props.Company != "" {
		b.WriteString(StylePurple.Render(props.Company) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(field("PREFIX", props.Prefix))
	b.WriteString(field("SOURCE", props.FileApplication+" "+props.FileType))
	b.WriteString(field("START", FormatDate(props.StartDate)))
	b.WriteString(field("FINISH", FormatDate(props.FinishDate)))
	b.WriteString(field("STATUS", FormatDate(props.StatusDate)))
	if p.DefaultCalendar != "" {
		b.WriteString(field("CALENDAR", p.DefaultCalendar))
	}
	return b.String()
}

func buildSummaryPanel(s service.ProjectSummary, r p3.Report) string {
	var b strings.Builder
	b.WriteString(Header("Summary") + "\n")
	b.WriteString(field("WBS", strconv.Itoa(s.WBSNodes)))
	b.WriteString(field("ACTIVITY", strconv.Itoa(s.Activities)))
	b.WriteString(field("DONE", StyleGreen.Render(strconv.Itoa(s.Completed))))
	b.WriteString(field("STARTED", StyleYellow.Render(strconv.Itoa(s.InProgress))))
	b.WriteString(field("CRITICAL", StyleRed.Render(strconv.Itoa(s.Critical))))
	b.WriteString(field("MILESTN", strconv.Itoa(s.Milestones)))
	b.WriteString(field("LINKS", strconv.Itoa(s.Relations)))
	b.WriteString(field("PROGRESS", ProgressStyle(s.ProgressPct).Render(FormatPercent(s.ProgressPct))))
	if dropped := r.DroppedRelations + r.DroppedAssignments; dropped > 0 {
		b.WriteString(field("DROPPED", StyleYellow.Render(strconv.Itoa(dropped))))
	}
	return b.String()
}

// FormatProjectNames lists the projects found in dir.
func FormatProjectNames(dir string, names []string) string {
	if len(names) == 0 {
		return Dim(fmt.Sprintf("No P3 projects in %s.", dir)) + "\n"
	}
	rows := make([][]string, 0, len(names))
	for i, n := range names {
		rows = append(rows, []string{strconv.Itoa(i + 1), Bold(n)})
	}
	return RenderBox("Projects", RenderTableAligned([]string{"#", "PREFIX"}, rows, []Align{AlignRight}))
}

// FormatTables renders per-table row counts and scan statistics.
func FormatTables(tables []service.TableSummary) string {
	headers := []string{"TABLE", "FILE", "ROWS", "PAGES", "LIVE", "DELETED", "REJECTED", "SUPERSEDED"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight}
	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, []string{
			Bold(t.Code),
			Dim(filepath.Base(t.File)),
			strconv.Itoa(t.Rows),
			strconv.Itoa(t.Stats.Pages),
			strconv.Itoa(t.Stats.LivePages),
			strconv.Itoa(t.Stats.DeletedSlots),
			strconv.Itoa(t.Stats.Rejected),
			strconv.Itoa(t.Superseded),
		})
	}
	return RenderTableAligned(headers, rows, align)
}

// FormatTableDump renders the decoded rows of one table, one column per
// line, so wide tables stay readable.
func FormatTableDump(d *service.TableDump) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s (%d rows)", d.Code, len(d.Rows))) + "\n")
	if !d.Present {
		b.WriteString(Dim(fmt.Sprintf("No %s file for this project.", d.Code)) + "\n")
		return b.String()
	}
	if len(d.Rows) == 0 {
		b.WriteString(Dim("No rows.") + "\n")
		return b.String()
	}

	width := 0
	for _, c := range d.Columns {
		width = max(width, len(c))
	}
	for i, row := range d.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, c := range d.Columns {
			v, _ := row.Get(c)
			b.WriteString(StyleDim.Render(fmt.Sprintf("%-*s", width, c)) + "  " + FormatValue(v) + "\n")
		}
	}
	return b.String()
}

// FormatSnapshotList renders stored snapshots, newest first.
func FormatSnapshotList(snaps []*domain.Snapshot) string {
	if len(snaps) == 0 {
		return Dim("No snapshots.") + "\n"
	}
	headers := []string{"ID", "PREFIX", "PROJECT", "TASKS", "START", "FINISH", "TAKEN"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.Prefix),
			s.ProjectName,
			strconv.Itoa(s.TaskCount),
			FormatDate(s.StartDate),
			FormatDate(s.FinishDate),
			HumanTimestamp(s.CreatedAt),
		})
	}
	return RenderBox("Snapshots", RenderTableAligned(headers, rows, align))
}

// FormatSnapshotCreated confirms a captured snapshot.
func FormatSnapshotCreated(s *domain.Snapshot) string {
	return fmt.Sprintf("%s Snapshot %s of %s (%d tasks)\n",
		StyleGreen.Render("✔"), Bold(s.ID), s.ProjectName, s.TaskCount)
}
