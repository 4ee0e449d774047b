package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title string
	Code  string // activity ID or WBS code, shown dimmed before the title
	Level int
	// Last holds, for each level from 1 to Level, whether the ancestor at
	// that level (the item itself for the final entry) is the last child of
	// its parent. It selects the connector drawn in that column.
	Last      []bool
	Status    string
	Critical  bool
	Milestone bool
	Detail    string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Completed items get a green ✔
// prefix, started items an amber ▶, milestones a ◆ and critical items a red
// title. Detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix strings.Builder
		for lvl := 1; lvl <= item.Level; lvl++ {
			last := lvl-1 < len(item.Last) && item.Last[lvl-1]
			switch {
			case lvl < item.Level && last:
				prefix.WriteString(treeBlank)
			case lvl < item.Level:
				prefix.WriteString(treePipe)
			case last:
				prefix.WriteString(treeCorner)
			default:
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		switch {
		case item.Critical:
			title = StyleRed.Render(title)
		case strings.EqualFold(item.Status, "done"):
			title = Dim(title)
		case strings.EqualFold(item.Status, "in_progress"):
			title = StyleYellowBold.Render(title)
		}
		if item.Code != "" {
			title = StyleDim.Render(item.Code+" ") + title
		}

		marker := ""
		switch {
		case item.Milestone:
			marker = StylePurple.Render("◆ ")
		case strings.EqualFold(item.Status, "done"):
			marker = StyleGreen.Render("✔ ")
		case strings.EqualFold(item.Status, "in_progress"):
			marker = StyleYellowBold.Render("▶ ")
		}

		content := Dim(prefix.String()) + marker + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := max(0, maxContentWidth-lipgloss.Width(li.content))
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}
