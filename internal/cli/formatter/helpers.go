package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/btrieve"
	"github.com/alexanderramin/strata/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatDate renders a schedule date as YYYY-MM-DD, or "--" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.Format("2006-01-02")
}

// FormatSpan renders "start → finish" using FormatDate for each end.
func FormatSpan(start, finish *time.Time) string {
	return FormatDate(start) + " → " + FormatDate(finish)
}

// FormatPercent renders a percentage with at most one decimal.
func FormatPercent(pct float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(pct, 'f', 1, 64), ".0") + "%"
}

// FormatDays renders a duration as working days, e.g. "5d" or "-2d".
func FormatDays(d *domain.Duration) string {
	if d == nil {
		return "--"
	}
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + "d"
}

// FormatValue renders a decoded column value for table dumps. Fixed-width
// text is shown without its padding.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return Dim("∅")
	case string:
		return strconv.Quote(btrieve.TrimText(x))
	case time.Time:
		return x.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case domain.Duration:
		return FormatDays(&x)
	case domain.RelationType:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom is HumanTimestamp relative to now.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
