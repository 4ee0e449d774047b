package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align selects how a table column pads its cells.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	return RenderTableAligned(headers, rows, nil)
}

// RenderTableAligned is RenderTable with per-column alignment. Columns
// beyond len(align) are left aligned.
func RenderTableAligned(headers []string, rows [][]string, align []Align) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Measure visible width so ANSI escape sequences do not count.
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	gap := strings.Repeat(" ", colGap)

	cell := func(b *strings.Builder, i int, text, styled string) {
		pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(text)))
		right := i < len(align) && align[i] == AlignRight
		switch {
		case right:
			b.WriteString(pad + styled)
		case i < cols-1:
			b.WriteString(styled + pad)
		default:
			b.WriteString(styled)
		}
		if i < cols-1 {
			b.WriteString(gap)
		}
	}

	var b strings.Builder

	for i, h := range headers {
		cell(&b, i, h, StyleHeader.Render(h))
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(gap)
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			cell(&b, i, text, text)
		}
		b.WriteString("\n")
	}

	return b.String()
}
