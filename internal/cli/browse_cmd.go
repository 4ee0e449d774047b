package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/cli/formatter"
)

func newBrowseCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "browse <dir>",
		Short: "Scroll through a project's task tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := readProject(ctx, app, args[0], project)
			if err != nil {
				return err
			}

			content := formatter.FormatProject(res)
			if !app.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			p := tea.NewProgram(
				newBrowseModel(res.Project.DisplayName(), content),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (file prefix)")
	return cmd
}

type browseKeyMap struct {
	Quit   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	}
}

// browseModel shows rendered output in a scrollable viewport with a title
// line and a status bar.
type browseModel struct {
	title   string
	content string
	keys    browseKeyMap
	vp      viewport.Model
	ready   bool
}

// Rows taken by the title line and the status bar.
const browseChromeHeight = 3

func newBrowseModel(title, content string) browseModel {
	return browseModel{
		title:   title,
		content: strings.TrimRight(content, "\n"),
		keys:    defaultBrowseKeyMap(),
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(1, msg.Height-browseChromeHeight)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.MouseWheelEnabled = true
			m.vp.MouseWheelDelta = 3
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = height
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case !m.ready:
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.vp.GotoBottom()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if !m.ready {
		return formatter.Dim("Loading…")
	}
	title := formatter.StyleHeader.Render(strings.ToUpper(m.title))
	status := scrollIndicator(m.vp) + "  " +
		formatter.Dim("↑/↓ pgup/pgdn scroll · g/G top/bottom · q quit")
	return title + "\n\n" + m.vp.View() + "\n" + status
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
