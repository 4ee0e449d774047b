package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/p3"
	"github.com/alexanderramin/strata/internal/service"
)

// readProject reads the project named by name. With no name and no
// terminal to ask on, the first project of dir is read.
func readProject(ctx context.Context, app *App, dir, name string) (*service.ReadResult, error) {
	if name == "" && !app.interactive() {
		return app.Schedule.ReadFirst(ctx, dir)
	}
	prefix, err := resolveProject(ctx, app, dir, name)
	if err != nil {
		return nil, err
	}
	return app.Schedule.Read(ctx, dir, prefix)
}

// resolveProject returns the project prefix to read from dir. An explicit
// name wins. A directory holding one project needs no choice; several are
// offered in a picker on a terminal, otherwise the first sorted name is used.
func resolveProject(ctx context.Context, app *App, dir, name string) (string, error) {
	if name != "" {
		return name, nil
	}

	names, err := app.Schedule.ListProjects(ctx, dir)
	if err != nil {
		return "", err
	}

	switch {
	case len(names) == 0:
		return "", fmt.Errorf("%s: %w", dir, p3.ErrNoProjects)
	case len(names) == 1 || !app.interactive():
		return names[0], nil
	}

	pick := app.PickProject
	if pick == nil {
		pick = pickProjectForm
	}
	return pick(names)
}

func pickProjectForm(names []string) (string, error) {
	choice := names[0]
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Description(fmt.Sprintf("%d projects in this directory", len(names))).
				Options(huh.NewOptions(names...)...).
				Value(&choice),
		),
	).WithTheme(strataHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("choosing project: %w", err)
	}
	return choice, nil
}

// strataHuhTheme returns a huh theme using the formatter palette.
func strataHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
