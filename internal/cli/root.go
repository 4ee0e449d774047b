package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/config"
	"github.com/alexanderramin/strata/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Schedule  service.ScheduleService
	Snapshots service.SnapshotService

	// Setup, when set, runs after flags are parsed and wires the services
	// from the resolved configuration. withStore is true for commands that
	// touch the snapshot database. Tests assign services directly and leave
	// it nil.
	Setup func(ctx context.Context, cfg config.Config, withStore bool) error

	// IsInteractive reports whether stdin and stdout are a terminal.
	IsInteractive func() bool

	// PickProject chooses among several projects. Defaults to a huh select.
	PickProject func(names []string) (string, error)

	// Config is populated before any subcommand runs.
	Config config.Config
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// annotationStore marks commands that need the snapshot database.
const annotationStore = "strata/store"

func usesStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationStore] == "true" {
			return true
		}
	}
	return false
}

type rootFlags struct {
	configDir string
	verbose   bool
}

// NewRootCmd creates the top-level "strata" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "strata",
		Short:         "Read Primavera P3 schedule databases",
		Long:          "strata reconstructs projects from legacy Primavera P3 (Btrieve) directories\nand renders, exports or snapshots them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/strata)")
	pf.String("db", "", "snapshot database path (default: ~/.strata/strata.db)")
	pf.Int("workers", 1, "tables scanned in parallel")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.Bool("log-use-cases", false, "log each use case to stderr")
	pf.String("color", "auto", "styled output: auto, always or never")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "shorthand for --log-level=debug")

	root.AddCommand(
		newProjectsCmd(app),
		newShowCmd(app),
		newTablesCmd(app),
		newExportCmd(app),
		newSnapshotCmd(app),
		newBrowseCmd(app),
	)

	return root
}

func (a *App) configure(cmd *cobra.Command, flags rootFlags) error {
	dir, err := config.ResolveConfigDir(flags.configDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir, cmd.Flags())
	if err != nil {
		return err
	}
	if flags.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	a.Config = cfg

	switch cfg.Color {
	case config.ColorAlways:
		formatter.SetColorEnabled(true)
	case config.ColorNever:
		formatter.SetColorEnabled(false)
	}

	if a.Setup != nil {
		if err := a.Setup(cmd.Context(), cfg, usesStore(cmd)); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}
	return nil
}
