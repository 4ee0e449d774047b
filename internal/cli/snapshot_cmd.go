package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/cli/formatter"
)

func newSnapshotCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:         "snapshot <dir>",
		Short:       "Store a reconstructed project in the snapshot database",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prefix, err := resolveProject(ctx, app, args[0], project)
			if err != nil {
				return err
			}
			snap, err := app.Snapshots.Capture(ctx, args[0], prefix)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotCreated(snap))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (file prefix)")

	cmd.AddCommand(
		newSnapshotListCmd(app),
		newSnapshotShowCmd(app),
		newSnapshotRemoveCmd(app),
	)
	return cmd
}

func newSnapshotListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := app.Snapshots.List(cmd.Context(), project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotList(snaps))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "only snapshots of this project")
	return cmd
}

func newSnapshotShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render the task tree stored in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Snapshots.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.Header(p.DisplayName())+"\n"+formatter.FormatProjectTree(p))
			return nil
		},
	}
}

func newSnapshotRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Delete a snapshot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Snapshots.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("snapshot %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
			return nil
		},
	}
}
