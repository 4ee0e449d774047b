package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/export"
	"github.com/alexanderramin/strata/internal/service"
)

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects <dir>",
		Short: "List the projects in a P3 directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := app.Schedule.ListProjects(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectNames(args[0], names))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "show <dir>",
		Short: "Render a project's task tree and summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := readProject(cmd.Context(), app, args[0], project)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProject(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (file prefix)")
	return cmd
}

func newTablesCmd(app *App) *cobra.Command {
	var project, table string

	cmd := &cobra.Command{
		Use:   "tables <dir>",
		Short: "Show per-table scan statistics, or the rows of one table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prefix, err := resolveProject(ctx, app, args[0], project)
			if err != nil {
				return err
			}

			if table != "" {
				dump, err := app.Schedule.DumpTable(ctx, args[0], prefix, table)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTableDump(dump))
				return nil
			}

			tables, err := app.Schedule.Tables(ctx, args[0], prefix)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTables(tables))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (file prefix)")
	cmd.Flags().StringVarP(&table, "table", "t", "", "dump the decoded rows of one table type, e.g. ACT")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var project, formatStr, out string
	var all bool

	cmd := &cobra.Command{
		Use:   "export <dir>",
		Short: "Export a reconstructed project as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var projects []*domain.Project
			if all {
				projects, err = app.Schedule.ReadAll(ctx, args[0])
			} else {
				var res *service.ReadResult
				res, err = readProject(ctx, app, args[0], project)
				if res != nil {
					projects = []*domain.Project{res.Project}
				}
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, ferr := os.Create(out)
				if ferr != nil {
					return fmt.Errorf("creating %s: %w", out, ferr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("closing %s: %w", out, cerr)
					}
				}()
				w = f
			}

			if all {
				docs := make([]*export.Document, 0, len(projects))
				for _, p := range projects {
					docs = append(docs, export.FromProject(p))
				}
				if err := export.WriteAll(w, docs, format); err != nil {
					return err
				}
				if out != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d projects to %s\n", len(projects), out)
				}
				return nil
			}

			p := projects[0]
			if err := export.Write(w, export.FromProject(p), format); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s (%d tasks) to %s\n",
					p.DisplayName(), len(p.Tasks), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (file prefix)")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "yaml", "output format: yaml or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "export every project in the directory")
	cmd.MarkFlagsMutuallyExclusive("all", "project")
	return cmd
}
