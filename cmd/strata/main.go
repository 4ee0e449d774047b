package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/strata/internal/cli"
	"github.com/alexanderramin/strata/internal/config"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/p3"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/alexanderramin/strata/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{
		IsInteractive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
	}

	app.Setup = func(ctx context.Context, cfg config.Config, withStore bool) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

		var observers []service.UseCaseObserver
		if cfg.LogUseCases {
			observers = append(observers, service.NewSlogUseCaseObserver(logger))
		}

		reader := p3.NewReader(p3.NewCatalog(), p3.LoadOptions{
			Workers: cfg.ScanWorkers,
			Logger:  logger,
		})
		app.Schedule = service.NewScheduleService(reader, observers...)

		if !withStore {
			return nil
		}

		// Open database
		var err error
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.DebugContext(ctx, "snapshot store opened", "path", cfg.DBPath)

		app.Snapshots = service.NewSnapshotService(
			reader,
			repository.NewSQLiteSnapshotRepo(database),
			db.NewSQLiteUnitOfWork(database),
			observers...,
		)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
