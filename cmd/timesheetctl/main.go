package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/cli"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/repository/postgresql"
	timesheetService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/timesheet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr so stdout stays valid JSON.
	slog.SetDefault(logger.New(os.Stderr, cfg.App.LogLevel, cfg.App.Env))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	tz, err := cfg.Location()
	if err != nil {
		return err
	}
	locale, err := cfg.Locale()
	if err != nil {
		return err
	}

	app := &cli.App{
		Timesheets: timesheetService.NewTimesheetService(
			postgresql.NewScheduleEntryRepository(db),
			postgresql.NewLocationRepository(db),
			postgresql.NewDelayRoundingRepository(db),
			timesheetService.Options{
				DefaultRounding: cfg.DefaultDelayRounding(),
				Location:        tz,
				Locale:          locale,
			},
		),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
