package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/ironlog/internal/config"
	"github.com/claude/ironlog/internal/importer"
	"github.com/claude/ironlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logDir := flag.String("path", "", "path to directory of training-log CSV files (required)")
	stateDir := flag.String("state-dir", ".ironlog-import", "directory for the import state database")
	userID := flag.Int("user", 1, "user ID to import sessions for")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *logDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: ironlog-import -config config.yaml -path /path/to/logs [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*logDir)
	if err != nil || !info.IsDir() {
		log.Error("log path does not exist or is not a directory", "path", *logDir)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	state, err := importer.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("failed to open import state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	imp := importer.New(db, state, log, *userID, *dryRun)
	stats, err := imp.Import(ctx, *logDir)
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"files_processed", stats.FilesProcessed,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
		"sessions_inserted", stats.SessionsInserted,
		"sets_inserted", stats.SetsInserted,
		"exercises_created", stats.ExercisesCreated,
		"prs_flagged", stats.PRsFlagged,
	)
}
