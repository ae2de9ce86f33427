// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command cachectl maintains the local news cache database.
//
// Usage:
//
//	cachectl <command> [flags]
//
// Commands:
//
//	migrate  create missing tables
//	reset    drop all cached data and recreate the schema
//	purge    run one housekeeping pass
//	stats    print the number of rows per table
//	run      run the housekeeper until interrupted
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/MKhiriev/uni-news-store/internal/config"
	"github.com/MKhiriev/uni-news-store/internal/logger"
	"github.com/MKhiriev/uni-news-store/internal/store"
	"github.com/MKhiriev/uni-news-store/internal/workers"
	"github.com/MKhiriev/uni-news-store/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUsage = errors.New("usage: cachectl <migrate|reset|purge|stats|run> [flags]")

func main() {
	printBuildInfo()

	log := logger.NewLogger("cachectl")
	if len(os.Args) < 2 {
		log.Fatal().Err(errUsage).Msg("no command given")
	}

	cfg, err := config.GetStructuredConfig(os.Args[2:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx)

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open local storage")
	}

	err = runCommand(ctx, os.Args[1], storages, cfg, log, os.Stdout)
	if closeErr := storages.Close(); closeErr != nil {
		log.Err(closeErr).Msg("close local storage")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func runCommand(ctx context.Context, command string, s *store.Storages, cfg *config.StructuredConfig, log *logger.Logger, out io.Writer) error {
	switch command {
	case "migrate":
		// NewStorages has already brought the schema up to date.
		log.Info().Msg("schema is up to date")
		return nil
	case "reset":
		return s.Schema.ResetSchema(ctx)
	case "purge":
		report, err := workers.NewHousekeeper(s.SyncState, cfg.Workers, log).RunOnce(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "purged channels: %d\npurged groups: %d\npruned auto-sync marks: %d\n",
			report.Channels, report.Groups, report.PrunedAutoSyncMarks)
		return err
	case "stats":
		counts, err := s.Schema.TableCounts(ctx)
		if err != nil {
			return err
		}
		return printCounts(out, counts)
	case "run":
		ws := workers.NewWorkers(workers.NewHousekeeper(s.SyncState, cfg.Workers, log))
		ws.Start(ctx)
		log.Info().Dur("interval", cfg.Workers.CleanupInterval).Msg("housekeeper started")
		<-ctx.Done()
		ws.Stop()
		log.Info().Msg("housekeeper stopped")
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
}

// printCounts writes the tables in schema order, then anything unexpected.
func printCounts(out io.Writer, counts map[string]int) error {
	for _, table := range migrations.Tables {
		if _, err := fmt.Fprintf(out, "%-30s %d\n", table, counts[table]); err != nil {
			return err
		}
	}

	var extra []string
	for table := range counts {
		if !slices.Contains(migrations.Tables, table) {
			extra = append(extra, table)
		}
	}
	slices.Sort(extra)
	for _, table := range extra {
		if _, err := fmt.Fprintf(out, "%-30s %d\n", table, counts[table]); err != nil {
			return err
		}
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
