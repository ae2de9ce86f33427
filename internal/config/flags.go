// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"time"
)

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-d database DSN
//	-gate-timeout bounded wait for database access (e.g. "4s")
//	-cleanup-interval housekeeping period (e.g. "1h")
//	-auto-sync-retention lifetime of auto-sync marks (e.g. "720h")
//	-log-level zerolog level name
//	-c/-config json file path with configs
//
// Positional arguments left after the flags are returned as rest.
func parseFlags(args []string) (cfg *StructuredConfig, rest []string, err error) {
	fs := flag.NewFlagSet("uni-news-store", flag.ContinueOnError)

	var databaseDSN string
	var gateTimeout time.Duration
	var cleanupInterval time.Duration
	var autoSyncRetention time.Duration
	var logLevel string
	var jsonConfigPath string

	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.DurationVar(&gateTimeout, "gate-timeout", 0, "Database access wait bound (e.g., 4s)")
	fs.DurationVar(&cleanupInterval, "cleanup-interval", 0, "Housekeeping interval (e.g., 1h)")
	fs.DurationVar(&autoSyncRetention, "auto-sync-retention", 0, "Auto-sync marks retention (e.g., 720h)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err = fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				DSN:         databaseDSN,
				GateTimeout: gateTimeout,
			},
		},
		Workers: Workers{
			CleanupInterval:   cleanupInterval,
			AutoSyncRetention: autoSyncRetention,
		},
		Log: Log{
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
}
