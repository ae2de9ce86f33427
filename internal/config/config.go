// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds the settings of the local SQLite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background housekeeping.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the persistence layer.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the embedded database.
type DB struct {
	// DSN is the SQLite data source name, usually a file path inside the
	// application's private storage (e.g. "/data/news.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// GateTimeout bounds how long an operation waits for exclusive database
	// access before failing.
	// Env: STORAGE_DB_GATE_TIMEOUT
	GateTimeout time.Duration `env:"GATE_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// CleanupInterval is the period of the housekeeping worker.
	// Env: WORKERS_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`

	// AutoSyncRetention is how long per-group auto-sync marks are kept.
	// Env: WORKERS_AUTO_SYNC_RETENTION
	AutoSyncRetention time.Duration `env:"AUTO_SYNC_RETENTION"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

const (
	// DefaultGateTimeout is the bounded wait for the database gate.
	DefaultGateTimeout = 4 * time.Second
	// DefaultCleanupInterval is the housekeeping period.
	DefaultCleanupInterval = time.Hour
	// DefaultAutoSyncRetention is the lifetime of auto-sync marks.
	DefaultAutoSyncRetention = 30 * 24 * time.Hour
)

// DefaultConfig returns the values used for fields no source has set.
func DefaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				GateTimeout: DefaultGateTimeout,
			},
		},
		Workers: Workers{
			CleanupInterval:   DefaultCleanupInterval,
			AutoSyncRetention: DefaultAutoSyncRetention,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
