// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that defaults alone do not
// provide a DSN.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies the override order and default filling.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "env.db", GateTimeout: time.Second}}},
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "flag.db"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Second, cfg.Storage.DB.GateTimeout)
	assert.Equal(t, DefaultCleanupInterval, cfg.Workers.CleanupInterval)
	assert.Equal(t, DefaultAutoSyncRetention, cfg.Workers.AutoSyncRetention)
	assert.Equal(t, "info", cfg.Log.Level)
}

// TestBuild_RejectsNegativeTimeout verifies validation of durations.
func TestBuild_RejectsNegativeTimeout(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "news.db", GateTimeout: -time.Second}},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// TestBuild_RejectsUnknownLogLevel verifies log level validation.
func TestBuild_RejectsUnknownLogLevel(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "news.db"}},
		Log:     Log{Level: "chatty"},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidLogConfigs)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_JSONOverridesFlagsAndEnv verifies the full chain.
func TestGetStructuredConfig_JSONOverridesFlagsAndEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_DB_DSN":           "env.db",
		"WORKERS_CLEANUP_INTERVAL": "5m",
	})
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{"db": map[string]any{"dsn": "json.db"}},
	})

	cfg, err := GetStructuredConfig([]string{"-d", "flag.db", "-gate-timeout", "2s", "-c", path})
	require.NoError(t, err)

	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Second, cfg.Storage.DB.GateTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Workers.CleanupInterval)
	assert.Equal(t, path, cfg.JSONFilePath)
}

// TestGetStructuredConfig_MissingJSON verifies that an unreadable JSON file is
// reported.
func TestGetStructuredConfig_MissingJSON(t *testing.T) {
	clearEnvVars(t)

	_, err := GetStructuredConfig([]string{"-d", "flag.db", "-c", "/nonexistent/cfg.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}
