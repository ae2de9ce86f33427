// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL schema of the local cache and applies it
// with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// VersionTable is the bookkeeping table goose maintains next to the schema.
const VersionTable = "goose_db_version"

// Tables lists every table created by the embedded migrations, children
// before parents, so dropping them in order never trips a foreign key.
var Tables = []string{
	"last_auto_sync_of_group",
	"last_update_on_channels_list",
	"user_options",
	"options",
	"ballots",
	"conversation_messages",
	"conversations",
	"user_groups",
	"study_groups",
	"app_settings",
	"local_user",
	"users",
	"reminders",
	"announcements",
	"messages",
	"moderator_channels",
	"moderators",
	"subscribed_channels",
	"sports",
	"events",
	"lectures",
	"channels",
}

// Migrate applies all pending migrations to db.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	goose.SetTableName(VersionTable)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
