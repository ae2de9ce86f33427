// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/MKhiriev/uni-news-store/internal/logger"
	"github.com/MKhiriev/uni-news-store/migrations"
)

const (
	enableForeignKeys  = `PRAGMA foreign_keys = ON;`
	disableForeignKeys = `PRAGMA foreign_keys = OFF;`
	dropTable          = `DROP TABLE IF EXISTS %s;`
)

// EnsureSchema creates every table that does not exist yet and switches on
// foreign key enforcement. Existing data is left untouched.
func (db *DB) EnsureSchema(ctx context.Context) error {
	release, err := db.lock(ctx, db.gateTimeout)
	if err != nil {
		return err
	}
	defer release()

	return db.ensureSchema(ctx)
}

// ResetSchema drops every table of the cache and recreates an empty schema.
// All cached data is lost.
func (db *DB) ResetSchema(ctx context.Context) error {
	log := logger.FromContextOr(ctx, db.logger)

	release, err := db.lock(ctx, db.gateTimeout)
	if err != nil {
		return err
	}
	defer release()

	if _, err = db.ExecContext(ctx, disableForeignKeys); err != nil {
		log.Err(err).Str("func", "DB.ResetSchema").Msg("failed to disable foreign keys")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	tables := append(slices.Clone(migrations.Tables), migrations.VersionTable)
	for _, table := range tables {
		if _, err = db.ExecContext(ctx, fmt.Sprintf(dropTable, table)); err != nil {
			log.Err(err).Str("func", "DB.ResetSchema").Str("table", table).Msg("failed to drop table")
			return fmt.Errorf("%w: %w", ErrStorageWrite, err)
		}
	}
	log.Info().Str("func", "DB.ResetSchema").Msg("dropped all tables")

	return db.ensureSchema(ctx)
}

// ensureSchema expects the gate to be held. goose runs on the pool, so no
// dedicated connection may be open at this point.
func (db *DB) ensureSchema(ctx context.Context) error {
	log := logger.FromContextOr(ctx, db.logger)

	if err := migrations.Migrate(db.DB); err != nil {
		log.Err(err).Str("func", "DB.ensureSchema").Msg("failed to apply migrations")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	if _, err := db.ExecContext(ctx, enableForeignKeys); err != nil {
		log.Err(err).Str("func", "DB.ensureSchema").Msg("failed to enable foreign keys")
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	log.Debug().Str("func", "DB.ensureSchema").Msg("schema is up to date")
	return nil
}

// TableCounts returns the number of rows in every cache table.
func (db *DB) TableCounts(ctx context.Context) (map[string]int, error) {
	log := logger.FromContextOr(ctx, db.logger)

	counts := make(map[string]int, len(migrations.Tables))
	err := db.read(ctx, db.gateTimeout, func(ctx context.Context, conn *sql.Conn) error {
		for _, table := range migrations.Tables {
			n, _, err := queryInt(ctx, conn, fmt.Sprintf(countRows, table))
			if err != nil {
				return fmt.Errorf("table %s: %w", table, err)
			}
			counts[table] = n
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "DB.TableCounts").Msg("failed to count rows")
		return nil, err
	}

	return counts, nil
}
