// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/MKhiriev/uni-news-store/internal/logger"
)

// DB is the single handle to the local cache database. All repository
// operations go through its gate, so at most one of them talks to SQLite
// at a time.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	gate        *semaphore.Weighted
	gateTimeout time.Duration
}

// Querier is the statement surface shared by *sql.Conn and *sql.Tx, so the
// same helpers run inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func newDB(conn *sql.DB, gateTimeout time.Duration, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
		gate:               semaphore.NewWeighted(1),
		gateTimeout:        gateTimeout,
	}
}

// GateTimeout returns the bounded wait configured for this database.
func (db *DB) GateTimeout() time.Duration {
	return db.gateTimeout
}
