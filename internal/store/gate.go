// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/uni-news-store/internal/logger"
)

// operation is the unit of work run while the gate is held. conn is
// dedicated to the operation and closed afterwards.
type operation func(ctx context.Context, conn *sql.Conn) error

// lock waits at most timeout for exclusive access to the database and
// returns the matching release function.
func (db *DB) lock(ctx context.Context, timeout time.Duration) (func(), error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.gate.Acquire(waitCtx, 1); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseAccessTimeout, ctxErr)
		}
		return nil, fmt.Errorf("%w: waited %s", ErrDatabaseAccessTimeout, timeout)
	}

	return func() { db.gate.Release(1) }, nil
}

// access runs op with exclusive access to the database. The gate and the
// connection are released on every exit path, panics included.
func (db *DB) access(ctx context.Context, timeout time.Duration, op operation) error {
	log := logger.FromContextOr(ctx, db.logger)
	opID := newOperationID()

	started := time.Now()
	release, err := db.lock(ctx, timeout)
	if err != nil {
		log.Warn().
			Str("func", "DB.access").
			Str("op_id", opID).
			Dur("waited", time.Since(started)).
			Msg("database gate not acquired")
		return err
	}
	defer release()

	log.Debug().Str("func", "DB.access").Str("op_id", opID).Msg("database gate acquired")

	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer conn.Close()

	err = op(ctx, conn)

	log.Debug().
		Str("func", "DB.access").
		Str("op_id", opID).
		Dur("took", time.Since(started)).
		Bool("failed", err != nil).
		Msg("database gate released")

	return err
}

// read runs op through the gate and reports any failure as ErrStorageRead.
func (db *DB) read(ctx context.Context, timeout time.Duration, op operation) error {
	return db.classify(ctx, ErrStorageRead, db.access(ctx, timeout, op))
}

// write runs op through the gate and reports any failure as ErrStorageWrite.
func (db *DB) write(ctx context.Context, timeout time.Duration, op operation) error {
	return db.classify(ctx, ErrStorageWrite, db.access(ctx, timeout, op))
}

func (db *DB) classify(ctx context.Context, category, err error) error {
	if err == nil || errors.Is(err, ErrDatabaseAccessTimeout) {
		return err
	}

	log := logger.FromContextOr(ctx, db.logger)
	if db.errorClassificator.Classify(err) == Retryable {
		log.Warn().
			Err(err).
			Str("func", "DB.classify").
			Msg("database is busy, operation may be retried")
	}
	if code, ok := constraintCode(err); ok {
		log.Warn().
			Err(err).
			Str("func", "DB.classify").
			Bool("constraint_violation", true).
			Int("sqlite_extended_code", int(code)).
			Msg("constraint violation")
	}

	if errors.Is(err, category) {
		return err
	}

	return fmt.Errorf("%w: %w", category, err)
}

func newOperationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
