// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// runInTransaction executes work inside BEGIN/COMMIT on conn. Any error
// returned by work rolls the transaction back and is handed to the caller
// unchanged. Transactions are never nested: work receives the *sql.Tx only
// as a Querier.
func runInTransaction(ctx context.Context, conn *sql.Conn, work func(ctx context.Context, tx Querier) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = work(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
