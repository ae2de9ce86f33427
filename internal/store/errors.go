// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Failure categories returned by every repository method. Callers should
// use [errors.Is]; the underlying cause stays in the chain as well.
var (
	// ErrDatabaseAccessTimeout is returned when the database gate could not
	// be acquired within the configured bounded wait.
	ErrDatabaseAccessTimeout = errors.New("database access timed out")

	// ErrStorageRead is returned when reading from the cache failed, including
	// rows holding values that cannot be mapped back to model types.
	ErrStorageRead = errors.New("storage read failure")

	// ErrStorageWrite is returned when a write, or a transaction around it,
	// failed. Transactional writes leave no partial state behind.
	ErrStorageWrite = errors.New("storage write failure")
)

// Domain errors.
var (
	// ErrUnknownChannelType is returned when a channel carries a type the
	// store cannot persist a subtype row for.
	ErrUnknownChannelType = errors.New("unknown channel type")

	// ErrMissingChannelDetails is returned when a lecture, event or sports
	// channel is stored without its subtype details.
	ErrMissingChannelDetails = errors.New("channel subtype details are missing")

	// ErrLocalUserExists is returned by StoreLocalUser when a local account
	// is already present. There is at most one.
	ErrLocalUserExists = errors.New("local user already exists")
)

// Low-level database operation errors. These are wrapped inside one of the
// categories above.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared.
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrInvalidStoredValue is returned when a column holds a value that is
	// not a member of the expected enum.
	ErrInvalidStoredValue = errors.New("invalid stored value")
)
