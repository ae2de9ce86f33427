// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// toMillis converts t to its stored form: unix milliseconds, or NULL for the
// zero time.
func toMillis(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixMilli()
}

// fromMillis is the inverse of toMillis. Values are returned in UTC.
func fromMillis(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.UnixMilli(v.Int64).UTC()
}

// parseStored maps a TEXT column back to an enum, reporting values outside
// the enum as ErrInvalidStoredValue.
func parseStored[T any](column, raw string, parse func(string) (T, error)) (T, error) {
	v, err := parse(raw)
	if err != nil {
		return v, fmt.Errorf("%w: column %s: %w", ErrInvalidStoredValue, column, err)
	}
	return v, nil
}

func exec(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// queryBool runs a single-column boolean query such as SELECT EXISTS(...).
func queryBool(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var v bool
	if err := q.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return v, nil
}

// queryInt runs a single-column integer query. found is false when the
// query produced no row.
func queryInt(ctx context.Context, q Querier, query string, args ...any) (v int, found bool, err error) {
	err = q.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return v, true, nil
}

// queryInts collects a single integer column.
func queryInts(ctx context.Context, q Querier, query string, args ...any) ([]int, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

// queryCounts collects (id, count) pairs.
func queryCounts(ctx context.Context, q Querier, query string, args ...any) (map[int]int, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var id, n int
		if err = rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts[id] = n
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
