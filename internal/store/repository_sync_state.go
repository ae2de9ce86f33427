// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/uni-news-store/internal/logger"
	"github.com/MKhiriev/uni-news-store/models"
)

// syncStateRepository keeps the bookkeeping the sync controller relies on:
// timestamps of the last refreshes and the per-group flags.
type syncStateRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	logger.Debug().Msg("creating sync state repository")
	return &syncStateRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// GetLastChannelListUpdate returns the zero time when nothing was recorded
// yet or the read failed.
func (r *syncStateRepository) GetLastChannelListUpdate(ctx context.Context) time.Time {
	log := logger.FromContextOr(ctx, r.logger)

	var at time.Time
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var v sql.NullInt64
		err := conn.QueryRowContext(ctx, selectLastChannelListUpdate, lastChannelListUpdateID).Scan(&v)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		at = fromMillis(v)
		return nil
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("func", "syncStateRepository.GetLastChannelListUpdate").
			Msg("failed to read last channel list update, assuming none")
		return time.Time{}
	}

	return at
}

// SetLastChannelListUpdate records at. A zero at clears the timestamp.
func (r *syncStateRepository) SetLastChannelListUpdate(ctx context.Context, at time.Time) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, upsertLastChannelListUpdate, lastChannelListUpdateID, toMillis(at))
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SetLastChannelListUpdate").
			Time("at", at).
			Msg("failed to set last channel list update")
		return err
	}

	return nil
}

// GetLastAutoSync returns the zero time when the group was never synced
// automatically.
func (r *syncStateRepository) GetLastAutoSync(ctx context.Context, groupID int) (time.Time, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var at time.Time
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var v sql.NullInt64
		err := conn.QueryRowContext(ctx, selectLastAutoSync, groupID).Scan(&v)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		at = fromMillis(v)
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.GetLastAutoSync").
			Int("group_id", groupID).
			Msg("failed to get last auto sync")
		return time.Time{}, err
	}

	return at, nil
}

// SetLastAutoSync records at for the group. A zero at reads back as never
// synced.
func (r *syncStateRepository) SetLastAutoSync(ctx context.Context, groupID int, at time.Time) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, upsertLastAutoSync, groupID, toMillis(at))
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SetLastAutoSync").
			Int("group_id", groupID).
			Time("at", at).
			Msg("failed to set last auto sync")
		return err
	}

	return nil
}

// ListDirtyGroups returns the groups with local changes not yet pushed.
// Participants are not loaded.
func (r *syncStateRepository) ListDirtyGroups(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var groups []models.Group
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		groups, err = selectGroupRows(ctx, conn, selectDirtyGroups)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.ListDirtyGroups").
			Msg("failed to list dirty groups")
		return nil, err
	}

	return groups, nil
}

func (r *syncStateRepository) ResetDirtyFlags(ctx context.Context) error {
	log := logger.FromContextOr(ctx, r.logger)

	var reset int64
	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		reset, err = exec(ctx, conn, resetDirtyFlags)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.ResetDirtyFlags").
			Msg("failed to reset dirty flags")
		return err
	}

	log.Debug().Int64("groups", reset).Msg("dirty flags reset")
	return nil
}

func (r *syncStateRepository) SetGroupDirty(ctx context.Context, groupID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, setGroupDirty, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SetGroupDirty").
			Int("group_id", groupID).
			Msg("failed to mark group dirty")
		return err
	}

	return nil
}

// SetHasNewEventFlag writes the flag and marks the group dirty, but only
// when the stored value differs. Unknown groups are ignored.
func (r *syncStateRepository) SetHasNewEventFlag(ctx context.Context, groupID int, value bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var current bool
		err := conn.QueryRowContext(ctx, selectHasNewEvent, groupID).Scan(&current)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if current == value {
			return nil
		}

		_, err = exec(ctx, conn, updateHasNewEvent, value, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.SetHasNewEventFlag").
			Int("group_id", groupID).
			Bool("value", value).
			Msg("failed to set has-new-event flag")
		return err
	}

	return nil
}

func (r *syncStateRepository) SetGroupDeletionNoticed(ctx context.Context, groupID int, noticed bool) error {
	return r.setFlag(ctx, "SetGroupDeletionNoticed", updateGroupDeletionNoticed, groupID, noticed)
}

func (r *syncStateRepository) IsGroupDeletionNoticed(ctx context.Context, groupID int) (bool, error) {
	return r.flag(ctx, "IsGroupDeletionNoticed", selectGroupDeletionNoticed, groupID)
}

func (r *syncStateRepository) SetRemovedFromGroupNoticed(ctx context.Context, groupID int, noticed bool) error {
	return r.setFlag(ctx, "SetRemovedFromGroupNoticed", updateRemovedFromGroupNoticed, groupID, noticed)
}

func (r *syncStateRepository) IsRemovedFromGroupNoticed(ctx context.Context, groupID int) (bool, error) {
	return r.flag(ctx, "IsRemovedFromGroupNoticed", selectRemovedFromGroupNoticed, groupID)
}

// PurgeNoticedDeletions hard-deletes channels and groups that are flagged
// deleted and whose deletion the user has seen. Their messages go first
// since messages are only linked from the child tables.
func (r *syncStateRepository) PurgeNoticedDeletions(ctx context.Context) (PurgeResult, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var result PurgeResult
	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			if _, err := exec(ctx, tx, purgeNoticedChannelMessages); err != nil {
				return err
			}
			channels, err := exec(ctx, tx, purgeNoticedChannels)
			if err != nil {
				return err
			}

			if _, err = exec(ctx, tx, purgeNoticedGroupMessages); err != nil {
				return err
			}
			groups, err := exec(ctx, tx, purgeNoticedGroups)
			if err != nil {
				return err
			}

			result = PurgeResult{Channels: int(channels), Groups: int(groups)}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.PurgeNoticedDeletions").
			Msg("failed to purge noticed deletions")
		return PurgeResult{}, err
	}

	log.Debug().
		Int("channels", result.Channels).
		Int("groups", result.Groups).
		Msg("noticed deletions purged")
	return result, nil
}

// PruneAutoSyncMarks drops auto-sync timestamps older than before, and
// cleared ones, and returns how many were removed.
func (r *syncStateRepository) PruneAutoSyncMarks(ctx context.Context, before time.Time) (int, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var pruned int64
	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		pruned, err = exec(ctx, conn, pruneAutoSyncMarks, before.UnixMilli())
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.PruneAutoSyncMarks").
			Time("before", before).
			Msg("failed to prune auto sync marks")
		return 0, err
	}

	return int(pruned), nil
}

func (r *syncStateRepository) setFlag(ctx context.Context, fn, query string, groupID int, value bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, query, value, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository."+fn).
			Int("group_id", groupID).
			Bool("value", value).
			Msg("failed to set group flag")
		return err
	}

	return nil
}

// flag reads a boolean column of study_groups. A missing group reads as
// false.
func (r *syncStateRepository) flag(ctx context.Context, fn, query string, groupID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var value bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, groupID).Scan(&value)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository."+fn).
			Int("group_id", groupID).
			Msg("failed to read group flag")
		return false, err
	}

	return value, nil
}
