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

// groupRepository is the SQLite-backed implementation of [GroupRepository].
//
// Sync flags (is_dirty, has_new_event, deletion_noticed,
// removed_from_group_noticed) start out false and are only changed through
// [SyncStateRepository].
type groupRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	logger.Debug().Msg("creating group repository")
	return &groupRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreGroup inserts the group and, if present, its participants in one
// transaction.
func (r *groupRepository) StoreGroup(ctx context.Context, group models.Group) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			setting := group.NotificationSetting
			if setting == "" {
				setting = models.NotificationApplicationDefault
			}

			_, err := exec(ctx, tx, insertGroup,
				group.ID,
				group.Name,
				group.Description,
				string(group.Type),
				toMillis(group.CreationDate),
				toMillis(group.ModificationDate),
				group.Term,
				group.Deleted,
				group.GroupAdminUserID,
				string(setting),
			)
			if err != nil {
				return err
			}

			return mergeParticipants(ctx, tx, group.ID, group.Participants)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.StoreGroup").
			Int("group_id", group.ID).
			Msg("failed to store group")
		return err
	}

	return nil
}

// UpdateGroup updates the server-side fields; local sync flags and the
// notification setting are kept.
func (r *groupRepository) UpdateGroup(ctx context.Context, group models.Group) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateGroup,
			group.Name,
			group.Description,
			string(group.Type),
			toMillis(group.CreationDate),
			toMillis(group.ModificationDate),
			group.Term,
			group.Deleted,
			group.GroupAdminUserID,
			group.ID,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.UpdateGroup").
			Int("group_id", group.ID).
			Msg("failed to update group")
		return err
	}

	return nil
}

func (r *groupRepository) UpdateGroupNotificationSetting(ctx context.Context, groupID int, setting models.NotificationSetting) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateGroupNotificationSetting, string(setting), groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.UpdateGroupNotificationSetting").
			Int("group_id", groupID).
			Msg("failed to update notification setting")
		return err
	}

	return nil
}

// GetGroup returns nil when the group is not stored. Participants are not
// loaded, see ListParticipants.
func (r *groupRepository) GetGroup(ctx context.Context, groupID int) (*models.Group, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var group *models.Group
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		g, err := scanGroup(conn.QueryRowContext(ctx, selectGroup, groupID))
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return err
		}
		group = &g
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GetGroup").
			Int("group_id", groupID).
			Msg("failed to get group")
		return nil, err
	}

	return group, nil
}

func (r *groupRepository) ListGroups(ctx context.Context) ([]models.Group, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var groups []models.Group
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		groups, err = selectGroupRows(ctx, conn, selectGroups)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "groupRepository.ListGroups").Msg("failed to list groups")
		return nil, err
	}

	return groups, nil
}

func (r *groupRepository) GroupExists(ctx context.Context, groupID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, groupExists, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.GroupExists").
			Int("group_id", groupID).
			Msg("failed to check group existence")
		return false, err
	}

	return exists, nil
}

// DeleteGroup removes the group for good. Conversation message rows are
// deleted first; conversations, ballots, memberships and auto-sync marks
// follow by cascade.
func (r *groupRepository) DeleteGroup(ctx context.Context, groupID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			if _, err := exec(ctx, tx, deleteGroupConversationMessages, groupID); err != nil {
				return err
			}
			_, err := exec(ctx, tx, deleteGroup, groupID)
			return err
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.DeleteGroup").
			Int("group_id", groupID).
			Msg("failed to delete group")
		return err
	}

	return nil
}

func (r *groupRepository) MarkGroupDeleted(ctx context.Context, groupID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, markGroupDeleted, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.MarkGroupDeleted").
			Int("group_id", groupID).
			Msg("failed to mark group deleted")
		return err
	}

	return nil
}

// AddParticipant links the user to the group or updates the active flag of
// an existing link.
func (r *groupRepository) AddParticipant(ctx context.Context, groupID, userID int, active bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return upsertParticipant(ctx, conn, groupID, userID, active)
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.AddParticipant").
			Int("group_id", groupID).
			Int("user_id", userID).
			Msg("failed to add participant")
		return err
	}

	return nil
}

// MergeParticipants stores users not known yet and upserts the membership
// of each one with its Active flag, all in one transaction.
func (r *groupRepository) MergeParticipants(ctx context.Context, groupID int, participants []models.User) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(participants) == 0 {
		return nil
	}

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			return mergeParticipants(ctx, tx, groupID, participants)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.MergeParticipants").
			Int("group_id", groupID).
			Int("count", len(participants)).
			Msg("failed to merge participants")
		return err
	}

	return nil
}

func (r *groupRepository) ChangeParticipantStatus(ctx context.Context, groupID, userID int, active bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateParticipant, active, userID, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.ChangeParticipantStatus").
			Int("group_id", groupID).
			Int("user_id", userID).
			Msg("failed to change participant status")
		return err
	}

	return nil
}

func (r *groupRepository) RemoveParticipant(ctx context.Context, groupID, userID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteParticipant, userID, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.RemoveParticipant").
			Int("group_id", groupID).
			Int("user_id", userID).
			Msg("failed to remove participant")
		return err
	}

	return nil
}

// ListParticipants returns active and inactive members of the group.
func (r *groupRepository) ListParticipants(ctx context.Context, groupID int) ([]models.User, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var users []models.User
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectParticipants, groupID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var u models.User
			if err = rows.Scan(&u.ID, &u.Name, &u.OldName, &u.Active); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			users = append(users, u)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.ListParticipants").
			Int("group_id", groupID).
			Msg("failed to list participants")
		return nil, err
	}

	return users, nil
}

func (r *groupRepository) IsActiveParticipant(ctx context.Context, groupID, userID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var active bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		active, err = queryBool(ctx, conn, isActiveParticipant, userID, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "groupRepository.IsActiveParticipant").
			Int("group_id", groupID).
			Int("user_id", userID).
			Msg("failed to check participant")
		return false, err
	}

	return active, nil
}

func upsertParticipant(ctx context.Context, q Querier, groupID, userID int, active bool) error {
	linked, err := queryBool(ctx, q, participantExists, userID, groupID)
	if err != nil {
		return err
	}
	if linked {
		_, err = exec(ctx, q, updateParticipant, active, userID, groupID)
		return err
	}
	_, err = exec(ctx, q, insertParticipant, userID, groupID, active)
	return err
}

func mergeParticipants(ctx context.Context, q Querier, groupID int, participants []models.User) error {
	for _, user := range participants {
		if err := insertUserIfAbsentRow(ctx, q, user); err != nil {
			return fmt.Errorf("participant %d: %w", user.ID, err)
		}
		if err := upsertParticipant(ctx, q, groupID, user.ID, user.Active); err != nil {
			return fmt.Errorf("participant %d: %w", user.ID, err)
		}
	}
	return nil
}

func selectGroupRows(ctx context.Context, q Querier, query string, args ...any) ([]models.Group, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return groups, nil
}

func scanGroup(s scanner) (models.Group, error) {
	var (
		group             models.Group
		groupType         string
		setting           string
		created, modified sql.NullInt64
	)

	err := s.Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&groupType,
		&created,
		&modified,
		&group.Term,
		&group.Deleted,
		&group.GroupAdminUserID,
		&setting,
		&group.IsDirty,
		&group.HasNewEvent,
		&group.DeletionNoticed,
		&group.RemovedFromGroupNoticed,
	)
	if err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	group.CreationDate = fromMillis(created)
	group.ModificationDate = fromMillis(modified)

	if group.Type, err = parseStored("study_groups.type", groupType, models.ParseGroupType); err != nil {
		return models.Group{}, err
	}
	if group.NotificationSetting, err = parseStored("study_groups.notification_setting", setting, models.ParseNotificationSetting); err != nil {
		return models.Group{}, err
	}

	return group, nil
}
