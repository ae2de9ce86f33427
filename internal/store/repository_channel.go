// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/uni-news-store/internal/logger"
	"github.com/MKhiriev/uni-news-store/models"
)

// channelRepository is the SQLite-backed implementation of [ChannelRepository].
//
// A channel is stored as one row in "channels" plus, for lectures, events and
// sports channels, exactly one row in the matching subtype table. Both are
// always written in the same transaction.
type channelRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

// NewChannelRepository constructs a [ChannelRepository] on top of db.
func NewChannelRepository(db *DB, logger *logger.Logger) ChannelRepository {
	logger.Debug().Msg("creating channel repository")
	return &channelRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreChannel inserts the base row and the subtype row dispatched by
// channel.Type. On any failure nothing of the channel is left behind.
func (r *channelRepository) StoreChannel(ctx context.Context, channel models.Channel) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			return insertChannelWithSubtype(ctx, tx, channel)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.StoreChannel").
			Int("channel_id", channel.ID).
			Str("type", string(channel.Type)).
			Msg("failed to store channel")
		return err
	}

	return nil
}

// StoreChannels inserts all channels in a single transaction.
func (r *channelRepository) StoreChannels(ctx context.Context, channels ...models.Channel) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(channels) == 0 {
		return nil
	}

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			for _, channel := range channels {
				if err := insertChannelWithSubtype(ctx, tx, channel); err != nil {
					return fmt.Errorf("channel %d: %w", channel.ID, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.StoreChannels").
			Int("count", len(channels)).
			Msg("failed to store channels")
		return err
	}

	return nil
}

// UpdateChannel updates base columns only. The channel type and local state
// (notification setting, deletion notice) are kept; use
// UpdateChannelWithSubtype to change the type.
func (r *channelRepository) UpdateChannel(ctx context.Context, channel models.Channel) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return updateChannelBase(ctx, conn, channel)
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.UpdateChannel").
			Int("channel_id", channel.ID).
			Msg("failed to update channel")
		return err
	}

	return nil
}

// UpdateChannelWithSubtype updates the base row and the subtype row in one
// transaction. If the type changed, rows in the other subtype tables are
// removed so the channel keeps exactly one extension.
func (r *channelRepository) UpdateChannelWithSubtype(ctx context.Context, channel models.Channel) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			if err := updateChannelBase(ctx, tx, channel); err != nil {
				return err
			}
			if _, err := exec(ctx, tx, updateChannelType, string(channel.Type), channel.ID); err != nil {
				return err
			}
			for _, subtype := range channelSubtypes {
				if subtype.channelType == channel.Type {
					continue
				}
				if _, err := exec(ctx, tx, subtype.deleteQuery, channel.ID); err != nil {
					return err
				}
			}
			return writeChannelSubtype(ctx, tx, channel, true)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.UpdateChannelWithSubtype").
			Int("channel_id", channel.ID).
			Str("type", string(channel.Type)).
			Msg("failed to update channel with subtype")
		return err
	}

	return nil
}

func (r *channelRepository) UpdateNotificationSetting(ctx context.Context, channelID int, setting models.NotificationSetting) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateChannelNotificationSetting, string(setting), channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.UpdateNotificationSetting").
			Int("channel_id", channelID).
			Msg("failed to update notification setting")
		return err
	}

	return nil
}

// GetChannel returns the channel with its subtype details and unread
// announcement count, or nil when no such channel is stored.
func (r *channelRepository) GetChannel(ctx context.Context, channelID int) (*models.Channel, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var channel *models.Channel
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		channels, err := selectChannels(ctx, conn, channelFilter{ID: &channelID})
		if err != nil {
			return err
		}
		if len(channels) > 0 {
			channel = &channels[0]
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.GetChannel").
			Int("channel_id", channelID).
			Msg("failed to get channel")
		return nil, err
	}

	return channel, nil
}

func (r *channelRepository) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return r.listChannels(ctx, "channelRepository.ListChannels", channelFilter{})
}

// ListSubscribedChannels returns only the channels the local user follows.
func (r *channelRepository) ListSubscribedChannels(ctx context.Context) ([]models.Channel, error) {
	return r.listChannels(ctx, "channelRepository.ListSubscribedChannels", channelFilter{SubscribedOnly: true})
}

func (r *channelRepository) listChannels(ctx context.Context, fn string, filter channelFilter) ([]models.Channel, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var channels []models.Channel
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		channels, err = selectChannels(ctx, conn, filter)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to list channels")
		return nil, err
	}

	return channels, nil
}

func (r *channelRepository) ChannelExists(ctx context.Context, channelID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, channelExists, channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.ChannelExists").
			Int("channel_id", channelID).
			Msg("failed to check channel existence")
		return false, err
	}

	return exists, nil
}

// DeleteChannel removes the channel for good. Announcement messages are
// deleted first since they are only reachable through the channel; the
// remaining child rows follow by cascade.
func (r *channelRepository) DeleteChannel(ctx context.Context, channelID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			if _, err := exec(ctx, tx, deleteChannelAnnouncementMessages, channelID); err != nil {
				return err
			}
			_, err := exec(ctx, tx, deleteChannel, channelID)
			return err
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.DeleteChannel").
			Int("channel_id", channelID).
			Msg("failed to delete channel")
		return err
	}

	return nil
}

// MarkChannelDeleted flags the channel as deleted on the server but keeps
// the row and its announcements.
func (r *channelRepository) MarkChannelDeleted(ctx context.Context, channelID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, markChannelDeleted, channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.MarkChannelDeleted").
			Int("channel_id", channelID).
			Msg("failed to mark channel deleted")
		return err
	}

	return nil
}

func (r *channelRepository) IsChannelDeletionNoticed(ctx context.Context, channelID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var noticed bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		v, _, err := queryInt(ctx, conn, selectChannelDeletionNoticed, channelID)
		noticed = v == 1
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.IsChannelDeletionNoticed").
			Int("channel_id", channelID).
			Msg("failed to read deletion notice")
		return false, err
	}

	return noticed, nil
}

func (r *channelRepository) SetChannelDeletionNoticed(ctx context.Context, channelID int, noticed bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateChannelDeletionNoticed, noticed, channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.SetChannelDeletionNoticed").
			Int("channel_id", channelID).
			Msg("failed to set deletion notice")
		return err
	}

	return nil
}

// SubscribeChannel records a local subscription. Failures are logged only.
func (r *channelRepository) SubscribeChannel(ctx context.Context, channelID int) {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, subscribeChannel, channelID)
		return err
	})
	if err != nil {
		log.Warn().Err(err).
			Str("func", "channelRepository.SubscribeChannel").
			Int("channel_id", channelID).
			Msg("could not subscribe channel, ignoring")
	}
}

// UnsubscribeChannel removes a local subscription. Failures are logged only.
func (r *channelRepository) UnsubscribeChannel(ctx context.Context, channelID int) {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, unsubscribeChannel, channelID)
		return err
	})
	if err != nil {
		log.Warn().Err(err).
			Str("func", "channelRepository.UnsubscribeChannel").
			Int("channel_id", channelID).
			Msg("could not unsubscribe channel, ignoring")
	}
}

func (r *channelRepository) IsChannelSubscribed(ctx context.Context, channelID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var subscribed bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		subscribed, err = queryBool(ctx, conn, channelSubscribed, channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.IsChannelSubscribed").
			Int("channel_id", channelID).
			Msg("failed to check subscription")
		return false, err
	}

	return subscribed, nil
}

// AddOrUpdateResponsibleModerator links the moderator to the channel or
// changes the active flag of an existing link. Check and write share one
// gate access.
func (r *channelRepository) AddOrUpdateResponsibleModerator(ctx context.Context, channelID, moderatorID int, active bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		linked, err := queryBool(ctx, conn, moderatorChannelExists, moderatorID, channelID)
		if err != nil {
			return err
		}
		if linked {
			_, err = exec(ctx, conn, updateModeratorChannel, active, moderatorID, channelID)
			return err
		}
		_, err = exec(ctx, conn, insertModeratorChannel, moderatorID, channelID, active)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.AddOrUpdateResponsibleModerator").
			Int("channel_id", channelID).
			Int("moderator_id", moderatorID).
			Msg("failed to add or update responsible moderator")
		return err
	}

	return nil
}

// RemoveAllResponsibleModerators drops every moderator link of the channel.
// Failures are logged only: deleting the channel cleans the links anyway.
func (r *channelRepository) RemoveAllResponsibleModerators(ctx context.Context, channelID int) {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteModeratorChannels, channelID)
		return err
	})
	if err != nil {
		log.Warn().Err(err).
			Str("func", "channelRepository.RemoveAllResponsibleModerators").
			Int("channel_id", channelID).
			Msg("could not remove responsible moderators, ignoring")
	}
}

// ListResponsibleModerators returns the moderators linked to the channel
// with the per-link active flag.
func (r *channelRepository) ListResponsibleModerators(ctx context.Context, channelID int) ([]models.Moderator, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var moderators []models.Moderator
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectResponsibleModerators, channelID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var m models.Moderator
			if err = rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Active); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			moderators = append(moderators, m)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.ListResponsibleModerators").
			Int("channel_id", channelID).
			Msg("failed to list responsible moderators")
		return nil, err
	}

	return moderators, nil
}

func (r *channelRepository) IsResponsibleModerator(ctx context.Context, channelID, moderatorID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var responsible bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		responsible, err = queryBool(ctx, conn, isResponsibleModerator, moderatorID, channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "channelRepository.IsResponsibleModerator").
			Int("channel_id", channelID).
			Int("moderator_id", moderatorID).
			Msg("failed to check responsible moderator")
		return false, err
	}

	return responsible, nil
}

// channelSubtypes drives subtype writes. Order is fixed so statements are
// issued deterministically.
var channelSubtypes = []struct {
	channelType models.ChannelType
	deleteQuery string
}{
	{models.ChannelLecture, deleteLecture},
	{models.ChannelEvent, deleteEvent},
	{models.ChannelSports, deleteSports},
}

func insertChannelWithSubtype(ctx context.Context, q Querier, channel models.Channel) error {
	setting := channel.AnnouncementNotificationSetting
	if setting == "" {
		setting = models.NotificationApplicationDefault
	}

	_, err := exec(ctx, q, insertChannel,
		channel.ID,
		channel.Name,
		channel.Description,
		toMillis(channel.CreationDate),
		toMillis(channel.ModificationDate),
		channel.Term,
		channel.Location,
		channel.Dates,
		channel.Contact,
		channel.Website,
		channel.Deleted,
		channel.DeletionNoticed,
		string(setting),
	)
	if err != nil {
		return err
	}

	return writeChannelSubtype(ctx, q, channel, false)
}

func updateChannelBase(ctx context.Context, q Querier, channel models.Channel) error {
	_, err := exec(ctx, q, updateChannel,
		channel.Name,
		channel.Description,
		toMillis(channel.CreationDate),
		toMillis(channel.ModificationDate),
		channel.Term,
		channel.Location,
		channel.Dates,
		channel.Contact,
		channel.Website,
		channel.Deleted,
		channel.ID,
	)
	return err
}

// writeChannelSubtype writes the extension row matching channel.Type.
// Student group and other channels have none.
func writeChannelSubtype(ctx context.Context, q Querier, channel models.Channel, upsert bool) error {
	var err error

	switch channel.Type {
	case models.ChannelLecture:
		if channel.Lecture == nil {
			return fmt.Errorf("%w: lecture %d", ErrMissingChannelDetails, channel.ID)
		}
		query := insertLecture
		if upsert {
			query = upsertLecture
		}
		_, err = exec(ctx, q, query,
			channel.ID,
			string(channel.Lecture.Faculty),
			channel.Lecture.StartDate,
			channel.Lecture.EndDate,
			channel.Lecture.Lecturer,
			channel.Lecture.Assistant,
		)
	case models.ChannelEvent:
		if channel.Event == nil {
			return fmt.Errorf("%w: event %d", ErrMissingChannelDetails, channel.ID)
		}
		query := insertEvent
		if upsert {
			query = upsertEvent
		}
		_, err = exec(ctx, q, query, channel.ID, channel.Event.Cost, channel.Event.Organizer)
	case models.ChannelSports:
		if channel.Sports == nil {
			return fmt.Errorf("%w: sports %d", ErrMissingChannelDetails, channel.ID)
		}
		query := insertSports
		if upsert {
			query = upsertSports
		}
		_, err = exec(ctx, q, query, channel.ID, channel.Sports.Cost, channel.Sports.NumberOfParticipants)
	case models.ChannelStudentGroup, models.ChannelOther:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChannelType, channel.Type)
	}

	return err
}

func selectChannels(ctx context.Context, q Querier, filter channelFilter) ([]models.Channel, error) {
	query, args, err := buildSelectChannelsQuery(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return channels, nil
}

func scanChannel(s scanner) (models.Channel, error) {
	var (
		channel               models.Channel
		channelType, setting  string
		created, modified     sql.NullInt64
		faculty, lectureStart sql.NullString
		lectureEnd, lecturer  sql.NullString
		assistant, eventCost  sql.NullString
		organizer, sportsCost sql.NullString
		participants          sql.NullString
	)

	err := s.Scan(
		&channel.ID,
		&channel.Name,
		&channel.Description,
		&channelType,
		&created,
		&modified,
		&channel.Term,
		&channel.Location,
		&channel.Dates,
		&channel.Contact,
		&channel.Website,
		&channel.Deleted,
		&channel.DeletionNoticed,
		&setting,
		&faculty,
		&lectureStart,
		&lectureEnd,
		&lecturer,
		&assistant,
		&eventCost,
		&organizer,
		&sportsCost,
		&participants,
		&channel.UnreadAnnouncements,
	)
	if err != nil {
		return models.Channel{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	channel.CreationDate = fromMillis(created)
	channel.ModificationDate = fromMillis(modified)

	if channel.Type, err = parseStored("channels.type", channelType, models.ParseChannelType); err != nil {
		return models.Channel{}, err
	}
	if channel.AnnouncementNotificationSetting, err = parseStored("channels.notification_setting", setting, models.ParseNotificationSetting); err != nil {
		return models.Channel{}, err
	}

	switch channel.Type {
	case models.ChannelLecture:
		if !faculty.Valid {
			return models.Channel{}, fmt.Errorf("%w: lecture %d", ErrMissingChannelDetails, channel.ID)
		}
		f, err := parseStored("lectures.faculty", faculty.String, models.ParseFaculty)
		if err != nil {
			return models.Channel{}, err
		}
		channel.Lecture = &models.LectureDetails{
			Faculty:   f,
			StartDate: lectureStart.String,
			EndDate:   lectureEnd.String,
			Lecturer:  lecturer.String,
			Assistant: assistant.String,
		}
	case models.ChannelEvent:
		if !eventCost.Valid {
			return models.Channel{}, fmt.Errorf("%w: event %d", ErrMissingChannelDetails, channel.ID)
		}
		channel.Event = &models.EventDetails{Cost: eventCost.String, Organizer: organizer.String}
	case models.ChannelSports:
		if !sportsCost.Valid {
			return models.Channel{}, fmt.Errorf("%w: sports %d", ErrMissingChannelDetails, channel.ID)
		}
		channel.Sports = &models.SportsDetails{Cost: sportsCost.String, NumberOfParticipants: participants.String}
	}

	return channel, nil
}

// isNoRows reports whether err only says that a lookup found nothing.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
