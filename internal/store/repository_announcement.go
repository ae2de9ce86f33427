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

// announcementRepository is the SQLite-backed implementation of
// [AnnouncementRepository]. Every announcement owns one row in "messages"
// and one in "announcements", written together.
type announcementRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewAnnouncementRepository(db *DB, logger *logger.Logger) AnnouncementRepository {
	logger.Debug().Msg("creating announcement repository")
	return &announcementRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

func (r *announcementRepository) StoreAnnouncement(ctx context.Context, announcement models.Announcement) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			return insertAnnouncementRows(ctx, tx, announcement)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "announcementRepository.StoreAnnouncement").
			Int("message_id", announcement.ID).
			Int("channel_id", announcement.ChannelID).
			Msg("failed to store announcement")
		return err
	}

	return nil
}

// BulkInsertAnnouncements stores all announcements in one transaction. A
// failing row does not stop the loop, so every bad row gets logged; the
// transaction is rolled back afterwards and the joined errors returned.
func (r *announcementRepository) BulkInsertAnnouncements(ctx context.Context, announcements []models.Announcement) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(announcements) == 0 {
		return nil
	}

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			var errs []error
			for idx, announcement := range announcements {
				if err := insertAnnouncementRows(ctx, tx, announcement); err != nil {
					log.Err(err).
						Str("func", "announcementRepository.BulkInsertAnnouncements").
						Int("iteration", idx+1).
						Int("total", len(announcements)).
						Int("message_id", announcement.ID).
						Int("message_number", announcement.MessageNumber).
						Msg("failed to insert announcement in transaction")
					errs = append(errs, fmt.Errorf("announcement %d: %w", announcement.ID, err))
				}
			}
			return errors.Join(errs...)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "announcementRepository.BulkInsertAnnouncements").
			Int("count", len(announcements)).
			Msg("bulk insert of announcements rolled back")
		return err
	}

	return nil
}

// DeleteAllAnnouncementsOfChannel is best effort: failures are logged only,
// deleting the channel removes the announcements anyway.
func (r *announcementRepository) DeleteAllAnnouncementsOfChannel(ctx context.Context, channelID int) {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteChannelAnnouncementMessages, channelID)
		return err
	})
	if err != nil {
		log.Warn().Err(err).
			Str("func", "announcementRepository.DeleteAllAnnouncementsOfChannel").
			Int("channel_id", channelID).
			Msg("could not delete announcements of channel, ignoring")
	}
}

// UnreadAnnouncementCountsByChannel maps subscribed channel ids to their
// number of unread announcements. Channels without unread ones are absent.
func (r *announcementRepository) UnreadAnnouncementCountsByChannel(ctx context.Context) (map[int]int, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var counts map[int]int
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		counts, err = queryCounts(ctx, conn, selectUnreadAnnouncementCounts)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "announcementRepository.UnreadAnnouncementCountsByChannel").
			Msg("failed to count unread announcements")
		return nil, err
	}

	return counts, nil
}

// ListAnnouncementsOfChannel returns all announcements in message number
// order.
func (r *announcementRepository) ListAnnouncementsOfChannel(ctx context.Context, channelID int) ([]models.Announcement, error) {
	return r.listAnnouncements(ctx, "announcementRepository.ListAnnouncementsOfChannel", channelID, false, 0, 0)
}

// ListLatestAnnouncements returns one page of announcements, newest first.
func (r *announcementRepository) ListLatestAnnouncements(ctx context.Context, channelID, limit, offset int) ([]models.Announcement, error) {
	return r.listAnnouncements(ctx, "announcementRepository.ListLatestAnnouncements", channelID, true, nonNegative(limit), nonNegative(offset))
}

func (r *announcementRepository) listAnnouncements(ctx context.Context, fn string, channelID int, latest bool, limit, offset uint64) ([]models.Announcement, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var announcements []models.Announcement
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		query, args, err := buildSelectAnnouncementsQuery(ctx, channelID, latest, limit, offset)
		if err != nil {
			return err
		}

		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			announcement, err := scanAnnouncement(rows)
			if err != nil {
				return err
			}
			announcements = append(announcements, announcement)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Int("channel_id", channelID).
			Msg("failed to list announcements")
		return nil, err
	}

	return announcements, nil
}

// HighestAnnouncementNumber returns the incremental-fetch watermark of the
// channel, 0 when it has no announcements.
func (r *announcementRepository) HighestAnnouncementNumber(ctx context.Context, channelID int) (int, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var highest int
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		highest, _, err = queryInt(ctx, conn, selectHighestAnnouncementNumber, channelID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "announcementRepository.HighestAnnouncementNumber").
			Int("channel_id", channelID).
			Msg("failed to read highest message number")
		return 0, err
	}

	return highest, nil
}

func (r *announcementRepository) MarkAnnouncementsRead(ctx context.Context, channelID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		n, err := exec(ctx, conn, markAnnouncementsRead, channelID)
		if err != nil {
			return err
		}
		log.Debug().
			Str("func", "announcementRepository.MarkAnnouncementsRead").
			Int("channel_id", channelID).
			Int64("marked", n).
			Msg("marked announcements read")
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "announcementRepository.MarkAnnouncementsRead").
			Int("channel_id", channelID).
			Msg("failed to mark announcements read")
		return err
	}

	return nil
}

// insertMessageRow writes the generic part shared by announcements and
// conversation messages.
func insertMessageRow(ctx context.Context, q Querier, message models.Message) error {
	priority := message.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	_, err := exec(ctx, q, insertMessage,
		message.ID,
		message.Text,
		toMillis(message.CreationDate),
		string(priority),
		message.Read,
	)
	return err
}

func insertAnnouncementRows(ctx context.Context, q Querier, announcement models.Announcement) error {
	if err := insertMessageRow(ctx, q, announcement.Message); err != nil {
		return err
	}

	_, err := exec(ctx, q, insertAnnouncement,
		announcement.ID,
		announcement.MessageNumber,
		announcement.ChannelID,
		announcement.Title,
		announcement.AuthorModeratorID,
	)
	return err
}

func scanAnnouncement(s scanner) (models.Announcement, error) {
	var (
		announcement models.Announcement
		created      sql.NullInt64
		priority     string
	)

	err := s.Scan(
		&announcement.ID,
		&announcement.Text,
		&created,
		&priority,
		&announcement.Read,
		&announcement.MessageNumber,
		&announcement.ChannelID,
		&announcement.Title,
		&announcement.AuthorModeratorID,
	)
	if err != nil {
		return models.Announcement{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	announcement.CreationDate = fromMillis(created)
	if announcement.Priority, err = parseStored("messages.priority", priority, models.ParsePriority); err != nil {
		return models.Announcement{}, err
	}

	return announcement, nil
}

func nonNegative(v int) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
