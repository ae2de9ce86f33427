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

// reminderRepository stores channel reminders. The interval is kept in
// whole seconds.
type reminderRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewReminderRepository(db *DB, logger *logger.Logger) ReminderRepository {
	logger.Debug().Msg("creating reminder repository")
	return &reminderRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

func (r *reminderRepository) StoreReminder(ctx context.Context, reminder models.Reminder) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, insertReminder,
			reminder.ID,
			reminder.ChannelID,
			toMillis(reminder.StartDate),
			toMillis(reminder.EndDate),
			toMillis(reminder.CreationDate),
			toMillis(reminder.ModificationDate),
			int64(reminder.Interval/time.Second),
			reminder.Ignore,
			reminder.Title,
			reminder.Text,
			string(priorityOrNormal(reminder.Priority)),
			reminder.AuthorModeratorID,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.StoreReminder").
			Int("reminder_id", reminder.ID).
			Int("channel_id", reminder.ChannelID).
			Msg("failed to store reminder")
		return err
	}

	return nil
}

func (r *reminderRepository) UpdateReminder(ctx context.Context, reminder models.Reminder) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateReminder,
			reminder.ChannelID,
			toMillis(reminder.StartDate),
			toMillis(reminder.EndDate),
			toMillis(reminder.CreationDate),
			toMillis(reminder.ModificationDate),
			int64(reminder.Interval/time.Second),
			reminder.Ignore,
			reminder.Title,
			reminder.Text,
			string(priorityOrNormal(reminder.Priority)),
			reminder.AuthorModeratorID,
			reminder.ID,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.UpdateReminder").
			Int("reminder_id", reminder.ID).
			Msg("failed to update reminder")
		return err
	}

	return nil
}

// GetReminder returns nil when the reminder is not stored.
func (r *reminderRepository) GetReminder(ctx context.Context, reminderID int) (*models.Reminder, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var reminder *models.Reminder
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rem, err := scanReminder(conn.QueryRowContext(ctx, selectReminder, reminderID))
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return err
		}
		reminder = &rem
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.GetReminder").
			Int("reminder_id", reminderID).
			Msg("failed to get reminder")
		return nil, err
	}

	return reminder, nil
}

func (r *reminderRepository) ListRemindersOfChannel(ctx context.Context, channelID int) ([]models.Reminder, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var reminders []models.Reminder
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectRemindersOfChannel, channelID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			reminder, err := scanReminder(rows)
			if err != nil {
				return err
			}
			reminders = append(reminders, reminder)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.ListRemindersOfChannel").
			Int("channel_id", channelID).
			Msg("failed to list reminders")
		return nil, err
	}

	return reminders, nil
}

func (r *reminderRepository) DeleteReminder(ctx context.Context, reminderID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteReminder, reminderID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.DeleteReminder").
			Int("reminder_id", reminderID).
			Msg("failed to delete reminder")
		return err
	}

	return nil
}

func (r *reminderRepository) SetReminderIgnore(ctx context.Context, reminderID int, ignore bool) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateReminderIgnore, ignore, reminderID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.SetReminderIgnore").
			Int("reminder_id", reminderID).
			Msg("failed to update reminder ignore flag")
		return err
	}

	return nil
}

func (r *reminderRepository) ReminderExists(ctx context.Context, reminderID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, reminderExists, reminderID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "reminderRepository.ReminderExists").
			Int("reminder_id", reminderID).
			Msg("failed to check reminder existence")
		return false, err
	}

	return exists, nil
}

// scanReminder keeps sql.ErrNoRows unwrapped-compatible so callers can
// detect a missing row.
func scanReminder(s scanner) (models.Reminder, error) {
	var (
		reminder                      models.Reminder
		start, end, created, modified sql.NullInt64
		intervalSeconds               int64
		priority                      string
	)

	err := s.Scan(
		&reminder.ID,
		&reminder.ChannelID,
		&start,
		&end,
		&created,
		&modified,
		&intervalSeconds,
		&reminder.Ignore,
		&reminder.Title,
		&reminder.Text,
		&priority,
		&reminder.AuthorModeratorID,
	)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	reminder.StartDate = fromMillis(start)
	reminder.EndDate = fromMillis(end)
	reminder.CreationDate = fromMillis(created)
	reminder.ModificationDate = fromMillis(modified)
	reminder.Interval = time.Duration(intervalSeconds) * time.Second

	if reminder.Priority, err = parseStored("reminders.priority", priority, models.ParsePriority); err != nil {
		return models.Reminder{}, err
	}

	return reminder, nil
}

func priorityOrNormal(p models.Priority) models.Priority {
	if p == "" {
		return models.PriorityNormal
	}
	return p
}
