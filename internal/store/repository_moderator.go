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

type moderatorRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewModeratorRepository(db *DB, logger *logger.Logger) ModeratorRepository {
	logger.Debug().Msg("creating moderator repository")
	return &moderatorRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

func (r *moderatorRepository) StoreModerator(ctx context.Context, moderator models.Moderator) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, insertModerator, moderator.ID, moderator.FirstName, moderator.LastName, moderator.Email)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "moderatorRepository.StoreModerator").
			Int("moderator_id", moderator.ID).
			Msg("failed to store moderator")
		return err
	}

	return nil
}

func (r *moderatorRepository) UpdateModerator(ctx context.Context, moderator models.Moderator) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateModerator, moderator.FirstName, moderator.LastName, moderator.Email, moderator.ID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "moderatorRepository.UpdateModerator").
			Int("moderator_id", moderator.ID).
			Msg("failed to update moderator")
		return err
	}

	return nil
}

// GetModerator returns nil when the moderator is not stored.
func (r *moderatorRepository) GetModerator(ctx context.Context, moderatorID int) (*models.Moderator, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var moderator *models.Moderator
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var m models.Moderator
		err := conn.QueryRowContext(ctx, selectModerator, moderatorID).Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		moderator = &m
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "moderatorRepository.GetModerator").
			Int("moderator_id", moderatorID).
			Msg("failed to get moderator")
		return nil, err
	}

	return moderator, nil
}

func (r *moderatorRepository) ModeratorExists(ctx context.Context, moderatorID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, moderatorExists, moderatorID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "moderatorRepository.ModeratorExists").
			Int("moderator_id", moderatorID).
			Msg("failed to check moderator existence")
		return false, err
	}

	return exists, nil
}

// DeleteModerator removes the moderator and, by cascade, its channel links.
func (r *moderatorRepository) DeleteModerator(ctx context.Context, moderatorID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteModerator, moderatorID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "moderatorRepository.DeleteModerator").
			Int("moderator_id", moderatorID).
			Msg("failed to delete moderator")
		return err
	}

	return nil
}
