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

// localUserRepository keeps the account of this device. The table holds at
// most one row.
type localUserRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewLocalUserRepository(db *DB, logger *logger.Logger) LocalUserRepository {
	logger.Debug().Msg("creating local user repository")
	return &localUserRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreLocalUser fails with [ErrLocalUserExists] if an account is already
// stored.
func (r *localUserRepository) StoreLocalUser(ctx context.Context, user models.LocalUser) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		exists, err := queryBool(ctx, conn, localUserExists)
		if err != nil {
			return err
		}
		if exists {
			return ErrLocalUserExists
		}
		_, err = exec(ctx, conn, insertLocalUser,
			user.ID,
			user.Name,
			user.ServerAccessToken,
			user.PushAccessToken,
			string(user.Platform),
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "localUserRepository.StoreLocalUser").
			Int("user_id", user.ID).
			Msg("failed to store local user")
		return err
	}

	return nil
}

// GetLocalUser returns nil when no account has been stored yet.
func (r *localUserRepository) GetLocalUser(ctx context.Context) (*models.LocalUser, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var user *models.LocalUser
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var (
			u        models.LocalUser
			platform string
		)
		err := conn.QueryRowContext(ctx, selectLocalUser).Scan(
			&u.ID,
			&u.Name,
			&u.ServerAccessToken,
			&u.PushAccessToken,
			&platform,
		)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if u.Platform, err = parseStored("local_user.platform", platform, models.ParsePlatform); err != nil {
			return err
		}
		user = &u
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "localUserRepository.GetLocalUser").Msg("failed to get local user")
		return nil, err
	}

	return user, nil
}

func (r *localUserRepository) UpdateLocalUser(ctx context.Context, user models.LocalUser) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateLocalUser,
			user.Name,
			user.ServerAccessToken,
			user.PushAccessToken,
			string(user.Platform),
			user.ID,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "localUserRepository.UpdateLocalUser").
			Int("user_id", user.ID).
			Msg("failed to update local user")
		return err
	}

	return nil
}

// UpdatePushAccessToken replaces the push channel token of the account.
func (r *localUserRepository) UpdatePushAccessToken(ctx context.Context, token string) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updatePushAccessToken, token)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "localUserRepository.UpdatePushAccessToken").Msg("failed to update push access token")
		return err
	}

	return nil
}

func (r *localUserRepository) DeleteLocalUser(ctx context.Context) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteLocalUser)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "localUserRepository.DeleteLocalUser").Msg("failed to delete local user")
		return err
	}

	return nil
}
