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

// userRepository stores the other members of the local user's groups.
type userRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreUser inserts the user unless a user with the same id already exists.
func (r *userRepository) StoreUser(ctx context.Context, user models.User) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return insertUserIfAbsentRow(ctx, conn, user)
	})
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.StoreUser").
			Int("user_id", user.ID).
			Msg("failed to store user")
		return err
	}

	return nil
}

// StoreUsers inserts all unknown users in one transaction.
func (r *userRepository) StoreUsers(ctx context.Context, users ...models.User) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(users) == 0 {
		return nil
	}

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			stmt, err := tx.PrepareContext(ctx, insertUserIfAbsent)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
			}
			defer stmt.Close()

			for _, user := range users {
				if _, err = stmt.ExecContext(ctx, user.ID, user.Name, user.OldName); err != nil {
					return fmt.Errorf("%w: user %d: %w", ErrExecutingStatement, user.ID, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.StoreUsers").
			Int("count", len(users)).
			Msg("failed to store users")
		return err
	}

	return nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user models.User) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateUser, user.Name, user.OldName, user.ID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.UpdateUser").
			Int("user_id", user.ID).
			Msg("failed to update user")
		return err
	}

	return nil
}

// GetUser returns nil when the user is not stored.
func (r *userRepository) GetUser(ctx context.Context, userID int) (*models.User, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var user *models.User
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var u models.User
		err := conn.QueryRowContext(ctx, selectUser, userID).Scan(&u.ID, &u.Name, &u.OldName)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		user = &u
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.GetUser").
			Int("user_id", userID).
			Msg("failed to get user")
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UserExists(ctx context.Context, userID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, userExists, userID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.UserExists").
			Int("user_id", userID).
			Msg("failed to check user existence")
		return false, err
	}

	return exists, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var users []models.User
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectUsers)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var u models.User
			if err = rows.Scan(&u.ID, &u.Name, &u.OldName); err != nil {
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
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to list users")
		return nil, err
	}

	return users, nil
}

func insertUserIfAbsentRow(ctx context.Context, q Querier, user models.User) error {
	_, err := exec(ctx, q, insertUserIfAbsent, user.ID, user.Name, user.OldName)
	return err
}
