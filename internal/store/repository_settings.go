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

type settingsRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreSettings writes the settings row, replacing any previous one.
func (r *settingsRepository) StoreSettings(ctx context.Context, settings models.AppSettings) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, upsertSettings, append([]any{settingsID}, settingsArgs(settings)...)...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "settingsRepository.StoreSettings").Msg("failed to store settings")
		return err
	}

	return nil
}

// GetSettings returns nil when settings were never stored.
func (r *settingsRepository) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var settings *models.AppSettings
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var raw [8]string
		err := conn.QueryRowContext(ctx, selectSettings, settingsID).Scan(
			&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5], &raw[6], &raw[7],
		)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		s, err := parseSettings(raw)
		if err != nil {
			return err
		}
		settings = &s
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "settingsRepository.GetSettings").Msg("failed to get settings")
		return nil, err
	}

	return settings, nil
}

func (r *settingsRepository) UpdateSettings(ctx context.Context, settings models.AppSettings) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateSettings, append(settingsArgs(settings), settingsID)...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "settingsRepository.UpdateSettings").Msg("failed to update settings")
		return err
	}

	return nil
}

func settingsArgs(s models.AppSettings) []any {
	return []any{
		string(s.ChannelOrder),
		string(s.AnnouncementOrder),
		string(s.GeneralListOrder),
		string(s.GroupOrder),
		string(s.ConversationOrder),
		string(s.BallotOrder),
		string(s.Language),
		string(s.NotificationSetting),
	}
}

func parseSettings(raw [8]string) (models.AppSettings, error) {
	var (
		s   models.AppSettings
		err error
	)

	orders := []struct {
		column string
		dst    *models.OrderOption
	}{
		{"channel_order", &s.ChannelOrder},
		{"announcement_order", &s.AnnouncementOrder},
		{"general_list_order", &s.GeneralListOrder},
		{"group_order", &s.GroupOrder},
		{"conversation_order", &s.ConversationOrder},
		{"ballot_order", &s.BallotOrder},
	}
	for i, o := range orders {
		if *o.dst, err = parseStored("app_settings."+o.column, raw[i], models.ParseOrderOption); err != nil {
			return models.AppSettings{}, err
		}
	}

	if s.Language, err = parseStored("app_settings.language", raw[6], models.ParseLanguage); err != nil {
		return models.AppSettings{}, err
	}
	if s.NotificationSetting, err = parseStored("app_settings.notification_setting", raw[7], models.ParseNotificationSetting); err != nil {
		return models.AppSettings{}, err
	}

	return s, nil
}
