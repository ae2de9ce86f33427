// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/uni-news-store/internal/config"
	"github.com/MKhiriev/uni-news-store/internal/logger"
)

// Storages groups every repository of the cache behind one value. All of
// them share a single [DB] and therefore a single gate.
type Storages struct {
	// Schema creates, resets and inspects the table layout.
	Schema SchemaStore

	Channels      ChannelRepository
	Announcements AnnouncementRepository
	Reminders     ReminderRepository
	Moderators    ModeratorRepository
	Users         UserRepository
	LocalUser     LocalUserRepository
	Settings      SettingsRepository
	Groups        GroupRepository
	Conversations ConversationRepository
	Ballots       BallotRepository
	SyncState     SyncStateRepository

	db *DB
}

// NewStorages opens the database at cfg.DB.DSN, creating the file when it
// does not exist, brings the schema up to date and wires every repository.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, logger), nil
}

// NewStoragesFromDB wires every repository to an already prepared database.
func NewStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		Schema:        db,
		Channels:      NewChannelRepository(db, logger),
		Announcements: NewAnnouncementRepository(db, logger),
		Reminders:     NewReminderRepository(db, logger),
		Moderators:    NewModeratorRepository(db, logger),
		Users:         NewUserRepository(db, logger),
		LocalUser:     NewLocalUserRepository(db, logger),
		Settings:      NewSettingsRepository(db, logger),
		Groups:        NewGroupRepository(db, logger),
		Conversations: NewConversationRepository(db, logger),
		Ballots:       NewBallotRepository(db, logger),
		SyncState:     NewSyncStateRepository(db, logger),
		db:            db,
	}
}

// Close releases the underlying database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
