// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -destination=../mock/store_mock.go -package=mock github.com/MKhiriev/uni-news-store/internal/store SchemaStore,SyncStateRepository

import (
	"context"
	"time"

	"github.com/MKhiriev/uni-news-store/models"
)

// SchemaStore manages the table layout of the cache.
type SchemaStore interface {
	EnsureSchema(ctx context.Context) error
	ResetSchema(ctx context.Context) error
	TableCounts(ctx context.Context) (map[string]int, error)
}

// ChannelRepository persists channels together with their subtype rows,
// subscriptions and responsible moderators.
type ChannelRepository interface {
	StoreChannel(ctx context.Context, channel models.Channel) error
	StoreChannels(ctx context.Context, channels ...models.Channel) error
	UpdateChannel(ctx context.Context, channel models.Channel) error
	UpdateChannelWithSubtype(ctx context.Context, channel models.Channel) error
	UpdateNotificationSetting(ctx context.Context, channelID int, setting models.NotificationSetting) error
	GetChannel(ctx context.Context, channelID int) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	ListSubscribedChannels(ctx context.Context) ([]models.Channel, error)
	ChannelExists(ctx context.Context, channelID int) (bool, error)
	DeleteChannel(ctx context.Context, channelID int) error
	MarkChannelDeleted(ctx context.Context, channelID int) error
	IsChannelDeletionNoticed(ctx context.Context, channelID int) (bool, error)
	SetChannelDeletionNoticed(ctx context.Context, channelID int, noticed bool) error

	SubscribeChannel(ctx context.Context, channelID int)
	UnsubscribeChannel(ctx context.Context, channelID int)
	IsChannelSubscribed(ctx context.Context, channelID int) (bool, error)

	AddOrUpdateResponsibleModerator(ctx context.Context, channelID, moderatorID int, active bool) error
	RemoveAllResponsibleModerators(ctx context.Context, channelID int)
	ListResponsibleModerators(ctx context.Context, channelID int) ([]models.Moderator, error)
	IsResponsibleModerator(ctx context.Context, channelID, moderatorID int) (bool, error)
}

// AnnouncementRepository persists announcements of channels.
type AnnouncementRepository interface {
	StoreAnnouncement(ctx context.Context, announcement models.Announcement) error
	BulkInsertAnnouncements(ctx context.Context, announcements []models.Announcement) error
	DeleteAllAnnouncementsOfChannel(ctx context.Context, channelID int)
	UnreadAnnouncementCountsByChannel(ctx context.Context) (map[int]int, error)
	ListAnnouncementsOfChannel(ctx context.Context, channelID int) ([]models.Announcement, error)
	ListLatestAnnouncements(ctx context.Context, channelID, limit, offset int) ([]models.Announcement, error)
	HighestAnnouncementNumber(ctx context.Context, channelID int) (int, error)
	MarkAnnouncementsRead(ctx context.Context, channelID int) error
}

type ReminderRepository interface {
	StoreReminder(ctx context.Context, reminder models.Reminder) error
	UpdateReminder(ctx context.Context, reminder models.Reminder) error
	GetReminder(ctx context.Context, reminderID int) (*models.Reminder, error)
	ListRemindersOfChannel(ctx context.Context, channelID int) ([]models.Reminder, error)
	DeleteReminder(ctx context.Context, reminderID int) error
	SetReminderIgnore(ctx context.Context, reminderID int, ignore bool) error
	ReminderExists(ctx context.Context, reminderID int) (bool, error)
}

type ModeratorRepository interface {
	StoreModerator(ctx context.Context, moderator models.Moderator) error
	UpdateModerator(ctx context.Context, moderator models.Moderator) error
	GetModerator(ctx context.Context, moderatorID int) (*models.Moderator, error)
	ModeratorExists(ctx context.Context, moderatorID int) (bool, error)
	DeleteModerator(ctx context.Context, moderatorID int) error
}

type UserRepository interface {
	StoreUser(ctx context.Context, user models.User) error
	StoreUsers(ctx context.Context, users ...models.User) error
	UpdateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID int) (*models.User, error)
	UserExists(ctx context.Context, userID int) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// LocalUserRepository keeps the single account of this device.
type LocalUserRepository interface {
	StoreLocalUser(ctx context.Context, user models.LocalUser) error
	GetLocalUser(ctx context.Context) (*models.LocalUser, error)
	UpdateLocalUser(ctx context.Context, user models.LocalUser) error
	UpdatePushAccessToken(ctx context.Context, token string) error
	DeleteLocalUser(ctx context.Context) error
}

// SettingsRepository keeps the single row of application settings.
type SettingsRepository interface {
	StoreSettings(ctx context.Context, settings models.AppSettings) error
	GetSettings(ctx context.Context) (*models.AppSettings, error)
	UpdateSettings(ctx context.Context, settings models.AppSettings) error
}

// GroupRepository persists groups and their participants.
type GroupRepository interface {
	StoreGroup(ctx context.Context, group models.Group) error
	UpdateGroup(ctx context.Context, group models.Group) error
	UpdateGroupNotificationSetting(ctx context.Context, groupID int, setting models.NotificationSetting) error
	GetGroup(ctx context.Context, groupID int) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	GroupExists(ctx context.Context, groupID int) (bool, error)
	DeleteGroup(ctx context.Context, groupID int) error
	MarkGroupDeleted(ctx context.Context, groupID int) error

	AddParticipant(ctx context.Context, groupID, userID int, active bool) error
	MergeParticipants(ctx context.Context, groupID int, participants []models.User) error
	ChangeParticipantStatus(ctx context.Context, groupID, userID int, active bool) error
	RemoveParticipant(ctx context.Context, groupID, userID int) error
	ListParticipants(ctx context.Context, groupID int) ([]models.User, error)
	IsActiveParticipant(ctx context.Context, groupID, userID int) (bool, error)
}

// ConversationRepository persists conversations and their messages.
type ConversationRepository interface {
	StoreConversation(ctx context.Context, conversation models.Conversation) error
	StoreConversations(ctx context.Context, conversations ...models.Conversation) error
	UpdateConversation(ctx context.Context, conversation models.Conversation) error
	GetConversation(ctx context.Context, conversationID int) (*models.Conversation, error)
	ListConversationsOfGroup(ctx context.Context, groupID int) ([]models.Conversation, error)
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	DeleteConversation(ctx context.Context, conversationID int) error
	ConversationExists(ctx context.Context, conversationID int) (bool, error)

	StoreConversationMessage(ctx context.Context, message models.ConversationMessage) error
	BulkInsertConversationMessages(ctx context.Context, conversationID int, messages []models.ConversationMessage) error
	ListConversationMessages(ctx context.Context, conversationID int) ([]models.ConversationMessage, error)
	ListLatestConversationMessages(ctx context.Context, conversationID, limit, offset int) ([]models.ConversationMessage, error)
	HighestConversationMessageNumber(ctx context.Context, conversationID int) (int, error)
	MarkConversationMessagesRead(ctx context.Context, conversationID int) error
	UnreadMessageCountsByConversation(ctx context.Context, groupID int) (map[int]int, error)

	HasUnresolvedAuthors(ctx context.Context, conversationID int) (bool, error)
	ListUnresolvedAuthorMessages(ctx context.Context, conversationID int) ([]models.ConversationMessage, error)
	UpdateAuthorReference(ctx context.Context, messageID, userID int) error
}

// BallotRepository persists ballots with their options and votes.
type BallotRepository interface {
	StoreBallot(ctx context.Context, ballot models.Ballot) error
	BulkInsertBallots(ctx context.Context, ballots []models.Ballot) error
	UpdateBallot(ctx context.Context, ballot models.Ballot) error
	GetBallot(ctx context.Context, ballotID int, includingSubresources bool) (*models.Ballot, error)
	ListBallotsOfGroup(ctx context.Context, groupID int) ([]models.Ballot, error)
	DeleteBallot(ctx context.Context, ballotID int) error
	BallotExists(ctx context.Context, ballotID int) (bool, error)

	StoreOption(ctx context.Context, option models.Option) error
	UpdateOption(ctx context.Context, option models.Option) error
	DeleteOption(ctx context.Context, optionID int) error
	ListOptions(ctx context.Context, ballotID int, includingVoters bool) ([]models.Option, error)

	AddVote(ctx context.Context, optionID, userID int) error
	RemoveVote(ctx context.Context, optionID, userID int) error
	ListVoters(ctx context.Context, optionID int) ([]int, error)
	HasVotedForBallot(ctx context.Context, ballotID, userID int) (bool, error)
}

// SyncStateRepository exposes the bookkeeping the sync controller uses to
// decide what to push and what to notify about.
type SyncStateRepository interface {
	GetLastChannelListUpdate(ctx context.Context) time.Time
	SetLastChannelListUpdate(ctx context.Context, at time.Time) error
	GetLastAutoSync(ctx context.Context, groupID int) (time.Time, error)
	SetLastAutoSync(ctx context.Context, groupID int, at time.Time) error

	ListDirtyGroups(ctx context.Context) ([]models.Group, error)
	ResetDirtyFlags(ctx context.Context) error
	SetGroupDirty(ctx context.Context, groupID int) error
	SetHasNewEventFlag(ctx context.Context, groupID int, value bool) error

	SetGroupDeletionNoticed(ctx context.Context, groupID int, noticed bool) error
	IsGroupDeletionNoticed(ctx context.Context, groupID int) (bool, error)
	SetRemovedFromGroupNoticed(ctx context.Context, groupID int, noticed bool) error
	IsRemovedFromGroupNoticed(ctx context.Context, groupID int) (bool, error)

	PurgeNoticedDeletions(ctx context.Context) (PurgeResult, error)
	PruneAutoSyncMarks(ctx context.Context, before time.Time) (int, error)
}

// PurgeResult reports how many soft-deleted entities were removed.
type PurgeResult struct {
	Channels int
	Groups   int
}
