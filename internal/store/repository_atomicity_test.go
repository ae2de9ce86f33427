// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/uni-news-store/models"
)

func TestStoreChannel_SubtypeFailureRollsBack(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewChannelRepository(db, db.logger)

	channel := lectureChannel(1)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertChannel)).
		WithArgs(
			1, channel.Name, channel.Description, "LECTURE",
			channel.CreationDate.UnixMilli(), channel.ModificationDate.UnixMilli(),
			channel.Term, channel.Location, channel.Dates, channel.Contact, channel.Website,
			false, false, "APPLICATION_DEFAULT",
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertLecture)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.StoreChannel(testContext(), channel)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreChannel_MissingDetailsRollsBack(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewChannelRepository(db, db.logger)

	channel := lectureChannel(1)
	channel.Lecture = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertChannel)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := repo.StoreChannel(testContext(), channel)

	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.ErrorIs(t, err, ErrMissingChannelDetails)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreChannel_UnknownType(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewChannelRepository(db, db.logger)

	channel := lectureChannel(1)
	channel.Type = "PODCAST"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertChannel)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	err := repo.StoreChannel(testContext(), channel)

	assert.ErrorIs(t, err, ErrUnknownChannelType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreChannel_CommitFailure(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewChannelRepository(db, db.logger)

	channel := lectureChannel(1)
	channel.Type = models.ChannelOther
	channel.Lecture = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertChannel)).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	err := repo.StoreChannel(testContext(), channel)

	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateChannelWithSubtype_ReplacesOtherSubtypes(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewChannelRepository(db, db.logger)

	channel := lectureChannel(3)
	channel.Type = models.ChannelSports
	channel.Lecture = nil
	channel.Sports = &models.SportsDetails{Cost: "free", NumberOfParticipants: "22"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(updateChannel)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateChannelType)).WithArgs("SPORTS", 3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteLecture)).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteEvent)).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(upsertSports)).
		WithArgs(3, "free", "22").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.UpdateChannelWithSubtype(testContext(), channel))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertAnnouncements_JoinsRowErrorsAndRollsBack(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewAnnouncementRepository(db, db.logger)

	first := announcement(11, 1, 1)
	second := announcement(12, 2, 1)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertMessage)).
		WithArgs(11, sqlmock.AnyArg(), sqlmock.AnyArg(), "NORMAL", false).
		WillReturnError(errors.New("UNIQUE constraint failed: messages.id"))
	mock.ExpectExec(regexp.QuoteMeta(insertMessage)).
		WithArgs(12, sqlmock.AnyArg(), sqlmock.AnyArg(), "NORMAL", false).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertAnnouncement)).
		WithArgs(12, 2, 1, "title", 7).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectRollback()

	err := repo.BulkInsertAnnouncements(testContext(), []models.Announcement{first, second})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Contains(t, err.Error(), "announcement 11")
	assert.NotContains(t, err.Error(), "announcement 12")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertAnnouncements_EmptyIsNoop(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewAnnouncementRepository(db, db.logger)

	require.NoError(t, repo.BulkInsertAnnouncements(testContext(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertConversationMessages_SkipsKnownNumbers(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewConversationRepository(db, db.logger)

	messages := []models.ConversationMessage{
		conversationMessage(201, 2, 100, 0),
		conversationMessage(202, 3, 100, 0),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectHighestConversationMessageNumber)).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta(insertMessage)).
		WithArgs(202, sqlmock.AnyArg(), sqlmock.AnyArg(), "NORMAL", false).
		WillReturnResult(sqlmock.NewResult(202, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertConversationMessage)).
		WithArgs(202, 3, 100, 0).
		WillReturnResult(sqlmock.NewResult(202, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.BulkInsertConversationMessages(testContext(), 100, messages))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHasNewEventFlag_SameValueDoesNotWrite(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewSyncStateRepository(db, db.logger)

	mock.ExpectQuery(regexp.QuoteMeta(selectHasNewEvent)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"has_new_event"}).AddRow(true))

	require.NoError(t, repo.SetHasNewEventFlag(testContext(), 10, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetHasNewEventFlag_ChangedValueWritesAndMarksDirty(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewSyncStateRepository(db, db.logger)

	mock.ExpectQuery(regexp.QuoteMeta(selectHasNewEvent)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"has_new_event"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(updateHasNewEvent)).
		WithArgs(true, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetHasNewEventFlag(testContext(), 10, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurgeNoticedDeletions_RollsBackOnFailure(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewSyncStateRepository(db, db.logger)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(purgeNoticedChannelMessages)).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(purgeNoticedChannels)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(purgeNoticedGroupMessages)).WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	result, err := repo.PurgeNoticedDeletions(testContext())

	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Equal(t, PurgeResult{}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneAutoSyncMarks_UsesMillis(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewSyncStateRepository(db, db.logger)

	before := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(pruneAutoSyncMarks)).
		WithArgs(before.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := repo.PruneAutoSyncMarks(testContext(), before)

	require.NoError(t, err)
	assert.Equal(t, 3, pruned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBestEffortOperations_SwallowErrors(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	ctx := testContext()

	channels := NewChannelRepository(db, db.logger)
	announcements := NewAnnouncementRepository(db, db.logger)
	syncState := NewSyncStateRepository(db, db.logger)

	failure := errors.New("no such table")
	mock.ExpectExec(regexp.QuoteMeta(subscribeChannel)).WithArgs(1).WillReturnError(failure)
	mock.ExpectExec(regexp.QuoteMeta(unsubscribeChannel)).WithArgs(1).WillReturnError(failure)
	mock.ExpectExec(regexp.QuoteMeta(deleteModeratorChannels)).WithArgs(1).WillReturnError(failure)
	mock.ExpectExec(regexp.QuoteMeta(deleteChannelAnnouncementMessages)).WithArgs(1).WillReturnError(failure)
	mock.ExpectQuery(regexp.QuoteMeta(selectLastChannelListUpdate)).WithArgs(lastChannelListUpdateID).WillReturnError(failure)

	assert.NotPanics(t, func() {
		channels.SubscribeChannel(ctx, 1)
		channels.UnsubscribeChannel(ctx, 1)
		channels.RemoveAllResponsibleModerators(ctx, 1)
		announcements.DeleteAllAnnouncementsOfChannel(ctx, 1)
	})
	assert.True(t, syncState.GetLastChannelListUpdate(ctx).IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChannel_InvalidStoredEnumIsReadFailure(t *testing.T) {
	sqlDB, mock := newTestDB(t)
	db := newDBFromSQL(sqlDB)
	repo := NewChannelRepository(db, db.logger)

	columns := []string{
		"id", "name", "description", "type", "creation_date", "modification_date",
		"term", "location", "dates", "contact", "website", "deleted", "deletion_noticed",
		"notification_setting", "faculty", "start_date", "end_date", "lecturer", "assistant",
		"event_cost", "organizer", "sports_cost", "number_of_participants", "unread",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		1, "name", "", "RADIO", nil, nil,
		"", "", "", "", "", false, false,
		"APPLICATION_DEFAULT", nil, nil, nil, nil, nil,
		nil, nil, nil, nil, 0,
	)
	mock.ExpectQuery("SELECT (.+) FROM channels c").WithArgs(1).WillReturnRows(rows)

	channel, err := repo.GetChannel(testContext(), 1)

	assert.Nil(t, channel)
	assert.ErrorIs(t, err, ErrStorageRead)
	assert.ErrorIs(t, err, ErrInvalidStoredValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
