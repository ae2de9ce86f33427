// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/uni-news-store/models"
)

func TestChannelRepository_RoundTrip(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	lecture := lectureChannel(1)
	event := models.Channel{
		ID:    2,
		Name:  "Summer party",
		Type:  models.ChannelEvent,
		Event: &models.EventDetails{Cost: "5 EUR", Organizer: "Student council"},
	}
	other := models.Channel{ID: 3, Name: "Misc", Type: models.ChannelOther}

	require.NoError(t, s.Channels.StoreChannel(ctx, lecture))
	require.NoError(t, s.Channels.StoreChannels(ctx, event, other))

	got, err := s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)

	want := lecture
	want.AnnouncementNotificationSetting = models.NotificationApplicationDefault
	assert.Equal(t, want, *got)

	gotEvent, err := s.Channels.GetChannel(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, gotEvent)
	assert.Equal(t, event.Event, gotEvent.Event)
	assert.Nil(t, gotEvent.Lecture)
	assert.Nil(t, gotEvent.Sports)
	assert.True(t, gotEvent.CreationDate.IsZero())

	gotOther, err := s.Channels.GetChannel(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, gotOther.Lecture)
	assert.Nil(t, gotOther.Event)
	assert.Nil(t, gotOther.Sports)

	all, err := s.Channels.ListChannels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
}

func TestChannelRepository_GetMissingChannel(t *testing.T) {
	s := newSQLiteStorages(t)

	got, err := s.Channels.GetChannel(testContext(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	exists, err := s.Channels.ChannelExists(testContext(), 42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestChannelRepository_DuplicateLeavesNoPartialState(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))

	err := s.Channels.StoreChannel(ctx, lectureChannel(1))
	assert.ErrorIs(t, err, ErrStorageWrite)

	counts, err := s.Schema.TableCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["channels"])
	assert.Equal(t, 1, counts["lectures"])
}

func TestChannelRepository_UpdateKeepsLocalState(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	channel := lectureChannel(1)
	require.NoError(t, s.Channels.StoreChannel(ctx, channel))
	require.NoError(t, s.Channels.UpdateNotificationSetting(ctx, 1, models.NotificationAnnounceAll))
	require.NoError(t, s.Channels.SetChannelDeletionNoticed(ctx, 1, true))

	channel.Name = "Distributed Systems II"
	channel.Type = models.ChannelSports
	channel.Lecture = nil
	channel.Sports = &models.SportsDetails{Cost: "free", NumberOfParticipants: "12"}
	require.NoError(t, s.Channels.UpdateChannelWithSubtype(ctx, channel))

	got, err := s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Distributed Systems II", got.Name)
	assert.Equal(t, models.ChannelSports, got.Type)
	assert.Equal(t, channel.Sports, got.Sports)
	assert.Nil(t, got.Lecture)
	assert.Equal(t, models.NotificationAnnounceAll, got.AnnouncementNotificationSetting)
	assert.True(t, got.DeletionNoticed)

	counts, err := s.Schema.TableCounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts["lectures"])
	assert.Equal(t, 1, counts["sports"])
}

func TestChannelRepository_UpdateKeepsType(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	other := models.Channel{ID: 1, Name: "Misc", Type: models.ChannelOther}
	require.NoError(t, s.Channels.StoreChannels(ctx, other, lectureChannel(2)))

	changed := other
	changed.Name = "Misc (renamed)"
	changed.Type = models.ChannelEvent
	changed.Event = &models.EventDetails{Cost: "5 EUR", Organizer: "AStA"}
	require.NoError(t, s.Channels.UpdateChannel(ctx, changed))

	got, err := s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Misc (renamed)", got.Name)
	assert.Equal(t, models.ChannelOther, got.Type)
	assert.Nil(t, got.Event)

	channels, err := s.Channels.ListChannels(ctx)
	require.NoError(t, err)
	assert.Len(t, channels, 2)

	// the type only changes together with its subtype row
	require.NoError(t, s.Channels.UpdateChannelWithSubtype(ctx, changed))
	got, err = s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.ChannelEvent, got.Type)
	assert.Equal(t, changed.Event, got.Event)
}

func TestChannelRepository_SoftAndHardDelete(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))
	require.NoError(t, s.Announcements.BulkInsertAnnouncements(ctx, []models.Announcement{
		announcement(11, 1, 1),
		announcement(12, 2, 1),
	}))
	require.NoError(t, s.Reminders.StoreReminder(ctx, models.Reminder{ID: 5, ChannelID: 1, Title: "weekly"}))
	s.Channels.SubscribeChannel(ctx, 1)

	require.NoError(t, s.Channels.MarkChannelDeleted(ctx, 1))

	got, err := s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Deleted)

	kept, err := s.Announcements.ListAnnouncementsOfChannel(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, kept, 2)

	require.NoError(t, s.Channels.DeleteChannel(ctx, 1))

	got, err = s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	counts, err := s.Schema.TableCounts(ctx)
	require.NoError(t, err)
	for _, table := range []string{"channels", "lectures", "announcements", "messages", "reminders", "subscribed_channels"} {
		assert.Zero(t, counts[table], table)
	}
}

func TestChannelRepository_Subscriptions(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannels(ctx, lectureChannel(1), lectureChannel(2)))

	s.Channels.SubscribeChannel(ctx, 2)
	s.Channels.SubscribeChannel(ctx, 2)

	subscribed, err := s.Channels.IsChannelSubscribed(ctx, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)

	list, err := s.Channels.ListSubscribedChannels(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ID)

	s.Channels.UnsubscribeChannel(ctx, 2)
	list, err = s.Channels.ListSubscribedChannels(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// subscribing to an unknown channel violates the foreign key and is ignored
	s.Channels.SubscribeChannel(ctx, 99)
	subscribed, err = s.Channels.IsChannelSubscribed(ctx, 99)
	require.NoError(t, err)
	assert.False(t, subscribed)
}

func TestChannelRepository_ResponsibleModerators(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))
	require.NoError(t, s.Moderators.StoreModerator(ctx, models.Moderator{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@uni.example"}))
	require.NoError(t, s.Moderators.StoreModerator(ctx, models.Moderator{ID: 8, FirstName: "Alan", LastName: "Turing"}))

	require.NoError(t, s.Channels.AddOrUpdateResponsibleModerator(ctx, 1, 7, true))
	require.NoError(t, s.Channels.AddOrUpdateResponsibleModerator(ctx, 1, 8, true))
	require.NoError(t, s.Channels.AddOrUpdateResponsibleModerator(ctx, 1, 8, false))

	moderators, err := s.Channels.ListResponsibleModerators(ctx, 1)
	require.NoError(t, err)
	require.Len(t, moderators, 2)
	assert.Equal(t, "ada@uni.example", moderators[0].Email)
	assert.True(t, moderators[0].Active)
	assert.False(t, moderators[1].Active)

	responsible, err := s.Channels.IsResponsibleModerator(ctx, 1, 8)
	require.NoError(t, err)
	assert.False(t, responsible)

	s.Channels.RemoveAllResponsibleModerators(ctx, 1)
	moderators, err = s.Channels.ListResponsibleModerators(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, moderators)
}

func TestChannelRepository_DeletionNoticed(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))

	noticed, err := s.Channels.IsChannelDeletionNoticed(ctx, 1)
	require.NoError(t, err)
	assert.False(t, noticed)

	require.NoError(t, s.Channels.SetChannelDeletionNoticed(ctx, 1, true))
	noticed, err = s.Channels.IsChannelDeletionNoticed(ctx, 1)
	require.NoError(t, err)
	assert.True(t, noticed)
}

func TestChannelRepository_ConstraintViolationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	s := newSQLiteStoragesWithLogger(t, bufferLogger(&buf))
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))
	buf.Reset()

	err := s.Channels.StoreChannel(ctx, lectureChannel(1))
	require.ErrorIs(t, err, ErrStorageWrite)
	assert.Contains(t, buf.String(), `"constraint_violation":true`)

	buf.Reset()
	err = s.Channels.AddOrUpdateResponsibleModerator(ctx, 1, 99, true)
	require.ErrorIs(t, err, ErrStorageWrite)
	assert.Contains(t, buf.String(), `"constraint_violation":true`)
	assert.Contains(t, buf.String(), fmt.Sprintf(`"sqlite_extended_code":%d`, int(sqlite3.ErrConstraintForeignKey)))
}

func TestChannelRepository_ListFailsOnMalformedRow(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannels(ctx, lectureChannel(1), lectureChannel(2)))
	_, err := s.db.ExecContext(ctx, `UPDATE channels SET type = 'RADIO' WHERE id = 2;`)
	require.NoError(t, err)

	channels, err := s.Channels.ListChannels(ctx)
	assert.ErrorIs(t, err, ErrStorageRead)
	assert.ErrorIs(t, err, ErrInvalidStoredValue)
	assert.Nil(t, channels)

	got, err := s.Channels.GetChannel(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
