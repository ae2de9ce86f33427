// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/uni-news-store/models"
)

func TestSyncStateRepository_DirtyFlagConverges(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))
	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(11)))

	dirty, err := s.SyncState.ListDirtyGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)

	require.NoError(t, s.SyncState.SetHasNewEventFlag(ctx, 10, true))
	require.NoError(t, s.SyncState.SetHasNewEventFlag(ctx, 10, true))
	require.NoError(t, s.SyncState.SetGroupDirty(ctx, 11))

	dirty, err = s.SyncState.ListDirtyGroups(ctx)
	require.NoError(t, err)
	require.Len(t, dirty, 2)
	assert.True(t, dirty[0].HasNewEvent)

	require.NoError(t, s.SyncState.ResetDirtyFlags(ctx))
	dirty, err = s.SyncState.ListDirtyGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)

	// same value again: nothing changes, so the group stays clean
	require.NoError(t, s.SyncState.SetHasNewEventFlag(ctx, 10, true))
	dirty, err = s.SyncState.ListDirtyGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, dirty)

	require.NoError(t, s.SyncState.SetHasNewEventFlag(ctx, 10, false))
	dirty, err = s.SyncState.ListDirtyGroups(ctx)
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.False(t, dirty[0].HasNewEvent)

	// unknown groups are ignored
	require.NoError(t, s.SyncState.SetHasNewEventFlag(ctx, 404, true))
}

func TestSyncStateRepository_Timestamps(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	assert.True(t, s.SyncState.GetLastChannelListUpdate(ctx).IsZero())

	require.NoError(t, s.SyncState.SetLastChannelListUpdate(ctx, testTime(6, 7)))
	require.NoError(t, s.SyncState.SetLastChannelListUpdate(ctx, testTime(6, 8)))
	assert.Equal(t, testTime(6, 8), s.SyncState.GetLastChannelListUpdate(ctx))

	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))

	never, err := s.SyncState.GetLastAutoSync(ctx, 10)
	require.NoError(t, err)
	assert.True(t, never.IsZero())

	require.NoError(t, s.SyncState.SetLastAutoSync(ctx, 10, testTime(7, 9)))
	last, err := s.SyncState.GetLastAutoSync(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, testTime(7, 9), last)
}

func TestSyncStateRepository_PruneAutoSyncMarks(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	for _, id := range []int{10, 11, 12} {
		require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(id)))
	}
	require.NoError(t, s.SyncState.SetLastAutoSync(ctx, 10, testTime(1, 0)))
	require.NoError(t, s.SyncState.SetLastAutoSync(ctx, 11, testTime(2, 0)))
	require.NoError(t, s.SyncState.SetLastAutoSync(ctx, 12, testTime(9, 0)))

	pruned, err := s.SyncState.PruneAutoSyncMarks(ctx, testTime(5, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, pruned)

	kept, err := s.SyncState.GetLastAutoSync(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, testTime(9, 0), kept)

	gone, err := s.SyncState.GetLastAutoSync(ctx, 10)
	require.NoError(t, err)
	assert.True(t, gone.IsZero())
}

func TestSyncStateRepository_NoticedFlags(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))

	require.NoError(t, s.SyncState.SetGroupDeletionNoticed(ctx, 10, true))
	require.NoError(t, s.SyncState.SetRemovedFromGroupNoticed(ctx, 10, true))

	noticed, err := s.SyncState.IsGroupDeletionNoticed(ctx, 10)
	require.NoError(t, err)
	assert.True(t, noticed)

	removed, err := s.SyncState.IsRemovedFromGroupNoticed(ctx, 10)
	require.NoError(t, err)
	assert.True(t, removed)

	require.NoError(t, s.SyncState.SetRemovedFromGroupNoticed(ctx, 10, false))
	removed, err = s.SyncState.IsRemovedFromGroupNoticed(ctx, 10)
	require.NoError(t, err)
	assert.False(t, removed)

	unknown, err := s.SyncState.IsGroupDeletionNoticed(ctx, 404)
	require.NoError(t, err)
	assert.False(t, unknown)
}

func TestSyncStateRepository_PurgeNoticedDeletions(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannels(ctx, lectureChannel(1), lectureChannel(2), lectureChannel(3)))
	require.NoError(t, s.Announcements.BulkInsertAnnouncements(ctx, []models.Announcement{
		announcement(11, 1, 1),
		announcement(21, 1, 2),
		announcement(31, 1, 3),
	}))
	// 1: deleted and noticed, 2: deleted only, 3: live
	require.NoError(t, s.Channels.MarkChannelDeleted(ctx, 1))
	require.NoError(t, s.Channels.SetChannelDeletionNoticed(ctx, 1, true))
	require.NoError(t, s.Channels.MarkChannelDeleted(ctx, 2))

	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))
	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(11)))
	require.NoError(t, s.Conversations.StoreConversation(ctx, models.Conversation{ID: 100, GroupID: 10}))
	require.NoError(t, s.Conversations.StoreConversationMessage(ctx, conversationMessage(201, 1, 100, 0)))
	require.NoError(t, s.Groups.MarkGroupDeleted(ctx, 10))
	require.NoError(t, s.SyncState.SetGroupDeletionNoticed(ctx, 10, true))

	result, err := s.SyncState.PurgeNoticedDeletions(ctx)
	require.NoError(t, err)
	assert.Equal(t, PurgeResult{Channels: 1, Groups: 1}, result)

	counts, err := s.Schema.TableCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["channels"])
	assert.Equal(t, 2, counts["announcements"])
	assert.Equal(t, 2, counts["messages"])
	assert.Equal(t, 1, counts["study_groups"])
	assert.Zero(t, counts["conversations"])

	again, err := s.SyncState.PurgeNoticedDeletions(ctx)
	require.NoError(t, err)
	assert.Equal(t, PurgeResult{}, again)
}

func TestSyncStateRepository_ZeroTimeClearsTimestamps(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.SyncState.SetLastChannelListUpdate(ctx, testTime(6, 7)))
	require.NoError(t, s.SyncState.SetLastChannelListUpdate(ctx, time.Time{}))
	assert.True(t, s.SyncState.GetLastChannelListUpdate(ctx).IsZero())

	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))
	require.NoError(t, s.SyncState.SetLastAutoSync(ctx, 10, testTime(7, 9)))
	require.NoError(t, s.SyncState.SetLastAutoSync(ctx, 10, time.Time{}))

	last, err := s.SyncState.GetLastAutoSync(ctx, 10)
	require.NoError(t, err)
	assert.True(t, last.IsZero())

	// a cleared mark is pruned like an expired one
	pruned, err := s.SyncState.PruneAutoSyncMarks(ctx, testTime(1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)
}
