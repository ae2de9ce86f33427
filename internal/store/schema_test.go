// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/uni-news-store/migrations"
	"github.com/MKhiriev/uni-news-store/models"
)

func TestSchema_EnsureIsIdempotent(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))
	require.NoError(t, s.Schema.EnsureSchema(ctx))
	require.NoError(t, s.Schema.EnsureSchema(ctx))

	exists, err := s.Channels.ChannelExists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSchema_TableCountsCoversEveryTable(t *testing.T) {
	s := newSQLiteStorages(t)

	counts, err := s.Schema.TableCounts(testContext())
	require.NoError(t, err)

	assert.Len(t, counts, len(migrations.Tables))
	for _, table := range migrations.Tables {
		n, ok := counts[table]
		assert.True(t, ok, table)
		assert.Zero(t, n, table)
	}
}

func TestSchema_ResetDropsAllData(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	require.NoError(t, s.Channels.StoreChannel(ctx, lectureChannel(1)))
	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))
	require.NoError(t, s.Settings.StoreSettings(ctx, models.DefaultAppSettings()))
	require.NoError(t, s.SyncState.SetLastChannelListUpdate(ctx, testTime(1, 1)))

	require.NoError(t, s.Schema.ResetSchema(ctx))

	counts, err := s.Schema.TableCounts(ctx)
	require.NoError(t, err)
	for table, n := range counts {
		assert.Zero(t, n, table)
	}

	// foreign keys are enforced again after the reset
	err = s.Announcements.StoreAnnouncement(ctx, announcement(11, 1, 99))
	assert.ErrorIs(t, err, ErrStorageWrite)
}
