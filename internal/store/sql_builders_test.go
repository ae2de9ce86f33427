// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelectChannelsQuery(t *testing.T) {
	ctx := testContext()

	t.Run("all channels", func(t *testing.T) {
		query, args, err := buildSelectChannelsQuery(ctx, channelFilter{})
		require.NoError(t, err)
		assert.Contains(t, query, "LEFT JOIN lectures l")
		assert.Contains(t, query, "LEFT JOIN sports s")
		assert.NotContains(t, query, "subscribed_channels sc")
		assert.Contains(t, query, "ORDER BY c.id")
		assert.Empty(t, args)
	})

	t.Run("single subscribed channel", func(t *testing.T) {
		id := 4
		query, args, err := buildSelectChannelsQuery(ctx, channelFilter{ID: &id, SubscribedOnly: true})
		require.NoError(t, err)
		assert.Contains(t, query, "JOIN subscribed_channels sc ON sc.channel_id = c.id")
		assert.Contains(t, query, "c.id = ?")
		assert.Equal(t, []any{4}, args)
	})
}

func TestBuildSelectAnnouncementsQuery(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name          string
		latest        bool
		limit, offset uint64
		contains      []string
		notContains   []string
	}{
		{
			name:        "oldest first without paging",
			contains:    []string{"ORDER BY a.message_number ASC"},
			notContains: []string{"LIMIT", "OFFSET"},
		},
		{
			name:     "latest page",
			latest:   true,
			limit:    20,
			offset:   40,
			contains: []string{"ORDER BY a.message_number DESC", "LIMIT 20", "OFFSET 40"},
		},
		{
			name:        "offset ignored without limit",
			latest:      true,
			offset:      40,
			notContains: []string{"LIMIT", "OFFSET"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectAnnouncementsQuery(ctx, 3, tt.latest, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Contains(t, query, "a.channel_id = ?")
			assert.Equal(t, []any{3}, args)
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, query, s)
			}
		})
	}
}

func TestBuildSelectConversationMessagesQuery(t *testing.T) {
	query, args, err := buildSelectConversationMessagesQuery(testContext(), conversationMessageFilter{
		ConversationID:   100,
		UnresolvedAuthor: true,
		Latest:           true,
		Limit:            5,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "LEFT JOIN users u ON u.id = cm.author_user_id")
	assert.Contains(t, query, "cm.conversation_id = ?")
	assert.Contains(t, query, "cm.author_user_id = ?")
	assert.Contains(t, query, "LIMIT 5")
	assert.Equal(t, []any{100, unresolvedAuthorID}, args)
}

func TestBuildSelectVotersQuery(t *testing.T) {
	query, args, err := buildSelectVotersQuery(testContext(), []int{1, 2, 3})
	require.NoError(t, err)

	assert.Contains(t, query, "option_id IN (?,?,?)")
	assert.Equal(t, []any{1, 2, 3}, args)
}
