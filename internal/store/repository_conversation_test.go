// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/uni-news-store/models"
)

func seedConversation(t *testing.T, s *Storages) {
	t.Helper()
	ctx := testContext()

	require.NoError(t, s.Users.StoreUser(ctx, models.User{ID: 5, Name: "Alice"}))
	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(10)))
	require.NoError(t, s.Conversations.StoreConversation(ctx, models.Conversation{
		ID:          100,
		Title:       "General",
		GroupID:     10,
		AdminUserID: 5,
	}))
}

func TestConversationRepository_BulkInsertIsIdempotent(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	seedConversation(t, s)

	first := []models.ConversationMessage{
		conversationMessage(201, 1, 100, 5),
		conversationMessage(202, 2, 100, 5),
		conversationMessage(203, 3, 100, 5),
	}
	overlapping := []models.ConversationMessage{
		conversationMessage(202, 2, 100, 5),
		conversationMessage(203, 3, 100, 5),
		conversationMessage(204, 4, 100, 5),
		conversationMessage(205, 5, 100, 5),
	}

	require.NoError(t, s.Conversations.BulkInsertConversationMessages(ctx, 100, first))
	require.NoError(t, s.Conversations.BulkInsertConversationMessages(ctx, 100, overlapping))
	require.NoError(t, s.Conversations.BulkInsertConversationMessages(ctx, 100, overlapping))

	messages, err := s.Conversations.ListConversationMessages(ctx, 100)
	require.NoError(t, err)
	require.Len(t, messages, 5)
	for i, m := range messages {
		assert.Equal(t, i+1, m.MessageNumber)
		assert.Equal(t, "Alice", m.AuthorName)
	}

	highest, err := s.Conversations.HighestConversationMessageNumber(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, highest)

	latest, err := s.Conversations.ListLatestConversationMessages(ctx, 100, 2, 1)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 4, latest[0].MessageNumber)
	assert.Equal(t, 3, latest[1].MessageNumber)
}

func TestConversationRepository_UnresolvedAuthors(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	seedConversation(t, s)

	require.NoError(t, s.Conversations.BulkInsertConversationMessages(ctx, 100, []models.ConversationMessage{
		conversationMessage(201, 1, 100, 5),
		conversationMessage(202, 2, 100, 99),
	}))

	unresolved, err := s.Conversations.HasUnresolvedAuthors(ctx, 100)
	require.NoError(t, err)
	assert.True(t, unresolved)

	pending, err := s.Conversations.ListUnresolvedAuthorMessages(ctx, 100)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 202, pending[0].ID)
	assert.Equal(t, models.UnresolvedAuthorID, pending[0].AuthorUserID)
	assert.Empty(t, pending[0].AuthorName)

	require.NoError(t, s.Users.StoreUser(ctx, models.User{ID: 99, Name: "Dave"}))
	require.NoError(t, s.Conversations.UpdateAuthorReference(ctx, 202, 99))

	unresolved, err = s.Conversations.HasUnresolvedAuthors(ctx, 100)
	require.NoError(t, err)
	assert.False(t, unresolved)
}

func TestConversationRepository_UnreadCounts(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	seedConversation(t, s)
	require.NoError(t, s.Conversations.StoreConversation(ctx, models.Conversation{ID: 101, Title: "Exam", GroupID: 10}))

	require.NoError(t, s.Conversations.BulkInsertConversationMessages(ctx, 100, []models.ConversationMessage{
		conversationMessage(201, 1, 100, 5),
		conversationMessage(202, 2, 100, 5),
	}))
	require.NoError(t, s.Conversations.StoreConversationMessage(ctx, conversationMessage(301, 1, 101, 5)))

	counts, err := s.Conversations.UnreadMessageCountsByConversation(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{100: 2, 101: 1}, counts)

	require.NoError(t, s.Conversations.MarkConversationMessagesRead(ctx, 100))

	counts, err = s.Conversations.UnreadMessageCountsByConversation(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{101: 1}, counts)

	conversation, err := s.Conversations.GetConversation(ctx, 101)
	require.NoError(t, err)
	require.NotNil(t, conversation)
	assert.Equal(t, 1, conversation.UnreadMessages)
}

func TestConversationRepository_ListAndClosedFlag(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	seedConversation(t, s)
	require.NoError(t, s.Groups.StoreGroup(ctx, studyGroup(11)))
	require.NoError(t, s.Conversations.StoreConversations(ctx,
		models.Conversation{ID: 102, Title: "Other group", GroupID: 11},
		models.Conversation{ID: 101, Title: "Exam", GroupID: 10, IsClosed: models.Bool(true)},
	))

	all, err := s.Conversations.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{100, 101, 102}, []int{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Alice", all[0].AdminName)

	ofGroup, err := s.Conversations.ListConversationsOfGroup(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, ofGroup, 2)

	// a nil flag leaves the stored value alone
	require.NoError(t, s.Conversations.UpdateConversation(ctx, models.Conversation{ID: 101, Title: "Exam prep", GroupID: 10}))
	got, err := s.Conversations.GetConversation(ctx, 101)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Exam prep", got.Title)
	assert.Equal(t, models.Bool(true), got.IsClosed)

	require.NoError(t, s.Conversations.DeleteConversation(ctx, 101))
	exists, err := s.Conversations.ConversationExists(ctx, 101)
	require.NoError(t, err)
	assert.False(t, exists)

	missing, err := s.Conversations.GetConversation(ctx, 101)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
