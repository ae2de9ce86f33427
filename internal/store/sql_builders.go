// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/uni-news-store/internal/logger"
)

// statementBuilder produces SQLite-style "?" placeholders.
var statementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var channelColumns = []string{
	"c.id",
	"c.name",
	"c.description",
	"c.type",
	"c.creation_date",
	"c.modification_date",
	"c.term",
	"c.location",
	"c.dates",
	"c.contact",
	"c.website",
	"c.deleted",
	"c.deletion_noticed",
	"c.notification_setting",
	"l.faculty",
	"l.start_date",
	"l.end_date",
	"l.lecturer",
	"l.assistant",
	"e.cost",
	"e.organizer",
	"s.cost",
	"s.number_of_participants",
	`(SELECT COUNT(*)
		FROM announcements a
		JOIN messages m ON m.id = a.message_id
		WHERE a.channel_id = c.id AND m.read = 0) AS unread_announcements`,
}

// channelFilter narrows buildSelectChannelsQuery. The zero value selects
// every channel.
type channelFilter struct {
	ID             *int
	SubscribedOnly bool
}

// buildSelectChannelsQuery returns the channel select joined with all three
// subtype tables, so a single pass reconstructs every variant.
func buildSelectChannelsQuery(ctx context.Context, filter channelFilter) (string, []any, error) {
	q := statementBuilder.
		Select(channelColumns...).
		From("channels c").
		LeftJoin("lectures l ON l.channel_id = c.id").
		LeftJoin("events e ON e.channel_id = c.id").
		LeftJoin("sports s ON s.channel_id = c.id")

	if filter.SubscribedOnly {
		q = q.Join("subscribed_channels sc ON sc.channel_id = c.id")
	}
	if filter.ID != nil {
		q = q.Where(sq.Eq{"c.id": *filter.ID})
	}

	return toSQL(ctx, "buildSelectChannelsQuery", q.OrderBy("c.id"))
}

var announcementColumns = []string{
	"m.id",
	"m.text",
	"m.creation_date",
	"m.priority",
	"m.read",
	"a.message_number",
	"a.channel_id",
	"a.title",
	"a.author_moderator_id",
}

// buildSelectAnnouncementsQuery lists the announcements of a channel. With
// latest set the newest come first and limit/offset page through them; a
// zero limit means no limit.
func buildSelectAnnouncementsQuery(ctx context.Context, channelID int, latest bool, limit, offset uint64) (string, []any, error) {
	q := statementBuilder.
		Select(announcementColumns...).
		From("announcements a").
		Join("messages m ON m.id = a.message_id").
		Where(sq.Eq{"a.channel_id": channelID})

	if latest {
		q = q.OrderBy("a.message_number DESC")
	} else {
		q = q.OrderBy("a.message_number ASC")
	}

	q = paginate(q, limit, offset)

	return toSQL(ctx, "buildSelectAnnouncementsQuery", q)
}

var conversationMessageColumns = []string{
	"m.id",
	"m.text",
	"m.creation_date",
	"m.priority",
	"m.read",
	"cm.message_number",
	"cm.conversation_id",
	"cm.author_user_id",
	"COALESCE(u.name, '')",
}

// conversationMessageFilter narrows buildSelectConversationMessagesQuery.
type conversationMessageFilter struct {
	ConversationID   int
	Latest           bool
	UnresolvedAuthor bool
	Limit            uint64
	Offset           uint64
}

func buildSelectConversationMessagesQuery(ctx context.Context, filter conversationMessageFilter) (string, []any, error) {
	q := statementBuilder.
		Select(conversationMessageColumns...).
		From("conversation_messages cm").
		Join("messages m ON m.id = cm.message_id").
		LeftJoin("users u ON u.id = cm.author_user_id").
		Where(sq.Eq{"cm.conversation_id": filter.ConversationID})

	if filter.UnresolvedAuthor {
		q = q.Where(sq.Eq{"cm.author_user_id": unresolvedAuthorID})
	}

	if filter.Latest {
		q = q.OrderBy("cm.message_number DESC")
	} else {
		q = q.OrderBy("cm.message_number ASC")
	}

	q = paginate(q, filter.Limit, filter.Offset)

	return toSQL(ctx, "buildSelectConversationMessagesQuery", q)
}

// buildSelectVotersQuery returns (option_id, user_id) pairs for all given
// options.
func buildSelectVotersQuery(ctx context.Context, optionIDs []int) (string, []any, error) {
	q := statementBuilder.
		Select("option_id", "user_id").
		From("user_options").
		Where(sq.Eq{"option_id": optionIDs}).
		OrderBy("option_id", "user_id")

	return toSQL(ctx, "buildSelectVotersQuery", q)
}

func paginate(q sq.SelectBuilder, limit, offset uint64) sq.SelectBuilder {
	if limit > 0 {
		q = q.Limit(limit)
		if offset > 0 {
			q = q.Offset(offset)
		}
	}
	return q
}

func toSQL(ctx context.Context, fn string, q sq.SelectBuilder) (string, []any, error) {
	query, args, err := q.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to build sql query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
