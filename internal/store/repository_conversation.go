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

const unresolvedAuthorID = models.UnresolvedAuthorID

// conversationRepository is the SQLite-backed implementation of
// [ConversationRepository].
//
// Messages can arrive before their author is known locally. Such messages
// are stored with author 0 and repaired later through UpdateAuthorReference.
type conversationRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewConversationRepository(db *DB, logger *logger.Logger) ConversationRepository {
	logger.Debug().Msg("creating conversation repository")
	return &conversationRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreConversation inserts the conversation. An unknown closed state is
// stored as open.
func (r *conversationRepository) StoreConversation(ctx context.Context, conversation models.Conversation) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return insertConversationRow(ctx, conn, conversation)
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.StoreConversation").
			Int("conversation_id", conversation.ID).
			Int("group_id", conversation.GroupID).
			Msg("failed to store conversation")
		return err
	}

	return nil
}

func (r *conversationRepository) StoreConversations(ctx context.Context, conversations ...models.Conversation) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(conversations) == 0 {
		return nil
	}

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			for _, conversation := range conversations {
				if err := insertConversationRow(ctx, tx, conversation); err != nil {
					return fmt.Errorf("conversation %d: %w", conversation.ID, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.StoreConversations").
			Int("count", len(conversations)).
			Msg("failed to store conversations")
		return err
	}

	return nil
}

// UpdateConversation keeps the stored closed state when IsClosed is nil.
func (r *conversationRepository) UpdateConversation(ctx context.Context, conversation models.Conversation) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateConversation,
			conversation.Title,
			conversation.IsClosed,
			conversation.GroupID,
			conversation.AdminUserID,
			conversation.ID,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.UpdateConversation").
			Int("conversation_id", conversation.ID).
			Msg("failed to update conversation")
		return err
	}

	return nil
}

// GetConversation returns nil when the conversation is not stored.
func (r *conversationRepository) GetConversation(ctx context.Context, conversationID int) (*models.Conversation, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var conversation *models.Conversation
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		c, err := scanConversation(conn.QueryRowContext(ctx, selectConversation, conversationID))
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return err
		}
		conversation = &c
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.GetConversation").
			Int("conversation_id", conversationID).
			Msg("failed to get conversation")
		return nil, err
	}

	return conversation, nil
}

// ListConversationsOfGroup returns the conversations of the group with the
// admin name and unread message count filled in.
func (r *conversationRepository) ListConversationsOfGroup(ctx context.Context, groupID int) ([]models.Conversation, error) {
	return r.listConversations(ctx, "conversationRepository.ListConversationsOfGroup", selectConversationsOfGroup, groupID)
}

// ListConversations returns the conversations of all groups.
func (r *conversationRepository) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	return r.listConversations(ctx, "conversationRepository.ListConversations", selectConversations)
}

func (r *conversationRepository) listConversations(ctx context.Context, fn, query string, args ...any) ([]models.Conversation, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var conversations []models.Conversation
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			conversation, err := scanConversation(rows)
			if err != nil {
				return err
			}
			conversations = append(conversations, conversation)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to list conversations")
		return nil, err
	}

	return conversations, nil
}

// DeleteConversation removes the conversation together with its messages.
func (r *conversationRepository) DeleteConversation(ctx context.Context, conversationID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			if _, err := exec(ctx, tx, deleteConversationMessages, conversationID); err != nil {
				return err
			}
			_, err := exec(ctx, tx, deleteConversation, conversationID)
			return err
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.DeleteConversation").
			Int("conversation_id", conversationID).
			Msg("failed to delete conversation")
		return err
	}

	return nil
}

func (r *conversationRepository) ConversationExists(ctx context.Context, conversationID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, conversationExists, conversationID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.ConversationExists").
			Int("conversation_id", conversationID).
			Msg("failed to check conversation existence")
		return false, err
	}

	return exists, nil
}

// StoreConversationMessage stores a single message. See
// BulkInsertConversationMessages for the author resolution rule.
func (r *conversationRepository) StoreConversationMessage(ctx context.Context, message models.ConversationMessage) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			return insertConversationMessageRows(ctx, tx, message)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.StoreConversationMessage").
			Int("message_id", message.ID).
			Int("conversation_id", message.ConversationID).
			Msg("failed to store conversation message")
		return err
	}

	return nil
}

// BulkInsertConversationMessages stores the messages of one conversation in
// a single transaction. Only messages numbered above the highest stored
// number are inserted, so overlapping batches can be submitted repeatedly.
// Authors not present in the users table are stored as unresolved.
func (r *conversationRepository) BulkInsertConversationMessages(ctx context.Context, conversationID int, messages []models.ConversationMessage) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(messages) == 0 {
		return nil
	}

	var inserted int
	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			highest, _, err := queryInt(ctx, tx, selectHighestConversationMessageNumber, conversationID)
			if err != nil {
				return err
			}

			inserted = 0
			for _, message := range messages {
				if message.MessageNumber <= highest {
					continue
				}
				message.ConversationID = conversationID
				if err = insertConversationMessageRows(ctx, tx, message); err != nil {
					return fmt.Errorf("message %d: %w", message.ID, err)
				}
				inserted++
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.BulkInsertConversationMessages").
			Int("conversation_id", conversationID).
			Int("count", len(messages)).
			Msg("bulk insert of conversation messages rolled back")
		return err
	}

	log.Debug().
		Str("func", "conversationRepository.BulkInsertConversationMessages").
		Int("conversation_id", conversationID).
		Int("received", len(messages)).
		Int("inserted", inserted).
		Msg("stored conversation messages")

	return nil
}

func (r *conversationRepository) ListConversationMessages(ctx context.Context, conversationID int) ([]models.ConversationMessage, error) {
	return r.listMessages(ctx, "conversationRepository.ListConversationMessages", conversationMessageFilter{
		ConversationID: conversationID,
	})
}

// ListLatestConversationMessages returns one page of messages, newest first.
func (r *conversationRepository) ListLatestConversationMessages(ctx context.Context, conversationID, limit, offset int) ([]models.ConversationMessage, error) {
	return r.listMessages(ctx, "conversationRepository.ListLatestConversationMessages", conversationMessageFilter{
		ConversationID: conversationID,
		Latest:         true,
		Limit:          nonNegative(limit),
		Offset:         nonNegative(offset),
	})
}

func (r *conversationRepository) ListUnresolvedAuthorMessages(ctx context.Context, conversationID int) ([]models.ConversationMessage, error) {
	return r.listMessages(ctx, "conversationRepository.ListUnresolvedAuthorMessages", conversationMessageFilter{
		ConversationID:   conversationID,
		UnresolvedAuthor: true,
	})
}

func (r *conversationRepository) listMessages(ctx context.Context, fn string, filter conversationMessageFilter) ([]models.ConversationMessage, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var messages []models.ConversationMessage
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		query, args, err := buildSelectConversationMessagesQuery(ctx, filter)
		if err != nil {
			return err
		}

		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			message, err := scanConversationMessage(rows)
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", fn).
			Int("conversation_id", filter.ConversationID).
			Msg("failed to list conversation messages")
		return nil, err
	}

	return messages, nil
}

func (r *conversationRepository) HighestConversationMessageNumber(ctx context.Context, conversationID int) (int, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var highest int
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		highest, _, err = queryInt(ctx, conn, selectHighestConversationMessageNumber, conversationID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.HighestConversationMessageNumber").
			Int("conversation_id", conversationID).
			Msg("failed to read highest message number")
		return 0, err
	}

	return highest, nil
}

func (r *conversationRepository) MarkConversationMessagesRead(ctx context.Context, conversationID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, markConversationMessagesRead, conversationID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.MarkConversationMessagesRead").
			Int("conversation_id", conversationID).
			Msg("failed to mark conversation messages read")
		return err
	}

	return nil
}

// UnreadMessageCountsByConversation maps conversation ids of the group to
// their unread message count. Conversations without unread messages are
// absent.
func (r *conversationRepository) UnreadMessageCountsByConversation(ctx context.Context, groupID int) (map[int]int, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var counts map[int]int
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		counts, err = queryCounts(ctx, conn, selectUnreadConversationMessageCounts, groupID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.UnreadMessageCountsByConversation").
			Int("group_id", groupID).
			Msg("failed to count unread messages")
		return nil, err
	}

	return counts, nil
}

// HasUnresolvedAuthors reports whether any message of the conversation
// still waits for its author.
func (r *conversationRepository) HasUnresolvedAuthors(ctx context.Context, conversationID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var unresolved bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		unresolved, err = queryBool(ctx, conn, hasUnresolvedAuthors, conversationID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.HasUnresolvedAuthors").
			Int("conversation_id", conversationID).
			Msg("failed to check unresolved authors")
		return false, err
	}

	return unresolved, nil
}

func (r *conversationRepository) UpdateAuthorReference(ctx context.Context, messageID, userID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateAuthorReference, userID, messageID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "conversationRepository.UpdateAuthorReference").
			Int("message_id", messageID).
			Int("user_id", userID).
			Msg("failed to update author reference")
		return err
	}

	return nil
}

func insertConversationRow(ctx context.Context, q Querier, conversation models.Conversation) error {
	_, err := exec(ctx, q, insertConversation,
		conversation.ID,
		conversation.Title,
		models.BoolValue(conversation.IsClosed),
		conversation.GroupID,
		conversation.AdminUserID,
	)
	return err
}

func insertConversationMessageRows(ctx context.Context, q Querier, message models.ConversationMessage) error {
	author := message.AuthorUserID
	if author != unresolvedAuthorID {
		known, err := queryBool(ctx, q, userExists, author)
		if err != nil {
			return err
		}
		if !known {
			author = unresolvedAuthorID
		}
	}

	if err := insertMessageRow(ctx, q, message.Message); err != nil {
		return err
	}

	_, err := exec(ctx, q, insertConversationMessage,
		message.ID,
		message.MessageNumber,
		message.ConversationID,
		author,
	)
	return err
}

func scanConversation(s scanner) (models.Conversation, error) {
	var (
		conversation models.Conversation
		closed       bool
	)

	err := s.Scan(
		&conversation.ID,
		&conversation.Title,
		&closed,
		&conversation.GroupID,
		&conversation.AdminUserID,
		&conversation.AdminName,
		&conversation.UnreadMessages,
	)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	conversation.IsClosed = models.Bool(closed)

	return conversation, nil
}

func scanConversationMessage(s scanner) (models.ConversationMessage, error) {
	var (
		message  models.ConversationMessage
		created  sql.NullInt64
		priority string
	)

	err := s.Scan(
		&message.ID,
		&message.Text,
		&created,
		&priority,
		&message.Read,
		&message.MessageNumber,
		&message.ConversationID,
		&message.AuthorUserID,
		&message.AuthorName,
	)
	if err != nil {
		return models.ConversationMessage{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	message.CreationDate = fromMillis(created)
	if message.Priority, err = parseStored("messages.priority", priority, models.ParsePriority); err != nil {
		return models.ConversationMessage{}, err
	}

	return message, nil
}
