// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Message holds the columns shared by announcements and conversation messages.
type Message struct {
	ID           int       `json:"id"`
	Text         string    `json:"text"`
	CreationDate time.Time `json:"creationDate"`
	Priority     Priority  `json:"priority"`
	Read         bool      `json:"-"`
}

// Announcement is a message posted to a channel by a moderator.
type Announcement struct {
	Message

	MessageNumber     int    `json:"messageNumber"`
	ChannelID         int    `json:"channelId"`
	Title             string `json:"title"`
	AuthorModeratorID int    `json:"authorId"`
}

// UnresolvedAuthorID marks a conversation message whose author is not yet
// stored as a local user.
const UnresolvedAuthorID = 0

// ConversationMessage is a message posted to a group conversation.
type ConversationMessage struct {
	Message

	MessageNumber  int `json:"messageNumber"`
	ConversationID int `json:"conversationId"`
	AuthorUserID   int `json:"authorId"`

	// AuthorName is resolved from the local users table on read.
	AuthorName string `json:"-"`
}

// Reminder is a recurring announcement template of a channel.
type Reminder struct {
	ID                int           `json:"id"`
	ChannelID         int           `json:"channelId"`
	StartDate         time.Time     `json:"startDate"`
	EndDate           time.Time     `json:"endDate"`
	CreationDate      time.Time     `json:"creationDate"`
	ModificationDate  time.Time     `json:"modificationDate"`
	Interval          time.Duration `json:"interval"`
	Ignore            bool          `json:"ignore"`
	Title             string        `json:"title"`
	Text              string        `json:"text"`
	Priority          Priority      `json:"priority"`
	AuthorModeratorID int           `json:"authorId"`
}
