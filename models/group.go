// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Group is a closed discussion group the local user participates in.
type Group struct {
	ID                  int                 `json:"id"`
	Name                string              `json:"name"`
	Description         string              `json:"description,omitempty"`
	Type                GroupType           `json:"groupType"`
	CreationDate        time.Time           `json:"creationDate"`
	ModificationDate    time.Time           `json:"modificationDate"`
	Term                string              `json:"term,omitempty"`
	Deleted             bool                `json:"deleted"`
	GroupAdminUserID    int                 `json:"groupAdmin"`
	NotificationSetting NotificationSetting `json:"-"`

	// Sync bookkeeping, never sent to the server.
	IsDirty                 bool `json:"-"`
	HasNewEvent             bool `json:"-"`
	DeletionNoticed         bool `json:"-"`
	RemovedFromGroupNoticed bool `json:"-"`

	Participants []User `json:"participants,omitempty"`
}

// User is another participant of the service, known by id and name only.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	OldName string `json:"-"`

	// Active reflects the user_groups link when loaded for a group.
	Active bool `json:"active"`
}

// LocalUser is the identity of this device. At most one is stored.
type LocalUser struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	ServerAccessToken string   `json:"serverAccessToken"`
	PushAccessToken   string   `json:"pushAccessToken"`
	Platform          Platform `json:"platform"`
}

// Conversation is a thread inside a group.
type Conversation struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	IsClosed    *bool  `json:"closed,omitempty"`
	GroupID     int    `json:"groupId"`
	AdminUserID int    `json:"admin"`

	// Computed on read.
	AdminName      string `json:"-"`
	UnreadMessages int    `json:"-"`
}

// Ballot is a poll inside a group.
type Ballot struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	IsClosed         *bool  `json:"closed,omitempty"`
	IsMultipleChoice *bool  `json:"multipleChoice,omitempty"`
	HasPublicVotes   *bool  `json:"publicVotes,omitempty"`
	GroupID          int    `json:"groupId"`
	AdminUserID      int    `json:"admin"`

	Options []Option `json:"options,omitempty"`
}

// Option is one answer of a ballot. Voters holds the ids of users who voted
// for it.
type Option struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	BallotID int    `json:"ballotId"`
	Voters   []int  `json:"voters,omitempty"`
}

// Bool returns a pointer to v, handy for tri-state fields.
func Bool(v bool) *bool {
	return &v
}

// BoolValue dereferences p, treating nil as false.
func BoolValue(p *bool) bool {
	return p != nil && *p
}
