// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Channel is a news channel mirrored from the server.
//
// Channel is a tagged union keyed by Type: exactly one of Lecture, Event and
// Sports is set for the LECTURE, EVENT and SPORTS types respectively, none of
// them for STUDENT_GROUP and OTHER.
type Channel struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	Type             ChannelType `json:"type"`
	CreationDate     time.Time   `json:"creationDate"`
	ModificationDate time.Time   `json:"modificationDate"`
	Term             string      `json:"term,omitempty"`
	Location         string      `json:"location,omitempty"`
	Dates            string      `json:"dates,omitempty"`
	Contact          string      `json:"contact,omitempty"`
	Website          string      `json:"website,omitempty"`
	Deleted          bool        `json:"deleted"`

	// DeletionNoticed is local state: the user has seen the remote deletion.
	DeletionNoticed bool `json:"-"`
	// AnnouncementNotificationSetting is local state, APPLICATION_DEFAULT on first insert.
	AnnouncementNotificationSetting NotificationSetting `json:"-"`
	// UnreadAnnouncements is computed on read and never persisted.
	UnreadAnnouncements int `json:"-"`

	Lecture *LectureDetails `json:"lecture,omitempty"`
	Event   *EventDetails   `json:"event,omitempty"`
	Sports  *SportsDetails  `json:"sports,omitempty"`
}

// LectureDetails extends a LECTURE channel.
type LectureDetails struct {
	Faculty   Faculty `json:"faculty"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Lecturer  string  `json:"lecturer,omitempty"`
	Assistant string  `json:"assistant,omitempty"`
}

// EventDetails extends an EVENT channel.
type EventDetails struct {
	Cost      string `json:"cost,omitempty"`
	Organizer string `json:"organizer,omitempty"`
}

// SportsDetails extends a SPORTS channel.
type SportsDetails struct {
	Cost                 string `json:"cost,omitempty"`
	NumberOfParticipants string `json:"numberOfParticipants,omitempty"`
}

// Moderator is a channel author as known locally.
type Moderator struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	// Active is only meaningful when the moderator was loaded in the context
	// of a channel; it reflects the moderator_channels link.
	Active bool `json:"active"`
}
