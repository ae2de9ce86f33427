// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppSettings holds the per-device application preferences. At most one row
// is stored.
type AppSettings struct {
	ChannelOrder        OrderOption         `json:"channelOrder"`
	AnnouncementOrder   OrderOption         `json:"announcementOrder"`
	GeneralListOrder    OrderOption         `json:"generalListOrder"`
	GroupOrder          OrderOption         `json:"groupOrder"`
	ConversationOrder   OrderOption         `json:"conversationOrder"`
	BallotOrder         OrderOption         `json:"ballotOrder"`
	Language            Language            `json:"language"`
	NotificationSetting NotificationSetting `json:"notificationSetting"`
}

// DefaultAppSettings returns the preferences written on first run.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ChannelOrder:        OrderAlphabetical,
		AnnouncementOrder:   OrderDescendingByMsgNr,
		GeneralListOrder:    OrderAlphabetical,
		GroupOrder:          OrderAlphabetical,
		ConversationOrder:   OrderByNewMessages,
		BallotOrder:         OrderAlphabetical,
		Language:            LanguageGerman,
		NotificationSetting: NotificationAnnouncePriority,
	}
}
