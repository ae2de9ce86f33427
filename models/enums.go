// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// ErrUnknownEnumValue is returned when a persisted or received enum value
// does not match any known constant of its type.
var ErrUnknownEnumValue = errors.New("unknown enum value")

// ChannelType is the discriminator of the Channel variants.
type ChannelType string

const (
	ChannelLecture      ChannelType = "LECTURE"
	ChannelEvent        ChannelType = "EVENT"
	ChannelSports       ChannelType = "SPORTS"
	ChannelStudentGroup ChannelType = "STUDENT_GROUP"
	ChannelOther        ChannelType = "OTHER"
)

// ParseChannelType validates s as a ChannelType.
func ParseChannelType(s string) (ChannelType, error) {
	return parseEnum(s, ChannelLecture, ChannelEvent, ChannelSports, ChannelStudentGroup, ChannelOther)
}

// Faculty of a lecture channel.
type Faculty string

const (
	FacultyEngineeringComputerSciencePsychology Faculty = "ENGINEERING_COMPUTER_SCIENCE_PSYCHOLOGY"
	FacultyMathematicsEconomics                 Faculty = "MATHEMATICS_ECONOMICS"
	FacultyMedicines                            Faculty = "MEDICINES"
	FacultyNaturalSciences                      Faculty = "NATURAL_SCIENCES"
)

// ParseFaculty validates s as a Faculty.
func ParseFaculty(s string) (Faculty, error) {
	return parseEnum(s,
		FacultyEngineeringComputerSciencePsychology,
		FacultyMathematicsEconomics,
		FacultyMedicines,
		FacultyNaturalSciences,
	)
}

// Priority of a message or reminder.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority validates s as a Priority.
func ParsePriority(s string) (Priority, error) {
	return parseEnum(s, PriorityNormal, PriorityHigh)
}

// NotificationSetting controls which incoming events raise a notification.
// ApplicationDefault defers to the value stored in AppSettings.
type NotificationSetting string

const (
	NotificationApplicationDefault NotificationSetting = "APPLICATION_DEFAULT"
	NotificationAnnounceAll        NotificationSetting = "ANNOUNCE_ALL"
	NotificationAnnouncePriority   NotificationSetting = "ANNOUNCE_PRIORITY"
	NotificationAnnounceNone       NotificationSetting = "ANNOUNCE_NONE"
)

// ParseNotificationSetting validates s as a NotificationSetting.
func ParseNotificationSetting(s string) (NotificationSetting, error) {
	return parseEnum(s,
		NotificationApplicationDefault,
		NotificationAnnounceAll,
		NotificationAnnouncePriority,
		NotificationAnnounceNone,
	)
}

// GroupType distinguishes tutorial groups from working groups.
type GroupType string

const (
	GroupTutorial GroupType = "TUTORIAL"
	GroupWorking  GroupType = "WORKING"
)

// ParseGroupType validates s as a GroupType.
func ParseGroupType(s string) (GroupType, error) {
	return parseEnum(s, GroupTutorial, GroupWorking)
}

// Platform of the local device, used for push registration.
type Platform string

const (
	PlatformWindows Platform = "WINDOWS"
	PlatformAndroid Platform = "ANDROID"
	PlatformIOS     Platform = "IOS"
)

// ParsePlatform validates s as a Platform.
func ParsePlatform(s string) (Platform, error) {
	return parseEnum(s, PlatformWindows, PlatformAndroid, PlatformIOS)
}

// OrderOption is a list sort order preference.
type OrderOption string

const (
	OrderAlphabetical        OrderOption = "ALPHABETICAL"
	OrderByType              OrderOption = "BY_TYPE"
	OrderByNewMessages       OrderOption = "BY_NEW_MESSAGES_AMOUNT"
	OrderDescendingByMsgNr   OrderOption = "DESCENDING_BY_MSG_NUMBER"
	OrderAscendingByMsgNr    OrderOption = "ASCENDING_BY_MSG_NUMBER"
	OrderDescendingByCreated OrderOption = "DESCENDING_BY_CREATION_DATE"
)

// ParseOrderOption validates s as an OrderOption.
func ParseOrderOption(s string) (OrderOption, error) {
	return parseEnum(s,
		OrderAlphabetical,
		OrderByType,
		OrderByNewMessages,
		OrderDescendingByMsgNr,
		OrderAscendingByMsgNr,
		OrderDescendingByCreated,
	)
}

// Language of the application UI.
type Language string

const (
	LanguageEnglish Language = "ENGLISH"
	LanguageGerman  Language = "GERMAN"
)

// ParseLanguage validates s as a Language.
func ParseLanguage(s string) (Language, error) {
	return parseEnum(s, LanguageEnglish, LanguageGerman)
}

func parseEnum[T ~string](s string, known ...T) (T, error) {
	for _, k := range known {
		if string(k) == s {
			return k, nil
		}
	}

	var zero T
	return zero, fmt.Errorf("%w: %T(%q)", ErrUnknownEnumValue, zero, s)
}
