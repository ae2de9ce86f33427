// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// channels, subtypes, subscriptions, moderators
const (
	insertChannel = `INSERT INTO channels (
			id,
			name,
			description,
			type,
			creation_date,
			modification_date,
			term,
			location,
			dates,
			contact,
			website,
			deleted,
			deletion_noticed,
			notification_setting
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	insertLecture = `INSERT INTO lectures (channel_id, faculty, start_date, end_date, lecturer, assistant)
		VALUES (?, ?, ?, ?, ?, ?);`
	insertEvent = `INSERT INTO events (channel_id, cost, organizer)
		VALUES (?, ?, ?);`
	insertSports = `INSERT INTO sports (channel_id, cost, number_of_participants)
		VALUES (?, ?, ?);`

	upsertLecture = `INSERT INTO lectures (channel_id, faculty, start_date, end_date, lecturer, assistant)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (channel_id) DO UPDATE SET
			faculty = excluded.faculty,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			lecturer = excluded.lecturer,
			assistant = excluded.assistant;`
	upsertEvent = `INSERT INTO events (channel_id, cost, organizer)
		VALUES (?, ?, ?)
		ON CONFLICT (channel_id) DO UPDATE SET
			cost = excluded.cost,
			organizer = excluded.organizer;`
	upsertSports = `INSERT INTO sports (channel_id, cost, number_of_participants)
		VALUES (?, ?, ?)
		ON CONFLICT (channel_id) DO UPDATE SET
			cost = excluded.cost,
			number_of_participants = excluded.number_of_participants;`

	deleteLecture = `DELETE FROM lectures WHERE channel_id = ?;`
	deleteEvent   = `DELETE FROM events WHERE channel_id = ?;`
	deleteSports  = `DELETE FROM sports WHERE channel_id = ?;`

	// updateChannel never touches type; the subtype rows depend on it.
	updateChannel = `UPDATE channels SET
			name = ?,
			description = ?,
			creation_date = ?,
			modification_date = ?,
			term = ?,
			location = ?,
			dates = ?,
			contact = ?,
			website = ?,
			deleted = ?
		WHERE id = ?;`
	updateChannelType                = `UPDATE channels SET type = ? WHERE id = ?;`
	updateChannelNotificationSetting = `UPDATE channels SET notification_setting = ? WHERE id = ?;`

	channelExists = `SELECT EXISTS (SELECT 1 FROM channels WHERE id = ?);`

	deleteChannelAnnouncementMessages = `DELETE FROM messages
		WHERE id IN (SELECT message_id FROM announcements WHERE channel_id = ?);`
	deleteChannel      = `DELETE FROM channels WHERE id = ?;`
	markChannelDeleted = `UPDATE channels SET deleted = 1 WHERE id = ?;`

	selectChannelDeletionNoticed = `SELECT deletion_noticed FROM channels WHERE id = ?;`
	updateChannelDeletionNoticed = `UPDATE channels SET deletion_noticed = ? WHERE id = ?;`

	subscribeChannel   = `INSERT OR IGNORE INTO subscribed_channels (channel_id) VALUES (?);`
	unsubscribeChannel = `DELETE FROM subscribed_channels WHERE channel_id = ?;`
	channelSubscribed  = `SELECT EXISTS (SELECT 1 FROM subscribed_channels WHERE channel_id = ?);`

	moderatorChannelExists = `SELECT EXISTS (
			SELECT 1 FROM moderator_channels WHERE moderator_id = ? AND channel_id = ?
		);`
	insertModeratorChannel = `INSERT INTO moderator_channels (moderator_id, channel_id, active)
		VALUES (?, ?, ?);`
	updateModeratorChannel = `UPDATE moderator_channels SET active = ?
		WHERE moderator_id = ? AND channel_id = ?;`
	deleteModeratorChannels     = `DELETE FROM moderator_channels WHERE channel_id = ?;`
	selectResponsibleModerators = `SELECT m.id, m.first_name, m.last_name, m.email, mc.active
		FROM moderators m
		JOIN moderator_channels mc ON mc.moderator_id = m.id
		WHERE mc.channel_id = ?
		ORDER BY m.id;`
	isResponsibleModerator = `SELECT EXISTS (
			SELECT 1 FROM moderator_channels WHERE moderator_id = ? AND channel_id = ? AND active = 1
		);`
)

// moderators
const (
	insertModerator = `INSERT INTO moderators (id, first_name, last_name, email)
		VALUES (?, ?, ?, ?);`
	updateModerator = `UPDATE moderators SET first_name = ?, last_name = ?, email = ?
		WHERE id = ?;`
	selectModerator = `SELECT id, first_name, last_name, email FROM moderators WHERE id = ?;`
	moderatorExists = `SELECT EXISTS (SELECT 1 FROM moderators WHERE id = ?);`
	deleteModerator = `DELETE FROM moderators WHERE id = ?;`
)

// messages and announcements
const (
	insertMessage = `INSERT INTO messages (id, text, creation_date, priority, read)
		VALUES (?, ?, ?, ?, ?);`

	insertAnnouncement = `INSERT INTO announcements (message_id, message_number, channel_id, title, author_moderator_id)
		VALUES (?, ?, ?, ?, ?);`

	selectUnreadAnnouncementCounts = `SELECT a.channel_id, COUNT(*)
		FROM announcements a
		JOIN messages m ON m.id = a.message_id
		JOIN subscribed_channels sc ON sc.channel_id = a.channel_id
		WHERE m.read = 0
		GROUP BY a.channel_id;`

	selectHighestAnnouncementNumber = `SELECT COALESCE(MAX(message_number), 0)
		FROM announcements
		WHERE channel_id = ?;`

	markAnnouncementsRead = `UPDATE messages SET read = 1
		WHERE read = 0
		  AND id IN (SELECT message_id FROM announcements WHERE channel_id = ?);`
)

// reminders
const (
	insertReminder = `INSERT INTO reminders (
			id,
			channel_id,
			start_date,
			end_date,
			creation_date,
			modification_date,
			interval_seconds,
			ignored,
			title,
			text,
			priority,
			author_moderator_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	updateReminder = `UPDATE reminders SET
			channel_id = ?,
			start_date = ?,
			end_date = ?,
			creation_date = ?,
			modification_date = ?,
			interval_seconds = ?,
			ignored = ?,
			title = ?,
			text = ?,
			priority = ?,
			author_moderator_id = ?
		WHERE id = ?;`

	reminderColumns = `id, channel_id, start_date, end_date, creation_date, modification_date,
		interval_seconds, ignored, title, text, priority, author_moderator_id`

	selectReminder           = `SELECT ` + reminderColumns + ` FROM reminders WHERE id = ?;`
	selectRemindersOfChannel = `SELECT ` + reminderColumns + ` FROM reminders WHERE channel_id = ? ORDER BY id;`

	reminderExists       = `SELECT EXISTS (SELECT 1 FROM reminders WHERE id = ?);`
	deleteReminder       = `DELETE FROM reminders WHERE id = ?;`
	updateReminderIgnore = `UPDATE reminders SET ignored = ? WHERE id = ?;`
)
