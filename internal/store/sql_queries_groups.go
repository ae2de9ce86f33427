// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// users, local user, settings
const (
	insertUserIfAbsent = `INSERT OR IGNORE INTO users (id, name, old_name) VALUES (?, ?, ?);`
	updateUser         = `UPDATE users SET name = ?, old_name = ? WHERE id = ?;`
	selectUser         = `SELECT id, name, old_name FROM users WHERE id = ?;`
	selectUsers        = `SELECT id, name, old_name FROM users ORDER BY id;`
	userExists         = `SELECT EXISTS (SELECT 1 FROM users WHERE id = ?);`

	localUserExists = `SELECT EXISTS (SELECT 1 FROM local_user);`
	insertLocalUser = `INSERT INTO local_user (id, name, server_access_token, push_access_token, platform)
		VALUES (?, ?, ?, ?, ?);`
	selectLocalUser = `SELECT id, name, server_access_token, push_access_token, platform
		FROM local_user
		LIMIT 1;`
	updateLocalUser = `UPDATE local_user SET name = ?, server_access_token = ?, push_access_token = ?, platform = ?
		WHERE id = ?;`
	updatePushAccessToken = `UPDATE local_user SET push_access_token = ?;`
	deleteLocalUser       = `DELETE FROM local_user;`

	settingsID     = 0
	upsertSettings = `INSERT OR REPLACE INTO app_settings (
			id,
			channel_order,
			announcement_order,
			general_list_order,
			group_order,
			conversation_order,
			ballot_order,
			language,
			notification_setting
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`
	updateSettings = `UPDATE app_settings SET
			channel_order = ?,
			announcement_order = ?,
			general_list_order = ?,
			group_order = ?,
			conversation_order = ?,
			ballot_order = ?,
			language = ?,
			notification_setting = ?
		WHERE id = ?;`
	selectSettings = `SELECT channel_order, announcement_order, general_list_order, group_order,
			conversation_order, ballot_order, language, notification_setting
		FROM app_settings
		WHERE id = ?;`
)

// groups and participants
const (
	insertGroup = `INSERT INTO study_groups (
			id,
			name,
			description,
			type,
			creation_date,
			modification_date,
			term,
			deleted,
			group_admin_user_id,
			notification_setting,
			is_dirty,
			has_new_event,
			deletion_noticed,
			removed_from_group_noticed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, 0);`

	updateGroup = `UPDATE study_groups SET
			name = ?,
			description = ?,
			type = ?,
			creation_date = ?,
			modification_date = ?,
			term = ?,
			deleted = ?,
			group_admin_user_id = ?
		WHERE id = ?;`
	updateGroupNotificationSetting = `UPDATE study_groups SET notification_setting = ? WHERE id = ?;`

	groupColumns = `id, name, description, type, creation_date, modification_date, term, deleted,
		group_admin_user_id, notification_setting, is_dirty, has_new_event, deletion_noticed,
		removed_from_group_noticed`

	selectGroup       = `SELECT ` + groupColumns + ` FROM study_groups WHERE id = ?;`
	selectGroups      = `SELECT ` + groupColumns + ` FROM study_groups ORDER BY id;`
	selectDirtyGroups = `SELECT ` + groupColumns + ` FROM study_groups WHERE is_dirty = 1 ORDER BY id;`

	groupExists = `SELECT EXISTS (SELECT 1 FROM study_groups WHERE id = ?);`

	deleteGroupConversationMessages = `DELETE FROM messages
		WHERE id IN (
			SELECT cm.message_id
			FROM conversation_messages cm
			JOIN conversations c ON c.id = cm.conversation_id
			WHERE c.group_id = ?
		);`
	deleteGroup      = `DELETE FROM study_groups WHERE id = ?;`
	markGroupDeleted = `UPDATE study_groups SET deleted = 1 WHERE id = ?;`

	participantExists  = `SELECT EXISTS (SELECT 1 FROM user_groups WHERE user_id = ? AND group_id = ?);`
	insertParticipant  = `INSERT INTO user_groups (user_id, group_id, active) VALUES (?, ?, ?);`
	updateParticipant  = `UPDATE user_groups SET active = ? WHERE user_id = ? AND group_id = ?;`
	deleteParticipant  = `DELETE FROM user_groups WHERE user_id = ? AND group_id = ?;`
	selectParticipants = `SELECT u.id, u.name, u.old_name, ug.active
		FROM users u
		JOIN user_groups ug ON ug.user_id = u.id
		WHERE ug.group_id = ?
		ORDER BY u.id;`
	isActiveParticipant = `SELECT EXISTS (
			SELECT 1 FROM user_groups WHERE user_id = ? AND group_id = ? AND active = 1
		);`
)

// conversations and conversation messages
const (
	insertConversation = `INSERT INTO conversations (id, title, is_closed, group_id, admin_user_id)
		VALUES (?, ?, ?, ?, ?);`
	updateConversation = `UPDATE conversations SET
			title = ?,
			is_closed = COALESCE(?, is_closed),
			group_id = ?,
			admin_user_id = ?
		WHERE id = ?;`

	conversationColumns = `c.id, c.title, c.is_closed, c.group_id, c.admin_user_id, COALESCE(u.name, ''),
		(SELECT COUNT(*)
			FROM conversation_messages cm
			JOIN messages m ON m.id = cm.message_id
			WHERE cm.conversation_id = c.id AND m.read = 0)`
	conversationFrom = ` FROM conversations c LEFT JOIN users u ON u.id = c.admin_user_id`

	selectConversation         = `SELECT ` + conversationColumns + conversationFrom + ` WHERE c.id = ?;`
	selectConversationsOfGroup = `SELECT ` + conversationColumns + conversationFrom + ` WHERE c.group_id = ? ORDER BY c.id;`
	selectConversations        = `SELECT ` + conversationColumns + conversationFrom + ` ORDER BY c.group_id, c.id;`

	conversationExists = `SELECT EXISTS (SELECT 1 FROM conversations WHERE id = ?);`

	deleteConversationMessages = `DELETE FROM messages
		WHERE id IN (SELECT message_id FROM conversation_messages WHERE conversation_id = ?);`
	deleteConversation = `DELETE FROM conversations WHERE id = ?;`

	insertConversationMessage = `INSERT INTO conversation_messages (message_id, message_number, conversation_id, author_user_id)
		VALUES (?, ?, ?, ?);`

	selectHighestConversationMessageNumber = `SELECT COALESCE(MAX(message_number), 0)
		FROM conversation_messages
		WHERE conversation_id = ?;`

	markConversationMessagesRead = `UPDATE messages SET read = 1
		WHERE read = 0
		  AND id IN (SELECT message_id FROM conversation_messages WHERE conversation_id = ?);`

	selectUnreadConversationMessageCounts = `SELECT cm.conversation_id, COUNT(*)
		FROM conversation_messages cm
		JOIN messages m ON m.id = cm.message_id
		JOIN conversations c ON c.id = cm.conversation_id
		WHERE c.group_id = ? AND m.read = 0
		GROUP BY cm.conversation_id;`

	hasUnresolvedAuthors = `SELECT EXISTS (
			SELECT 1 FROM conversation_messages WHERE conversation_id = ? AND author_user_id = 0
		);`
	updateAuthorReference = `UPDATE conversation_messages SET author_user_id = ? WHERE message_id = ?;`
)

// ballots, options, votes
const (
	insertBallot = `INSERT INTO ballots (
			id,
			title,
			description,
			is_closed,
			is_multiple_choice,
			has_public_votes,
			group_id,
			admin_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	updateBallot = `UPDATE ballots SET
			title = ?,
			description = ?,
			is_closed = COALESCE(?, is_closed),
			is_multiple_choice = COALESCE(?, is_multiple_choice),
			has_public_votes = COALESCE(?, has_public_votes),
			group_id = ?,
			admin_user_id = ?
		WHERE id = ?;`

	ballotColumns = `id, title, description, is_closed, is_multiple_choice, has_public_votes, group_id, admin_user_id`

	selectBallot         = `SELECT ` + ballotColumns + ` FROM ballots WHERE id = ?;`
	selectBallotsOfGroup = `SELECT ` + ballotColumns + ` FROM ballots WHERE group_id = ? ORDER BY id;`

	ballotExists = `SELECT EXISTS (SELECT 1 FROM ballots WHERE id = ?);`
	deleteBallot = `DELETE FROM ballots WHERE id = ?;`

	insertOption  = `INSERT INTO options (id, text, ballot_id) VALUES (?, ?, ?);`
	updateOption  = `UPDATE options SET text = ? WHERE id = ?;`
	deleteOption  = `DELETE FROM options WHERE id = ?;`
	selectOptions = `SELECT id, text, ballot_id FROM options WHERE ballot_id = ? ORDER BY id;`

	insertVote   = `INSERT OR IGNORE INTO user_options (option_id, user_id) VALUES (?, ?);`
	deleteVote   = `DELETE FROM user_options WHERE option_id = ? AND user_id = ?;`
	selectVoters = `SELECT user_id FROM user_options WHERE option_id = ? ORDER BY user_id;`

	hasVotedForBallot = `SELECT EXISTS (
			SELECT 1
			FROM user_options uo
			JOIN options o ON o.id = uo.option_id
			WHERE o.ballot_id = ? AND uo.user_id = ?
		);`
)

// sync bookkeeping
const (
	lastChannelListUpdateID     = 0
	selectLastChannelListUpdate = `SELECT updated_at FROM last_update_on_channels_list WHERE id = ?;`
	upsertLastChannelListUpdate = `INSERT OR REPLACE INTO last_update_on_channels_list (id, updated_at) VALUES (?, ?);`

	selectLastAutoSync = `SELECT synced_at FROM last_auto_sync_of_group WHERE group_id = ?;`
	upsertLastAutoSync = `INSERT OR REPLACE INTO last_auto_sync_of_group (group_id, synced_at) VALUES (?, ?);`
	pruneAutoSyncMarks = `DELETE FROM last_auto_sync_of_group WHERE synced_at IS NULL OR synced_at < ?;`

	resetDirtyFlags = `UPDATE study_groups SET is_dirty = 0 WHERE is_dirty = 1;`
	setGroupDirty   = `UPDATE study_groups SET is_dirty = 1 WHERE id = ?;`

	selectHasNewEvent = `SELECT has_new_event FROM study_groups WHERE id = ?;`
	updateHasNewEvent = `UPDATE study_groups SET has_new_event = ?, is_dirty = 1 WHERE id = ?;`

	selectGroupDeletionNoticed    = `SELECT deletion_noticed FROM study_groups WHERE id = ?;`
	updateGroupDeletionNoticed    = `UPDATE study_groups SET deletion_noticed = ? WHERE id = ?;`
	selectRemovedFromGroupNoticed = `SELECT removed_from_group_noticed FROM study_groups WHERE id = ?;`
	updateRemovedFromGroupNoticed = `UPDATE study_groups SET removed_from_group_noticed = ? WHERE id = ?;`

	purgeNoticedChannelMessages = `DELETE FROM messages
		WHERE id IN (
			SELECT a.message_id
			FROM announcements a
			JOIN channels c ON c.id = a.channel_id
			WHERE c.deleted = 1 AND c.deletion_noticed = 1
		);`
	purgeNoticedChannels      = `DELETE FROM channels WHERE deleted = 1 AND deletion_noticed = 1;`
	purgeNoticedGroupMessages = `DELETE FROM messages
		WHERE id IN (
			SELECT cm.message_id
			FROM conversation_messages cm
			JOIN conversations c ON c.id = cm.conversation_id
			JOIN study_groups g ON g.id = c.group_id
			WHERE g.deleted = 1 AND g.deletion_noticed = 1
		);`
	purgeNoticedGroups = `DELETE FROM study_groups WHERE deleted = 1 AND deletion_noticed = 1;`

	countRows = `SELECT COUNT(*) FROM %s;`
)
