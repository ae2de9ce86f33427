// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/uni-news-store/internal/config"
	"github.com/MKhiriev/uni-news-store/internal/logger"
	"github.com/MKhiriev/uni-news-store/models"
)

const testGateTimeout = 200 * time.Millisecond

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps an existing *sql.DB, usually a sqlmock one.
func newDBFromSQL(db *sql.DB) *DB {
	return newDB(db, testGateTimeout, logger.Nop())
}

// newSQLiteStorages opens a fresh in-memory cache with the full schema.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	return newSQLiteStoragesWithLogger(t, logger.Nop())
}

func newSQLiteStoragesWithLogger(t *testing.T, log *logger.Logger) *Storages {
	t.Helper()

	s, err := NewStorages(testContext(), config.Storage{
		DB: config.DB{DSN: ":memory:", GateTimeout: time.Second},
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func testTime(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func lectureChannel(id int) models.Channel {
	return models.Channel{
		ID:               id,
		Name:             "Distributed Systems",
		Description:      "Lecture news",
		Type:             models.ChannelLecture,
		CreationDate:     testTime(1, 9),
		ModificationDate: testTime(2, 9),
		Term:             "SS26",
		Location:         "O27/H22",
		Dates:            "Mon 10-12",
		Contact:          "ds@uni.example",
		Website:          "https://uni.example/ds",
		Lecture: &models.LectureDetails{
			Faculty:   models.FacultyEngineeringComputerSciencePsychology,
			StartDate: "2026-04-13",
			EndDate:   "2026-07-24",
			Lecturer:  "Prof. Lang",
			Assistant: "M. Weber",
		},
	}
}

func announcement(id, number, channelID int) models.Announcement {
	return models.Announcement{
		Message: models.Message{
			ID:           id,
			Text:         "announcement text",
			CreationDate: testTime(3, number%24),
			Priority:     models.PriorityNormal,
		},
		MessageNumber:     number,
		ChannelID:         channelID,
		Title:             "title",
		AuthorModeratorID: 7,
	}
}

func studyGroup(id int) models.Group {
	return models.Group{
		ID:               id,
		Name:             "Compiler study group",
		Description:      "weekly meeting",
		Type:             models.GroupTutorial,
		CreationDate:     testTime(1, 8),
		ModificationDate: testTime(1, 8),
		Term:             "SS26",
		GroupAdminUserID: 5,
	}
}

func conversationMessage(id, number, conversationID, author int) models.ConversationMessage {
	return models.ConversationMessage{
		Message: models.Message{
			ID:           id,
			Text:         "hello",
			CreationDate: testTime(4, number%24),
			Priority:     models.PriorityNormal,
		},
		MessageNumber:  number,
		ConversationID: conversationID,
		AuthorUserID:   author,
	}
}

// bufferLogger returns a logger that writes JSON lines into buf.
func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(buf)}
}
