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

// ballotRepository is the SQLite-backed implementation of [BallotRepository].
// A ballot, its options and their voters are written in one transaction.
type ballotRepository struct {
	db      *DB
	logger  *logger.Logger
	timeout time.Duration
}

func NewBallotRepository(db *DB, logger *logger.Logger) BallotRepository {
	logger.Debug().Msg("creating ballot repository")
	return &ballotRepository{
		db:      db,
		logger:  logger,
		timeout: db.GateTimeout(),
	}
}

// StoreBallot inserts the ballot with all options and votes. Unknown
// tri-state flags are stored as false.
func (r *ballotRepository) StoreBallot(ctx context.Context, ballot models.Ballot) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			return insertBallotTree(ctx, tx, ballot)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.StoreBallot").
			Int("ballot_id", ballot.ID).
			Int("group_id", ballot.GroupID).
			Msg("failed to store ballot")
		return err
	}

	return nil
}

func (r *ballotRepository) BulkInsertBallots(ctx context.Context, ballots []models.Ballot) error {
	log := logger.FromContextOr(ctx, r.logger)

	if len(ballots) == 0 {
		return nil
	}

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			for _, ballot := range ballots {
				if err := insertBallotTree(ctx, tx, ballot); err != nil {
					return fmt.Errorf("ballot %d: %w", ballot.ID, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.BulkInsertBallots").
			Int("count", len(ballots)).
			Msg("failed to insert ballots")
		return err
	}

	return nil
}

// UpdateBallot updates the ballot row only. Nil tri-state flags keep their
// stored value.
func (r *ballotRepository) UpdateBallot(ctx context.Context, ballot models.Ballot) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateBallot,
			ballot.Title,
			ballot.Description,
			ballot.IsClosed,
			ballot.IsMultipleChoice,
			ballot.HasPublicVotes,
			ballot.GroupID,
			ballot.AdminUserID,
			ballot.ID,
		)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.UpdateBallot").
			Int("ballot_id", ballot.ID).
			Msg("failed to update ballot")
		return err
	}

	return nil
}

// GetBallot returns nil when the ballot is not stored. With
// includingSubresources the options and their voters are loaded too.
func (r *ballotRepository) GetBallot(ctx context.Context, ballotID int, includingSubresources bool) (*models.Ballot, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var ballot *models.Ballot
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		b, err := scanBallot(conn.QueryRowContext(ctx, selectBallot, ballotID))
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return err
		}

		if includingSubresources {
			if b.Options, err = selectOptionRows(ctx, conn, ballotID, true); err != nil {
				return err
			}
		}
		ballot = &b
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.GetBallot").
			Int("ballot_id", ballotID).
			Msg("failed to get ballot")
		return nil, err
	}

	return ballot, nil
}

func (r *ballotRepository) ListBallotsOfGroup(ctx context.Context, groupID int) ([]models.Ballot, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var ballots []models.Ballot
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, selectBallotsOfGroup, groupID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			ballot, err := scanBallot(rows)
			if err != nil {
				return err
			}
			ballots = append(ballots, ballot)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.ListBallotsOfGroup").
			Int("group_id", groupID).
			Msg("failed to list ballots")
		return nil, err
	}

	return ballots, nil
}

// DeleteBallot removes the ballot; options and votes follow by cascade.
func (r *ballotRepository) DeleteBallot(ctx context.Context, ballotID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteBallot, ballotID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.DeleteBallot").
			Int("ballot_id", ballotID).
			Msg("failed to delete ballot")
		return err
	}

	return nil
}

func (r *ballotRepository) BallotExists(ctx context.Context, ballotID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var exists bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = queryBool(ctx, conn, ballotExists, ballotID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.BallotExists").
			Int("ballot_id", ballotID).
			Msg("failed to check ballot existence")
		return false, err
	}

	return exists, nil
}

// StoreOption inserts the option and its voters in one transaction.
func (r *ballotRepository) StoreOption(ctx context.Context, option models.Option) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		return runInTransaction(ctx, conn, func(ctx context.Context, tx Querier) error {
			return insertOptionTree(ctx, tx, option.BallotID, option)
		})
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.StoreOption").
			Int("option_id", option.ID).
			Int("ballot_id", option.BallotID).
			Msg("failed to store option")
		return err
	}

	return nil
}

func (r *ballotRepository) UpdateOption(ctx context.Context, option models.Option) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, updateOption, option.Text, option.ID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.UpdateOption").
			Int("option_id", option.ID).
			Msg("failed to update option")
		return err
	}

	return nil
}

func (r *ballotRepository) DeleteOption(ctx context.Context, optionID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteOption, optionID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.DeleteOption").
			Int("option_id", optionID).
			Msg("failed to delete option")
		return err
	}

	return nil
}

func (r *ballotRepository) ListOptions(ctx context.Context, ballotID int, includingVoters bool) ([]models.Option, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var options []models.Option
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		options, err = selectOptionRows(ctx, conn, ballotID, includingVoters)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.ListOptions").
			Int("ballot_id", ballotID).
			Msg("failed to list options")
		return nil, err
	}

	return options, nil
}

// AddVote records a vote; voting twice for the same option is a no-op.
func (r *ballotRepository) AddVote(ctx context.Context, optionID, userID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, insertVote, optionID, userID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.AddVote").
			Int("option_id", optionID).
			Int("user_id", userID).
			Msg("failed to add vote")
		return err
	}

	return nil
}

func (r *ballotRepository) RemoveVote(ctx context.Context, optionID, userID int) error {
	log := logger.FromContextOr(ctx, r.logger)

	err := r.db.write(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		_, err := exec(ctx, conn, deleteVote, optionID, userID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.RemoveVote").
			Int("option_id", optionID).
			Int("user_id", userID).
			Msg("failed to remove vote")
		return err
	}

	return nil
}

func (r *ballotRepository) ListVoters(ctx context.Context, optionID int) ([]int, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var voters []int
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		voters, err = queryInts(ctx, conn, selectVoters, optionID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.ListVoters").
			Int("option_id", optionID).
			Msg("failed to list voters")
		return nil, err
	}

	return voters, nil
}

// HasVotedForBallot reports whether the user voted for any option of the
// ballot.
func (r *ballotRepository) HasVotedForBallot(ctx context.Context, ballotID, userID int) (bool, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var voted bool
	err := r.db.read(ctx, r.timeout, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		voted, err = queryBool(ctx, conn, hasVotedForBallot, ballotID, userID)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "ballotRepository.HasVotedForBallot").
			Int("ballot_id", ballotID).
			Int("user_id", userID).
			Msg("failed to check vote")
		return false, err
	}

	return voted, nil
}

func insertBallotTree(ctx context.Context, q Querier, ballot models.Ballot) error {
	_, err := exec(ctx, q, insertBallot,
		ballot.ID,
		ballot.Title,
		ballot.Description,
		models.BoolValue(ballot.IsClosed),
		models.BoolValue(ballot.IsMultipleChoice),
		models.BoolValue(ballot.HasPublicVotes),
		ballot.GroupID,
		ballot.AdminUserID,
	)
	if err != nil {
		return err
	}

	for _, option := range ballot.Options {
		if err = insertOptionTree(ctx, q, ballot.ID, option); err != nil {
			return fmt.Errorf("option %d: %w", option.ID, err)
		}
	}

	return nil
}

func insertOptionTree(ctx context.Context, q Querier, ballotID int, option models.Option) error {
	if _, err := exec(ctx, q, insertOption, option.ID, option.Text, ballotID); err != nil {
		return err
	}

	for _, userID := range option.Voters {
		if _, err := exec(ctx, q, insertVote, option.ID, userID); err != nil {
			return fmt.Errorf("voter %d: %w", userID, err)
		}
	}

	return nil
}

// selectOptionRows loads the options of a ballot. Voters of all options are
// fetched with one additional query.
func selectOptionRows(ctx context.Context, q Querier, ballotID int, includingVoters bool) ([]models.Option, error) {
	rows, err := q.QueryContext(ctx, selectOptions, ballotID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var options []models.Option
	for rows.Next() {
		var o models.Option
		if err = rows.Scan(&o.ID, &o.Text, &o.BallotID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		options = append(options, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	if !includingVoters || len(options) == 0 {
		return options, nil
	}

	optionIDs := make([]int, len(options))
	for i, o := range options {
		optionIDs[i] = o.ID
		options[i].Voters = []int{}
	}

	voters, err := selectVotersByOption(ctx, q, optionIDs)
	if err != nil {
		return nil, err
	}
	for i := range options {
		if v, ok := voters[options[i].ID]; ok {
			options[i].Voters = v
		}
	}

	return options, nil
}

func selectVotersByOption(ctx context.Context, q Querier, optionIDs []int) (map[int][]int, error) {
	query, args, err := buildSelectVotersQuery(ctx, optionIDs)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	voters := make(map[int][]int, len(optionIDs))
	for rows.Next() {
		var optionID, userID int
		if err = rows.Scan(&optionID, &userID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		voters[optionID] = append(voters[optionID], userID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return voters, nil
}

func scanBallot(s scanner) (models.Ballot, error) {
	var (
		ballot                              models.Ballot
		closed, multipleChoice, publicVotes bool
	)

	err := s.Scan(
		&ballot.ID,
		&ballot.Title,
		&ballot.Description,
		&closed,
		&multipleChoice,
		&publicVotes,
		&ballot.GroupID,
		&ballot.AdminUserID,
	)
	if err != nil {
		return models.Ballot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	ballot.IsClosed = models.Bool(closed)
	ballot.IsMultipleChoice = models.Bool(multipleChoice)
	ballot.HasPublicVotes = models.Bool(publicVotes)

	return ballot, nil
}
