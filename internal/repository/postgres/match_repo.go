package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/saudibaloot/engine/internal/model"
)

// MatchRepo handles match, match_seat, and round database operations,
// adapted from the GameRepo (internal/repository/postgres/
// game_repo.go): same connection-pool-held-by-value shape, same
// QueryRowContext/Scan/fmt.Errorf-wrap idiom, same ErrNoRows-to-nil
// convention for FindByID.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo creates a MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create inserts a new waiting match.
func (r *MatchRepo) Create(ctx context.Context) (*model.Match, error) {
	var m model.Match
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO matches (status, score_us, score_them) VALUES ('waiting', 0, 0)
		 RETURNING id, status, score_us, score_them, created_at`,
	).Scan(&m.ID, &m.Status, &m.ScoreUs, &m.ScoreThem, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	return &m, nil
}

// FindByID returns a match by ID with its seats.
func (r *MatchRepo) FindByID(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	var winner sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, status, winner, score_us, score_them, created_at, started_at, finished_at
		 FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.Status, &winner, &m.ScoreUs, &m.ScoreThem, &m.CreatedAt, &m.StartedAt, &m.FinishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find match: %w", err)
	}
	m.Winner = winner.String

	seats, err := r.listSeats(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Seats = seats
	return &m, nil
}

func (r *MatchRepo) listSeats(ctx context.Context, matchID string) ([]model.MatchSeat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT match_id, seat, player_id, is_bot, bot_difficulty FROM match_seats WHERE match_id = $1 ORDER BY seat`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()

	var seats []model.MatchSeat
	for rows.Next() {
		var s model.MatchSeat
		if err := rows.Scan(&s.MatchID, &s.Seat, &s.PlayerID, &s.IsBot, &s.BotDifficulty); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// ListActive returns matches in "active" status.
func (r *MatchRepo) ListActive(ctx context.Context) ([]model.Match, error) {
	return r.listByStatus(ctx, "active")
}

// ListFinished returns matches in "finished" status.
func (r *MatchRepo) ListFinished(ctx context.Context) ([]model.Match, error) {
	return r.listByStatus(ctx, "finished")
}

func (r *MatchRepo) listByStatus(ctx context.Context, status string) ([]model.Match, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, status, score_us, score_them, created_at FROM matches WHERE status = $1 ORDER BY created_at DESC LIMIT 50`, status)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.Status, &m.ScoreUs, &m.ScoreThem, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// SeatPlayer seats a human player at seat.
func (r *MatchRepo) SeatPlayer(ctx context.Context, matchID string, seat int, playerID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO match_seats (match_id, seat, player_id, is_bot, bot_difficulty)
		 VALUES ($1, $2, $3, false, '')
		 ON CONFLICT (match_id, seat) DO UPDATE SET player_id = $3, is_bot = false, bot_difficulty = ''`,
		matchID, seat, playerID)
	if err != nil {
		return fmt.Errorf("seat player: %w", err)
	}
	return nil
}

// SeatBot seats a bot at seat with the given difficulty.
func (r *MatchRepo) SeatBot(ctx context.Context, matchID string, seat int, difficulty string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO match_seats (match_id, seat, player_id, is_bot, bot_difficulty)
		 VALUES ($1, $2, '', true, $3)
		 ON CONFLICT (match_id, seat) DO UPDATE SET is_bot = true, bot_difficulty = $3`,
		matchID, seat, difficulty)
	if err != nil {
		return fmt.Errorf("seat bot: %w", err)
	}
	return nil
}

// UpdateScores persists the running match GP totals.
func (r *MatchRepo) UpdateScores(ctx context.Context, matchID string, scoreUs, scoreThem int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE matches SET score_us = $2, score_them = $3 WHERE id = $1`, matchID, scoreUs, scoreThem)
	if err != nil {
		return fmt.Errorf("update scores: %w", err)
	}
	return nil
}

// SetFinished marks a match finished with the given winning team.
func (r *MatchRepo) SetFinished(ctx context.Context, matchID, winner string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = 'finished', winner = $2, finished_at = now() WHERE id = $1`, matchID, winner)
	if err != nil {
		return fmt.Errorf("set finished: %w", err)
	}
	return nil
}

// Delete removes a match and its seats/rounds (cascade via FK).
func (r *MatchRepo) Delete(ctx context.Context, matchID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}

// CreateRound inserts a new round row with its pre-deal state snapshot.
func (r *MatchRepo) CreateRound(ctx context.Context, matchID string, dealerSeat int, stateBefore json.RawMessage) (*model.Round, error) {
	var rnd model.Round
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO rounds (match_id, dealer_seat, state_before) VALUES ($1, $2, $3)
		 RETURNING id, match_id, dealer_seat, state_before, created_at`,
		matchID, dealerSeat, []byte(stateBefore),
	).Scan(&rnd.ID, &rnd.MatchID, &rnd.DealerSeat, &rnd.StateBefore, &rnd.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}
	return &rnd, nil
}

// ResolveRound records a round's final score and closing state snapshot.
func (r *MatchRepo) ResolveRound(ctx context.Context, roundID string, mode string, stateAfter json.RawMessage, usGP, themGP int, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE rounds SET mode = $2, state_after = $3, result_us_gp = $4, result_them_gp = $5, reason = $6, resolved_at = now()
		 WHERE id = $1`,
		roundID, mode, []byte(stateAfter), usGP, themGP, reason)
	if err != nil {
		return fmt.Errorf("resolve round: %w", err)
	}
	return nil
}

// ListRounds returns every round played at a match, oldest first.
func (r *MatchRepo) ListRounds(ctx context.Context, matchID string) ([]model.Round, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, match_id, dealer_seat, mode, state_before, state_after, result_us_gp, result_them_gp, reason, created_at, resolved_at
		 FROM rounds WHERE match_id = $1 ORDER BY created_at ASC`, matchID)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []model.Round
	for rows.Next() {
		var rnd model.Round
		var mode, reason sql.NullString
		var stateAfter []byte
		if err := rows.Scan(&rnd.ID, &rnd.MatchID, &rnd.DealerSeat, &mode, &rnd.StateBefore, &stateAfter,
			&rnd.ResultUsGP, &rnd.ResultThemGP, &reason, &rnd.CreatedAt, &rnd.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rnd.Mode = mode.String
		rnd.Reason = reason.String
		rnd.StateAfter = stateAfter
		rounds = append(rounds, rnd)
	}
	return rounds, rows.Err()
}
