package model

import (
	"encoding/json"
	"time"
)

// Match represents one persisted table across its full set of rounds.
type Match struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"` // waiting, active, finished
	Winner     string      `json:"winner,omitempty"`
	ScoreUs    int         `json:"score_us"`
	ScoreThem  int         `json:"score_them"`
	CreatedAt  time.Time   `json:"created_at"`
	StartedAt  *time.Time  `json:"started_at,omitempty"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
	Seats      []MatchSeat `json:"seats,omitempty"`
}

// MatchSeat represents one of the four seats at a match.
type MatchSeat struct {
	MatchID       string `json:"match_id"`
	Seat          int    `json:"seat"`
	PlayerID      string `json:"player_id"`
	IsBot         bool   `json:"is_bot"`
	BotDifficulty string `json:"bot_difficulty"`
}

// Round represents one completed or in-progress round of a match, stored
// for replay and forensic review.
type Round struct {
	ID           string          `json:"id"`
	MatchID      string          `json:"match_id"`
	DealerSeat   int             `json:"dealer_seat"`
	Mode         string          `json:"mode"` // SUN, HOKUM, or empty if not yet contracted
	StateBefore  json.RawMessage `json:"state_before"`
	StateAfter   json.RawMessage `json:"state_after,omitempty"`
	ResultUsGP   int             `json:"result_us_gp"`
	ResultThemGP int             `json:"result_them_gp"`
	Reason       string          `json:"reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
}
