package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/saudibaloot/engine/internal/model"
)

// MatchRepository defines durable match and seat data operations.
type MatchRepository interface {
	Create(ctx context.Context) (*model.Match, error)
	FindByID(ctx context.Context, id string) (*model.Match, error)
	ListActive(ctx context.Context) ([]model.Match, error)
	ListFinished(ctx context.Context) ([]model.Match, error)
	SeatPlayer(ctx context.Context, matchID string, seat int, playerID string) error
	SeatBot(ctx context.Context, matchID string, seat int, difficulty string) error
	UpdateScores(ctx context.Context, matchID string, scoreUs, scoreThem int) error
	SetFinished(ctx context.Context, matchID, winner string) error
	Delete(ctx context.Context, matchID string) error

	CreateRound(ctx context.Context, matchID string, dealerSeat int, stateBefore json.RawMessage) (*model.Round, error)
	ResolveRound(ctx context.Context, roundID string, mode string, stateAfter json.RawMessage, usGP, themGP int, reason string) error
	ListRounds(ctx context.Context, matchID string) ([]model.Round, error)
}

// RoundCache defines live round-state operations backed by Redis, the
// Baloot analog of the GameCache. It holds the one round
// currently in progress at a table; durable history lives in
// MatchRepository.
type RoundCache interface {
	SetRoundState(ctx context.Context, matchID string, state json.RawMessage) error
	GetRoundState(ctx context.Context, matchID string) (json.RawMessage, error)
	SetGablakDeadline(ctx context.Context, matchID string, deadline time.Time) error
	ClearGablakDeadline(ctx context.Context, matchID string) error
	SetQaydDeadline(ctx context.Context, matchID string, deadline time.Time) error
	ClearQaydDeadline(ctx context.Context, matchID string) error
	DeleteRoundData(ctx context.Context, matchID string) error
}
