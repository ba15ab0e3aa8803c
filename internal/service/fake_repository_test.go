package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saudibaloot/engine/internal/model"
)

// fakeMatchRepo is an in-memory stand-in for repository.MatchRepository,
// the Baloot analog of the in-memory fake game repo used in
// order_service_test.go: just enough bookkeeping for MatchService's own
// unit tests, no database involved.
type fakeMatchRepo struct {
	match      model.Match
	rounds     []model.Round
	finished   bool
	winner     string
	seatCalls  int
	createErr  error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{match: model.Match{ID: "match-1", Status: "waiting"}}
}

func (f *fakeMatchRepo) Create(ctx context.Context) (*model.Match, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m := f.match
	return &m, nil
}

func (f *fakeMatchRepo) FindByID(ctx context.Context, id string) (*model.Match, error) {
	if id != f.match.ID {
		return nil, nil
	}
	m := f.match
	return &m, nil
}

func (f *fakeMatchRepo) ListActive(ctx context.Context) ([]model.Match, error)   { return nil, nil }
func (f *fakeMatchRepo) ListFinished(ctx context.Context) ([]model.Match, error) { return nil, nil }

func (f *fakeMatchRepo) SeatPlayer(ctx context.Context, matchID string, seat int, playerID string) error {
	f.seatCalls++
	return nil
}

func (f *fakeMatchRepo) SeatBot(ctx context.Context, matchID string, seat int, difficulty string) error {
	f.seatCalls++
	return nil
}

func (f *fakeMatchRepo) UpdateScores(ctx context.Context, matchID string, scoreUs, scoreThem int) error {
	f.match.ScoreUs, f.match.ScoreThem = scoreUs, scoreThem
	return nil
}

func (f *fakeMatchRepo) SetFinished(ctx context.Context, matchID, winner string) error {
	f.finished = true
	f.winner = winner
	return nil
}

func (f *fakeMatchRepo) Delete(ctx context.Context, matchID string) error { return nil }

func (f *fakeMatchRepo) CreateRound(ctx context.Context, matchID string, dealerSeat int, stateBefore json.RawMessage) (*model.Round, error) {
	r := model.Round{ID: fmt.Sprintf("round-%d", len(f.rounds)+1), MatchID: matchID, DealerSeat: dealerSeat, StateBefore: stateBefore, CreatedAt: time.Now()}
	f.rounds = append(f.rounds, r)
	return &r, nil
}

func (f *fakeMatchRepo) ResolveRound(ctx context.Context, roundID, mode string, stateAfter json.RawMessage, usGP, themGP int, reason string) error {
	for i := range f.rounds {
		if f.rounds[i].ID == roundID {
			f.rounds[i].Mode = mode
			f.rounds[i].StateAfter = stateAfter
			f.rounds[i].ResultUsGP = usGP
			f.rounds[i].ResultThemGP = themGP
			f.rounds[i].Reason = reason
		}
	}
	return nil
}

func (f *fakeMatchRepo) ListRounds(ctx context.Context, matchID string) ([]model.Round, error) {
	return f.rounds, nil
}

// fakeRoundCache is an in-memory stand-in for repository.RoundCache.
type fakeRoundCache struct {
	state           json.RawMessage
	gablakDeadline  *time.Time
	qaydDeadline    *time.Time
	deleted         bool
}

func newFakeRoundCache() *fakeRoundCache { return &fakeRoundCache{} }

func (f *fakeRoundCache) SetRoundState(ctx context.Context, matchID string, state json.RawMessage) error {
	f.state = state
	return nil
}

func (f *fakeRoundCache) GetRoundState(ctx context.Context, matchID string) (json.RawMessage, error) {
	return f.state, nil
}

func (f *fakeRoundCache) SetGablakDeadline(ctx context.Context, matchID string, deadline time.Time) error {
	f.gablakDeadline = &deadline
	return nil
}

func (f *fakeRoundCache) ClearGablakDeadline(ctx context.Context, matchID string) error {
	f.gablakDeadline = nil
	return nil
}

func (f *fakeRoundCache) SetQaydDeadline(ctx context.Context, matchID string, deadline time.Time) error {
	f.qaydDeadline = &deadline
	return nil
}

func (f *fakeRoundCache) ClearQaydDeadline(ctx context.Context, matchID string) error {
	f.qaydDeadline = nil
	return nil
}

func (f *fakeRoundCache) DeleteRoundData(ctx context.Context, matchID string) error {
	f.deleted = true
	return nil
}
