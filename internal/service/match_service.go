// Package service wraps pkg/baloot's Coordinator with persistence, the
// Baloot analog of the GameService/PhaseService: it is the type
// cmd/selfplay calls into when persisting a match, translating between
// durable storage and the in-memory engine. cmd/replay reads MatchRepo
// directly instead.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/saudibaloot/engine/internal/logger"
	"github.com/saudibaloot/engine/internal/repository"
	"github.com/saudibaloot/engine/pkg/baloot"
)

// MatchService owns the lifecycle of one in-memory Coordinator, persisting
// its round boundaries through MatchRepository and its live round state
// through RoundCache, mirroring the GameService holding a
// *model.Game alongside its repositories.
type MatchService struct {
	repo  repository.MatchRepository
	cache repository.RoundCache
	log   zerolog.Logger

	matchID string
	coord   *baloot.Coordinator
}

// NewMatchService creates a service for a freshly-created match row.
func NewMatchService(ctx context.Context, repo repository.MatchRepository, cache repository.RoundCache) (*MatchService, error) {
	m, err := repo.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	return &MatchService{
		repo:    repo,
		cache:   cache,
		log:     logger.Get().With().Str("matchId", m.ID).Logger(),
		matchID: m.ID,
		coord:   baloot.NewCoordinator(),
	}, nil
}

// SeatPlayer seats a human player and persists the seat assignment.
func (s *MatchService) SeatPlayer(ctx context.Context, seat baloot.Seat, playerID string) error {
	if err := s.coord.AddPlayer(seat); err != nil {
		return err
	}
	return s.repo.SeatPlayer(ctx, s.matchID, int(seat), playerID)
}

// SeatBot seats a bot and persists the seat assignment.
func (s *MatchService) SeatBot(ctx context.Context, seat baloot.Seat, difficulty string) error {
	if err := s.coord.AddPlayer(seat); err != nil {
		return err
	}
	return s.repo.SeatBot(ctx, s.matchID, int(seat), difficulty)
}

// StartGame deals the first round and writes its opening snapshot.
func (s *MatchService) StartGame(ctx context.Context, dealer baloot.Seat) error {
	if err := s.coord.StartGame(dealer); err != nil {
		return err
	}
	return s.persistRoundStart(ctx)
}

func (s *MatchService) persistRoundStart(ctx context.Context) error {
	snap, err := baloot.Snapshot(s.coord)
	if err != nil {
		return fmt.Errorf("snapshot round start: %w", err)
	}
	if _, err := s.repo.CreateRound(ctx, s.matchID, int(s.coord.Round.DealerIndex), snap); err != nil {
		return fmt.Errorf("create round row: %w", err)
	}
	return s.cache.SetRoundState(ctx, s.matchID, snap)
}

// SubmitBid forwards to the coordinator, refreshes the cached snapshot, and
// arms or clears the Gablak deadline key as the bidding engine's phase
// dictates.
func (s *MatchService) SubmitBid(ctx context.Context, req baloot.BidRequest) (baloot.BidResult, error) {
	res, err := s.coord.SubmitBid(req)
	if err != nil {
		return res, err
	}
	logger.LogBid(s.log, req.Seat, req.Action)
	if res.Status == baloot.StatusGablakTriggered {
		if err := s.cache.SetGablakDeadline(ctx, s.matchID, s.coord.Round.Bidding.GablakDeadline); err != nil {
			return res, fmt.Errorf("set gablak deadline: %w", err)
		}
	} else {
		_ = s.cache.ClearGablakDeadline(ctx, s.matchID)
	}
	if err := s.refreshCache(ctx); err != nil {
		return res, err
	}
	if res.Status == baloot.StatusFinalized || res.Status == baloot.StatusRedeal {
		return res, s.onRoundBoundary(ctx, res)
	}
	return res, nil
}

// PollGablakTimeout is called by MatchTimerListener when a Gablak deadline
// key expires in Redis.
func (s *MatchService) PollGablakTimeout(ctx context.Context) error {
	res, err := s.coord.CheckBidTimeout(time.Now())
	if err != nil {
		return err
	}
	_ = s.cache.ClearGablakDeadline(ctx, s.matchID)
	if err := s.refreshCache(ctx); err != nil {
		return err
	}
	if res.Status == baloot.StatusFinalized || res.Status == baloot.StatusRedeal {
		return s.onRoundBoundary(ctx, res)
	}
	return nil
}

// PlayCard forwards to the coordinator and persists the resulting round
// state, finishing the round in storage when the round ends.
func (s *MatchService) PlayCard(ctx context.Context, seat baloot.Seat, cardIdx int) (baloot.CompletedTrick, bool, error) {
	wasPlaying := s.coord.Phase == baloot.PhasePlayingGame
	trick, complete, err := s.coord.PlayCard(seat, cardIdx)
	if err != nil {
		return trick, complete, err
	}
	if err := s.refreshCache(ctx); err != nil {
		return trick, complete, err
	}
	if wasPlaying && s.coord.Phase != baloot.PhasePlayingGame {
		return trick, complete, s.onRoundFinished(ctx)
	}
	return trick, complete, nil
}

// RaiseQayd forwards to the coordinator and arms the Qayd deadline key.
func (s *MatchService) RaiseQayd(ctx context.Context, accuser, accused baloot.Seat) error {
	if err := s.coord.RaiseQayd(accuser, accused); err != nil {
		return err
	}
	if err := s.cache.SetQaydDeadline(ctx, s.matchID, time.Now().Add(s.coord.Round.Qayd.HoldWindow)); err != nil {
		return fmt.Errorf("set qayd deadline: %w", err)
	}
	return s.refreshCache(ctx)
}

// PollQaydTimeout is called by MatchTimerListener when a Qayd deadline key
// expires.
func (s *MatchService) PollQaydTimeout(ctx context.Context) error {
	wasChallenge := s.coord.Phase == baloot.PhaseChallengeGame
	if err := s.coord.CheckQaydTimeout(time.Now()); err != nil {
		return err
	}
	_ = s.cache.ClearQaydDeadline(ctx, s.matchID)
	if err := s.refreshCache(ctx); err != nil {
		return err
	}
	if wasChallenge && s.coord.Phase != baloot.PhaseChallengeGame && s.coord.Phase != baloot.PhasePlayingGame {
		return s.onRoundFinished(ctx)
	}
	return nil
}

func (s *MatchService) onRoundBoundary(ctx context.Context, res baloot.BidResult) error {
	if res.Status == baloot.StatusRedeal {
		s.log.Info().Bool("rotateDealer", res.RotateDealer).Msg("round redealt")
	}
	return s.persistRoundStart(ctx)
}

func (s *MatchService) onRoundFinished(ctx context.Context) error {
	if len(s.coord.Match.PastRoundResults) == 0 {
		return nil
	}
	last := s.coord.Match.PastRoundResults[len(s.coord.Match.PastRoundResults)-1]
	logger.LogScore(s.log, last.Winner, last.Us.Result, last.Them.Result, last.Reason)

	snap, err := baloot.Snapshot(s.coord)
	if err != nil {
		return fmt.Errorf("snapshot round end: %w", err)
	}
	if err := s.repo.UpdateScores(ctx, s.matchID, s.coord.Match.Scores[baloot.Us], s.coord.Match.Scores[baloot.Them]); err != nil {
		return fmt.Errorf("update scores: %w", err)
	}
	if err := s.cache.DeleteRoundData(ctx, s.matchID); err != nil {
		return fmt.Errorf("delete round cache: %w", err)
	}
	if s.coord.Phase == baloot.PhaseGameOver {
		winner := "them"
		if s.coord.Match.Scores[baloot.Us] > s.coord.Match.Scores[baloot.Them] {
			winner = "us"
		}
		return s.repo.SetFinished(ctx, s.matchID, winner)
	}
	_ = snap
	return s.persistRoundStart(ctx)
}

func (s *MatchService) refreshCache(ctx context.Context) error {
	snap, err := baloot.Snapshot(s.coord)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return s.cache.SetRoundState(ctx, s.matchID, snap)
}

// Coordinator returns the service's underlying engine instance. A host
// driving every seat itself (cmd/selfplay) needs the full, unredacted
// round state to make AI decisions; that's a privilege only a trusted
// in-process driver gets, never a network client, which stays on State.
func (s *MatchService) Coordinator() *baloot.Coordinator {
	return s.coord
}

// MatchID returns the persisted match row's ID.
func (s *MatchService) MatchID() string {
	return s.matchID
}

// State returns the redacted view of the match for seat, suitable for
// marshaling straight to a client or log line.
func (s *MatchService) State(seat baloot.Seat) json.RawMessage {
	v := s.coord.GetState(seat)
	b, _ := json.Marshal(v)
	return b
}
