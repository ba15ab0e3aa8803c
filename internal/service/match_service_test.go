package service

import (
	"context"
	"testing"

	"github.com/saudibaloot/engine/pkg/baloot"
)

func seatFourBots(t *testing.T, svc *MatchService) {
	t.Helper()
	for _, seat := range [4]baloot.Seat{baloot.Bottom, baloot.Right, baloot.Top, baloot.Left} {
		if err := svc.SeatBot(context.Background(), seat, "medium"); err != nil {
			t.Fatalf("SeatBot(%v): %v", seat, err)
		}
	}
}

func TestNewMatchServiceUsesRepoAssignedID(t *testing.T) {
	repo, cache := newFakeMatchRepo(), newFakeRoundCache()
	svc, err := NewMatchService(context.Background(), repo, cache)
	if err != nil {
		t.Fatalf("NewMatchService: %v", err)
	}
	if svc.MatchID() != "match-1" {
		t.Errorf("expected MatchID to come from the repo's Create row, got %q", svc.MatchID())
	}
}

func TestNewMatchServicePropagatesCreateError(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.createErr = errTestRepoDown
	_, err := NewMatchService(context.Background(), repo, newFakeRoundCache())
	if err == nil {
		t.Fatalf("expected an error when the repository fails to create a match")
	}
}

func TestStartGameSeedsCacheAndFirstRound(t *testing.T) {
	repo, cache := newFakeMatchRepo(), newFakeRoundCache()
	svc, err := NewMatchService(context.Background(), repo, cache)
	if err != nil {
		t.Fatalf("NewMatchService: %v", err)
	}
	seatFourBots(t, svc)

	if err := svc.StartGame(context.Background(), baloot.Bottom); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if cache.state == nil {
		t.Errorf("expected StartGame to populate the round cache snapshot")
	}
	if len(repo.rounds) != 1 {
		t.Fatalf("expected one round row to be created, got %d", len(repo.rounds))
	}
	if svc.Coordinator().Phase != baloot.PhaseBiddingGame {
		t.Errorf("expected the coordinator to enter bidding, got phase %v", svc.Coordinator().Phase)
	}
}

func TestSubmitBidRefreshesCache(t *testing.T) {
	repo, cache := newFakeMatchRepo(), newFakeRoundCache()
	svc, err := NewMatchService(context.Background(), repo, cache)
	if err != nil {
		t.Fatalf("NewMatchService: %v", err)
	}
	seatFourBots(t, svc)
	if err := svc.StartGame(context.Background(), baloot.Bottom); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	turn := svc.Coordinator().Round.Bidding.CurrentTurn
	before := cache.state
	if _, err := svc.SubmitBid(context.Background(), baloot.BidRequest{Seat: turn, Action: baloot.Pass}); err != nil {
		t.Fatalf("SubmitBid: %v", err)
	}
	if string(cache.state) == string(before) {
		t.Errorf("expected SubmitBid to refresh the cached snapshot")
	}
}

func TestSubmitBidRejectsOutOfTurnSeat(t *testing.T) {
	repo, cache := newFakeMatchRepo(), newFakeRoundCache()
	svc, err := NewMatchService(context.Background(), repo, cache)
	if err != nil {
		t.Fatalf("NewMatchService: %v", err)
	}
	seatFourBots(t, svc)
	if err := svc.StartGame(context.Background(), baloot.Bottom); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	turn := svc.Coordinator().Round.Bidding.CurrentTurn
	var offTurn baloot.Seat
	for _, seat := range [4]baloot.Seat{baloot.Bottom, baloot.Right, baloot.Top, baloot.Left} {
		if seat != turn {
			offTurn = seat
			break
		}
	}
	if _, err := svc.SubmitBid(context.Background(), baloot.BidRequest{Seat: offTurn, Action: baloot.Pass}); err == nil {
		t.Errorf("expected an error submitting a bid out of turn")
	}
}

func TestStateReturnsPopulatedSnapshot(t *testing.T) {
	repo, cache := newFakeMatchRepo(), newFakeRoundCache()
	svc, err := NewMatchService(context.Background(), repo, cache)
	if err != nil {
		t.Fatalf("NewMatchService: %v", err)
	}
	seatFourBots(t, svc)
	if err := svc.StartGame(context.Background(), baloot.Bottom); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	raw := svc.State(baloot.Bottom)
	if len(raw) == 0 {
		t.Fatalf("expected State to return a populated snapshot")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTestRepoDown = testError("repository unavailable")
