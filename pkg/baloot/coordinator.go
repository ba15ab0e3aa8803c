package baloot

import (
	"time"

	"github.com/google/uuid"
)

// GamePhase is the top-level phase of a table across rounds.
type GamePhase int

const (
	PhaseWaiting GamePhase = iota
	PhaseBiddingGame
	PhasePlayingGame
	PhaseChallengeGame
	PhaseFinishedGame
	PhaseGameOver
)

// Coordinator owns one table's match and round lifecycle: it is the single
// entry point every external caller (host CLI, AI harness) goes through.
// It holds domain state directly rather than round-tripping through a
// repository on every call; persistence is a decision the host makes
// around a Coordinator, not inside it.
type Coordinator struct {
	RoomID   string // stable identity for this table, independent of any persistence row ID
	Seats    [4]bool // seat occupied
	Match    *MatchState
	Round    *RoundState
	Phase    GamePhase
}

// NewCoordinator creates an empty table waiting for four players, stamped
// with a fresh RoomID.
func NewCoordinator() *Coordinator {
	return &Coordinator{RoomID: uuid.NewString(), Match: NewMatchState(), Phase: PhaseWaiting}
}

// AddPlayer seats a player at seat.
func (c *Coordinator) AddPlayer(seat Seat) error {
	if c.Phase != PhaseWaiting {
		return newErr(KindPhase, CodeGameNotReady, "cannot seat players once bidding has started")
	}
	c.Seats[seat] = true
	return nil
}

func (c *Coordinator) allSeated() bool {
	for _, s := range c.Seats {
		if !s {
			return false
		}
	}
	return true
}

// StartGame deals the first round once all four seats are filled.
func (c *Coordinator) StartGame(dealer Seat) error {
	if c.Phase != PhaseWaiting {
		return newErr(KindPhase, CodeGameNotReady, "game already started")
	}
	if !c.allSeated() {
		return newErr(KindPhase, CodeGameNotReady, "not all seats filled")
	}
	c.beginRound(dealer)
	return nil
}

func (c *Coordinator) beginRound(dealer Seat) {
	c.Round = NewRoundState(dealer, c.Match.Scores)
	c.Phase = PhaseBiddingGame
}

// SubmitBid forwards to the bidding engine and handles the transition into
// PLAYING once a contract is finalized, or a redeal (round-2 all-pass or
// Kawesh). A Kawesh request is rejected unless the seat's hand holds no A,
// 10, K, Q or J; the dealer rotates only when the engine's result says so.
func (c *Coordinator) SubmitBid(req BidRequest) (BidResult, error) {
	if c.Phase != PhaseBiddingGame {
		return BidResult{}, newErr(KindPhase, CodeWrongPhase, "not in bidding")
	}
	if req.Action == Kawesh && !IsKaweshEligible(c.Round.Hands[req.Seat]) {
		return BidResult{}, newErr(KindEligibility, CodeKaweshHandInvalid, "hand holds an Ace, Ten or court card")
	}
	res, err := c.Round.Bidding.SubmitBid(req)
	if err != nil {
		return res, err
	}
	switch res.Status {
	case StatusRedeal:
		nextDealer := c.Round.DealerIndex
		if res.RotateDealer {
			nextDealer = nextDealer.Next()
		}
		c.beginRound(nextDealer)
	case StatusFinalized:
		c.enterPlaying(res.Contract)
	}
	return res, nil
}

// CheckBidTimeout polls the Gablak window under this coordinator-driven
// timer model: the engine never schedules its own wakeups, the host polls
// it.
func (c *Coordinator) CheckBidTimeout(now time.Time) (BidResult, error) {
	if c.Phase != PhaseBiddingGame {
		return BidResult{}, nil
	}
	res, err := c.Round.Bidding.CheckTimeout(now)
	if err != nil || res.Status == StatusOK {
		return res, err
	}
	if res.Status == StatusFinalized {
		c.enterPlaying(res.Contract)
	}
	return res, nil
}

func (c *Coordinator) enterPlaying(contract *Contract) {
	r := c.Round
	r.Contract = contract
	r.Mode = contract.Type
	r.TrumpSuit = contract.Suit
	r.Trick = NewTrickManager(r.Mode, r.TrumpSuit, true, contract.BidderSeat.Next())
	sizes := map[Seat]int{}
	for s := Bottom; s <= Left; s++ {
		sizes[s] = len(r.Hands[s])
	}
	r.Memory = NewCardMemory(sizes)
	r.Baloot = NewBalootState(r.Hands, r.Mode, r.TrumpSuit)
	r.Qayd = NewQaydAdjudicator()
	r.DeclareWindowOpen = true
	c.Phase = PhasePlayingGame
}

// PlayCard plays cardIdx from seat's hand, enforcing the single declaration
// window at the start of the first trick.
func (c *Coordinator) PlayCard(seat Seat, cardIdx int) (CompletedTrick, bool, error) {
	if c.Phase != PhasePlayingGame {
		return CompletedTrick{}, false, newErr(KindPhase, CodeWrongPhase, "not in play")
	}
	if c.Round.Qayd.IsLocked {
		return CompletedTrick{}, false, newErr(KindPhase, CodeQaydLocked, "accusation pending")
	}
	r := c.Round
	hand := r.Hands[seat]
	if cardIdx < 0 || cardIdx >= len(hand) {
		return CompletedTrick{}, false, newErr(KindInput, CodeInvalidPlayerIndex, "card index out of range")
	}
	if len(r.Trick.Table) == 0 && len(r.Trick.History) == 0 {
		r.DeclareWindowOpen = false
	}
	card := hand[cardIdx]
	led := Suit(-1)
	if len(r.Trick.Table) > 0 {
		led = r.Trick.Table[0].Card.Suit
	}
	voidPlay := led >= 0 && card.Suit != led

	newHand, trick, complete, err := r.Trick.PlayCard(seat, hand, cardIdx)
	if err != nil {
		return CompletedTrick{}, false, err
	}
	r.Hands[seat] = newHand
	r.Memory.RecordPlay(seat, card, led, voidPlay)
	r.Baloot.OnCardPlayed(seat, card, r.TrumpSuit)

	if r.Trick.IsComplete() {
		c.finishRound("normal")
	}
	return trick, complete, nil
}

// DeclareProject registers seat's best project during the trick-1
// declaration window.
func (c *Coordinator) DeclareProject(seat Seat) error {
	if c.Phase != PhasePlayingGame || !c.Round.DeclareWindowOpen {
		return newErr(KindPhase, CodeDeclareWindow, "declaration window closed")
	}
	p := DetectBestProject(c.Round.Hands[seat], c.Round.Mode)
	if p == nil {
		return newErr(KindEligibility, CodeInvariant, "no project in hand")
	}
	p.Seat = seat
	c.Round.DeclaredProjects[seat] = p
	return nil
}

// DeclareSawaAction lets seat claim the grand slam.
func (c *Coordinator) DeclareSawaAction(seat Seat, opponentsHaveTrump bool) (SawaOutcome, error) {
	if c.Phase != PhasePlayingGame {
		return SawaOutcome{}, newErr(KindPhase, CodeWrongPhase, "not in play")
	}
	if c.Round.Trick.Turn != seat {
		return SawaOutcome{}, newErr(KindTurn, CodeNotYourTurn, "not seat's turn")
	}
	outcome := DeclareSawa(c.Round.Hands[seat], c.Round.Memory.Played, c.Round.Mode, c.Round.TrumpSuit, opponentsHaveTrump)
	if outcome.Valid {
		c.finishRound("sawa")
	} else {
		c.Match.IncrementBlunder(seat)
	}
	return outcome, nil
}

// RaiseQayd begins a forensic accusation, locking further play.
func (c *Coordinator) RaiseQayd(accuser, accused Seat) error {
	if c.Phase != PhasePlayingGame {
		return newErr(KindPhase, CodeWrongPhase, "not in play")
	}
	if err := c.Round.Qayd.Raise(accuser, accused); err != nil {
		return err
	}
	c.Phase = PhaseChallengeGame
	c.Round.Qayd.Review(c.Round.Trick.History, c.Round.Trick.Table, c.Round.Mode, c.Round.TrumpSuit, c.Round.Memory, time.Now())
	return nil
}

// CheckQaydTimeout polls the hold window and, once elapsed, applies the
// verdict's penalty and ends the round (or returns play to PLAYING if the
// verdict is inconclusive).
func (c *Coordinator) CheckQaydTimeout(now time.Time) error {
	if c.Phase != PhaseChallengeGame {
		return nil
	}
	if !c.Round.Qayd.CheckTimeout(now) {
		return nil
	}
	if res, ok := c.Round.Qayd.Penalty(c.Round.Mode); ok {
		c.Match.ApplyRoundResult(res)
		c.advanceAfterRound()
		return nil
	}
	c.Phase = PhasePlayingGame
	return nil
}

func (c *Coordinator) finishRound(reason string) {
	res := Score(ScoreInput{
		History:  c.Round.Trick.History,
		Declared: c.Round.DeclaredProjects,
		Contract: c.Round.Contract,
		Baloot:   c.Round.Baloot,
		Mode:     c.Round.Mode,
		Trump:    c.Round.TrumpSuit,
	})
	res.Reason = reason
	c.Match.ApplyRoundResult(res)
	c.advanceAfterRound()
}

func (c *Coordinator) advanceAfterRound() {
	if c.Match.IsGameOver() {
		c.Phase = PhaseGameOver
		return
	}
	c.beginRound(c.Round.DealerIndex.Next())
}

// RedactedView is what GetState(seat) returns: a player only ever sees
// their own hand, not the others'.
type RedactedView struct {
	Phase       GamePhase
	RoundPhase  RoundPhase
	Hand        Hand
	FloorCard   Card
	Contract    *Contract
	Table       []Play
	MatchScores map[Team]int
}

// GetState returns the state visible to seat.
func (c *Coordinator) GetState(seat Seat) RedactedView {
	v := RedactedView{Phase: c.Phase, MatchScores: c.Match.Scores}
	if c.Round == nil {
		return v
	}
	v.RoundPhase = c.Round.Phase
	v.Hand = c.Round.Hands[seat]
	v.FloorCard = c.Round.FloorCard
	v.Contract = c.Round.Contract
	if c.Round.Trick != nil {
		v.Table = c.Round.Trick.Table
	}
	return v
}
