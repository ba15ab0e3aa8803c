package baloot

import "math/rand"

// MatchTarget is the GP a team must reach to end the match.
const MatchTarget = 152

// MatchState is the persistent cross-round state of one table.
type MatchState struct {
	Scores            map[Team]int
	PastRoundResults  []ScoreResult
	BlunderCount      map[Seat]int
}

// NewMatchState starts a fresh match at 0-0.
func NewMatchState() *MatchState {
	return &MatchState{
		Scores:       map[Team]int{Us: 0, Them: 0},
		BlunderCount: map[Seat]int{},
	}
}

// ApplyRoundResult folds a finished round's score into the match and
// archives it in PastRoundResults.
func (m *MatchState) ApplyRoundResult(r ScoreResult) {
	m.Scores[Us] += r.Us.Result
	m.Scores[Them] += r.Them.Result
	m.PastRoundResults = append(m.PastRoundResults, r)
}

// IsGameOver reports whether either team has reached MatchTarget GP.
func (m *MatchState) IsGameOver() bool {
	return m.Scores[Us] >= MatchTarget || m.Scores[Them] >= MatchTarget
}

// IncrementBlunder records a false Sawa (or other referee-flagged) claim
// by seat.
func (m *MatchState) IncrementBlunder(seat Seat) {
	m.BlunderCount[seat]++
}

// shuffleRNG is the package-level random source used for dealing, mirroring
// the internal/bot/rand.go seed-or-default pattern so that
// self-play and tests can request reproducible deals.
var shuffleRNG *rand.Rand

// SeedDealing sets a deterministic random source for reproducible deals.
func SeedDealing(seed int64) {
	shuffleRNG = rand.New(rand.NewSource(seed))
}

// ResetDealing reverts to the default (non-deterministic) global source.
func ResetDealing() {
	shuffleRNG = nil
}

func shuffled(deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	shuffle := rand.Shuffle
	if shuffleRNG != nil {
		shuffle = shuffleRNG.Shuffle
	}
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal shuffles a fresh deck and distributes 5 cards to each seat, then a
// face-up floor card, then the remaining 3 to each seat — the standard
// Baloot deal order. Returns the four hands and the floor card.
func Deal() (hands map[Seat]Hand, floor Card) {
	deck := shuffled(FullDeck())
	hands = map[Seat]Hand{}
	pos := 0
	for s := Bottom; s <= Left; s++ {
		hands[s] = append(Hand{}, deck[pos:pos+5]...)
		pos += 5
	}
	floor = deck[pos]
	pos++
	for s := Bottom; s <= Left; s++ {
		hands[s] = append(hands[s], deck[pos:pos+3]...)
		pos += 3
	}
	return hands, floor
}

// RoundState is the full mutable state of one round in progress. It is
// the object the Coordinator mutates directly; every other subsystem
// receives narrow views derived from it rather than a back-pointer to it.
type RoundState struct {
	DealerIndex Seat
	FloorCard   Card
	Hands       map[Seat]Hand
	Contract    *Contract
	Mode        Mode
	TrumpSuit   Suit

	Bidding *BiddingEngine
	Trick   *TrickManager
	Memory  *CardMemory
	Baloot  *BalootState
	Qayd    *QaydAdjudicator

	DeclaredProjects map[Seat]*Project
	DeclareWindowOpen bool

	Phase RoundPhase
}

// RoundPhase is the coordinator-level phase of a single round (distinct
// from BidPhase, which only covers the auction).
type RoundPhase int

const (
	RoundCreated RoundPhase = iota
	RoundBidding
	RoundPlaying
	RoundChallenge
	RoundFinished
)

// NewRoundState deals a fresh round for the given dealer against the
// current match scores (needed by the SUN doubling firewall).
func NewRoundState(dealer Seat, matchScores map[Team]int) *RoundState {
	hands, floor := Deal()
	return &RoundState{
		DealerIndex:       dealer,
		FloorCard:         floor,
		Hands:             hands,
		Bidding:           NewBiddingEngine(dealer, floor, matchScores),
		DeclaredProjects:  map[Seat]*Project{},
		DeclareWindowOpen: true,
		Phase:             RoundBidding,
	}
}
