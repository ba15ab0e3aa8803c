package baloot

import "encoding/json"

// roundSnapshot is the wire/storage layout for a RoundState.
// Only exported fields with stable JSON names are included; derived fields
// (priority queues, sync.Once caches) are never serialized — Restore
// recomputes them from the durable fields below.
type roundSnapshot struct {
	DealerIndex Seat             `json:"dealer_index"`
	FloorCard   Card             `json:"floor_card"`
	Hands       map[Seat]Hand    `json:"hands"`
	Contract    *Contract        `json:"contract,omitempty"`
	Mode        Mode             `json:"mode"`
	TrumpSuit   Suit             `json:"trump_suit"`
	Table       []Play           `json:"table,omitempty"`
	History     []CompletedTrick `json:"round_history,omitempty"`
	Turn        Seat             `json:"current_turn"`
	Phase       RoundPhase       `json:"phase"`
	BidPhase    BidPhase         `json:"bid_phase"`
	BidTurn     Seat             `json:"bid_current_turn"`
}

type matchSnapshot struct {
	Scores       map[Team]int    `json:"match_scores"`
	BlunderCount map[Seat]int    `json:"blunder_count"`
	PastResults  []ScoreResult   `json:"past_round_results"`
}

type coordinatorSnapshot struct {
	RoomID string         `json:"room_id"`
	Phase  GamePhase      `json:"phase"`
	Seats  [4]bool        `json:"seats"`
	Match  matchSnapshot  `json:"match"`
	Round  *roundSnapshot `json:"round,omitempty"`
}

// Snapshot serializes a Coordinator's full state to JSON
// persistence contract: everything needed to resume a round after a
// process restart, and nothing that can be cheaply recomputed.
func Snapshot(c *Coordinator) ([]byte, error) {
	snap := coordinatorSnapshot{
		RoomID: c.RoomID,
		Phase:  c.Phase,
		Seats:  c.Seats,
		Match: matchSnapshot{
			Scores:       c.Match.Scores,
			BlunderCount: c.Match.BlunderCount,
			PastResults:  c.Match.PastRoundResults,
		},
	}
	if c.Round != nil {
		r := c.Round
		rs := &roundSnapshot{
			DealerIndex: r.DealerIndex,
			FloorCard:   r.FloorCard,
			Hands:       r.Hands,
			Contract:    r.Contract,
			Mode:        r.Mode,
			TrumpSuit:   r.TrumpSuit,
			Phase:       r.Phase,
		}
		if r.Bidding != nil {
			rs.BidPhase = r.Bidding.Phase
			rs.BidTurn = r.Bidding.CurrentTurn
		}
		if r.Trick != nil {
			rs.Table = r.Trick.Table
			rs.History = r.Trick.History
			rs.Turn = r.Trick.Turn
		}
		snap.Round = rs
	}
	return json.Marshal(snap)
}

// Restore rebuilds a Coordinator from a Snapshot payload. Bidding-engine and
// trick-manager internal state (priority queues, Gablak deadlines,
// card-memory probability mass) is not preserved across a restore: a
// restored round resumes play but a live Gablak window or Qayd hold window
// in progress at snapshot time must be re-armed by the caller using the
// round's current phase.
func Restore(data []byte) (*Coordinator, error) {
	var snap coordinatorSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	c := &Coordinator{
		RoomID: snap.RoomID,
		Phase:  snap.Phase,
		Seats:  snap.Seats,
		Match: &MatchState{
			Scores:           snap.Match.Scores,
			BlunderCount:     snap.Match.BlunderCount,
			PastRoundResults: snap.Match.PastResults,
		},
	}
	if snap.Round != nil {
		rs := snap.Round
		r := &RoundState{
			DealerIndex:      rs.DealerIndex,
			FloorCard:        rs.FloorCard,
			Hands:            rs.Hands,
			Contract:         rs.Contract,
			Mode:             rs.Mode,
			TrumpSuit:        rs.TrumpSuit,
			Phase:            rs.Phase,
			DeclaredProjects: map[Seat]*Project{},
		}
		r.Bidding = NewBiddingEngine(r.DealerIndex, r.FloorCard, c.Match.Scores)
		r.Bidding.Phase = rs.BidPhase
		r.Bidding.CurrentTurn = rs.BidTurn
		r.Bidding.Contract = r.Contract
		if r.Phase == RoundPlaying || r.Phase == RoundChallenge || r.Phase == RoundFinished {
			r.Trick = NewTrickManager(r.Mode, r.TrumpSuit, true, rs.Turn)
			r.Trick.Table = rs.Table
			r.Trick.History = rs.History
			r.Trick.Turn = rs.Turn
			sizes := map[Seat]int{}
			for s := Bottom; s <= Left; s++ {
				sizes[s] = len(r.Hands[s])
			}
			r.Memory = NewCardMemory(sizes)
			r.Baloot = NewBalootState(r.Hands, r.Mode, r.TrumpSuit)
			r.Qayd = NewQaydAdjudicator()
		}
		c.Round = r
	}
	return c, nil
}
