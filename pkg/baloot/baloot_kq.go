package baloot

// BalootGamePoints is the fixed GP award for a declared Baloot (K+Q of
// trump), immune to every contract multiplier.
const BalootGamePoints = 2

// balootPhase tracks one seat's progress through the two-phase Baloot
// announcement: hold K+Q of trump, then play the second of the pair.
type balootPhase int

const (
	balootNone balootPhase = iota
	balootAnnounced
	balootRebaloot
)

// BalootState tracks, per round, which seats hold K+Q of trump and
// whether they have announced/declared it. HOKUM only; a SUN round's
// BalootState is simply never populated.
type BalootState struct {
	holders map[Seat]bool
	phase   map[Seat]balootPhase
	blocked map[Seat]bool
}

// NewBalootState scans the four dealt hands (HOKUM only) and records
// which seats hold both the King and Queen of the trump suit.
func NewBalootState(hands map[Seat]Hand, mode Mode, trump Suit) *BalootState {
	bs := &BalootState{holders: map[Seat]bool{}, phase: map[Seat]balootPhase{}, blocked: map[Seat]bool{}}
	if mode != HOKUM {
		return bs
	}
	for seat, hand := range hands {
		hasK, hasQ := false, false
		for _, c := range hand {
			if c.Suit == trump && c.Rank == King {
				hasK = true
			}
			if c.Suit == trump && c.Rank == Queen {
				hasQ = true
			}
		}
		if hasK && hasQ {
			bs.holders[seat] = true
		}
	}
	return bs
}

// BlockBaloot marks seat as ineligible to score Baloot this round because
// they declared a project that subsumes K/Q of trump: a Hundred project containing both K and Q of trump, or a
// four-of-a-kind project of K or Q.
func (bs *BalootState) BlockBaloot(seat Seat, p *Project, trump Suit) {
	if p == nil {
		return
	}
	if p.Type != Hundred {
		return
	}
	if p.IsQuad && (p.TopRank == King || p.TopRank == Queen) {
		bs.blocked[seat] = true
		return
	}
	if !p.IsQuad && p.Suit == trump {
		// A 5-card HOKUM-suit run spans 5 consecutive ranks in the
		// mode's trump order; it contains K and Q of trump whenever
		// both fall within that run's five positions.
		top := OrderIndex(p.TopRank, HOKUM, true)
		bottom := top - 4
		kIdx, qIdx := OrderIndex(King, HOKUM, true), OrderIndex(Queen, HOKUM, true)
		if kIdx >= bottom && kIdx <= top && qIdx >= bottom && qIdx <= top {
			bs.blocked[seat] = true
		}
	}
}

// OnCardPlayed observes a play and advances that seat's Baloot phase if
// the played card is the King or Queen of trump and the seat is a holder.
// Returns the GP awarded by this specific play (0 or BalootGamePoints).
func (bs *BalootState) OnCardPlayed(seat Seat, card Card, trump Suit) int {
	if !bs.holders[seat] || bs.blocked[seat] {
		return 0
	}
	if card.Suit != trump || (card.Rank != King && card.Rank != Queen) {
		return 0
	}
	switch bs.phase[seat] {
	case balootNone:
		bs.phase[seat] = balootAnnounced
		return 0
	case balootAnnounced:
		bs.phase[seat] = balootRebaloot
		return BalootGamePoints
	default:
		return 0
	}
}

// HasBaloot reports whether seat completed the Re-baloot announcement.
func (bs *BalootState) HasBaloot(seat Seat) bool {
	return bs.phase[seat] == balootRebaloot
}

// TeamGP sums the Baloot GP earned by a team this round.
func (bs *BalootState) TeamGP(team Team) int {
	total := 0
	for seat := range bs.phase {
		if TeamOf(seat) == team && bs.phase[seat] == balootRebaloot {
			total += BalootGamePoints
		}
	}
	return total
}
