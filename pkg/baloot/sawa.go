package baloot

// Sawa is a grand-slam declaration: a player in PLAYING may claim mastery
// over every remaining trick. A true claim ends the round, scored on the
// tricks already played; the cards still in hand are not credited to either
// team. A false claim is a recorded blunder with no score effect.

// CheckSawaEligibility reports whether seat, holding hand, may validly
// declare Sawa given the cards already played this round and the mode's
// trump. It requires that for every suit still present in hand, the
// declarer holds an unbroken top-down run of every not-yet-played card of
// that suit; under HOKUM, if any opponent still holds an unplayed trump,
// the declarer must themselves hold a trump.
func CheckSawaEligibility(hand Hand, played map[Card]bool, mode Mode, trump Suit, opponentsHaveTrump bool) bool {
	if mode == HOKUM && opponentsHaveTrump {
		hasTrump := false
		for _, c := range hand {
			if c.Suit == trump {
				hasTrump = true
				break
			}
		}
		if !hasTrump {
			return false
		}
	}

	bySuit := map[Suit][]Card{}
	for _, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	for suit, cards := range bySuit {
		isTrump := mode == HOKUM && suit == trump
		// Ranks of this suit the declarer does NOT hold and that have not
		// yet been played must not exist above the lowest held rank,
		// i.e. the declarer must master every live card in the suit.
		held := map[Rank]bool{}
		minHeld := 1 << 30
		for _, c := range cards {
			held[c.Rank] = true
			if idx := OrderIndex(c.Rank, mode, isTrump); idx < minHeld {
				minHeld = idx
			}
		}
		for r := Seven; r <= Ace; r++ {
			idx := OrderIndex(r, mode, isTrump)
			if idx < minHeld {
				continue // below the declarer's lowest card in the suit: irrelevant
			}
			if held[r] {
				continue
			}
			c := Card{Suit: suit, Rank: r}
			if !played[c] {
				// A live card in this suit, ranked above the declarer's
				// floor, is still out there in someone else's hand.
				return false
			}
		}
	}
	return true
}

// SawaOutcome is the result of a declare_sawa action.
type SawaOutcome struct {
	Valid   bool
	Blunder bool
}

// DeclareSawa evaluates a Sawa claim: Valid when CheckSawaEligibility
// holds, otherwise Blunder. Coordinator.DeclareSawaAction ends the round on
// a valid claim, scoring only the tricks already played (the unplayed cards
// are not awarded to either team), and increments the seat's blunder
// counter on an invalid one, leaving the round in play.
func DeclareSawa(hand Hand, played map[Card]bool, mode Mode, trump Suit, opponentsHaveTrump bool) SawaOutcome {
	if CheckSawaEligibility(hand, played, mode, trump, opponentsHaveTrump) {
		return SawaOutcome{Valid: true}
	}
	return SawaOutcome{Valid: false, Blunder: true}
}
