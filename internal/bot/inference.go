package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// BidRead is infer_from_bids' per-opponent output: a read of
// one opponent's likely shape, derived purely from the auction history
// observed so far, relative to the contract's declarer.
type BidRead struct {
	Seat             baloot.Seat
	LikelyTrumps     int
	LikelyAces       int
	WeakSuits        map[baloot.Suit]bool
	StrongSuits      map[baloot.Suit]bool
	BidAction        baloot.BidAction
	Confidence       float64
	DeclarerPosition baloot.Seat
	DeclarerTrump    baloot.Suit
	AvoidSuits       map[baloot.Suit]bool
	TargetSuits      map[baloot.Suit]bool
}

// InferFromBids builds a per-opponent bidding profile from the auction
// history, grounded in the same void/probability idiom as
// baloot.CardMemory. It is a pure function of observable
// history: no private state is read or retained.
func InferFromBids(me baloot.Seat, history []baloot.BidRequest, floor baloot.Card, round baloot.BidRound) map[baloot.Seat]*BidRead {
	reads := map[baloot.Seat]*BidRead{}
	for s := baloot.Bottom; s <= baloot.Left; s++ {
		if s == me {
			continue
		}
		reads[s] = &BidRead{
			Seat:        s,
			WeakSuits:   map[baloot.Suit]bool{},
			StrongSuits: map[baloot.Suit]bool{},
			AvoidSuits:  map[baloot.Suit]bool{},
			TargetSuits: map[baloot.Suit]bool{},
			BidAction:   baloot.Pass,
		}
	}

	var declarer baloot.Seat
	var declarerTrump baloot.Suit
	declared := false
	for _, req := range history {
		r, ok := reads[req.Seat]
		if !ok {
			continue
		}
		r.BidAction = req.Action
		switch req.Action {
		case baloot.BidHokum:
			r.StrongSuits[req.Suit] = true
			r.LikelyTrumps += 3
			r.LikelyAces++
			r.Confidence = clamp01(r.Confidence + 0.35)
			declarer, declarerTrump, declared = req.Seat, req.Suit, true
		case baloot.BidSun:
			r.LikelyAces++
			r.Confidence = clamp01(r.Confidence + 0.2)
			declarer, declared = req.Seat, true
		case baloot.Double, baloot.Triple, baloot.Four, baloot.Gahwa:
			r.Confidence = clamp01(r.Confidence + 0.15)
		case baloot.Pass:
			if round == baloot.Round2 {
				r.WeakSuits[floor.Suit] = true
			}
		}
	}

	for s, r := range reads {
		if r.LikelyTrumps > 8 {
			r.LikelyTrumps = 8
		}
		if !declared {
			continue
		}
		r.DeclarerPosition = declarer
		r.DeclarerTrump = declarerTrump
		if s == declarer {
			r.AvoidSuits[declarerTrump] = true
		} else {
			r.TargetSuits[declarerTrump] = true
		}
	}
	return reads
}

// ReadPartner infers partner's likely shape and intent from the bidding
// and trick history observed so far this round. "Feeding"
// is signalled when partner discarded an Ace/Ten/King off-suit while we
// held the winning card in that trick.
func ReadPartner(partner baloot.Seat, history []baloot.BidRequest, tricks []baloot.CompletedTrick, mode baloot.Mode, trump baloot.Suit) PartnerRead {
	read := PartnerRead{
		LikelyStrongSuits: map[baloot.Suit]bool{},
		LikelyVoidSuits:   map[baloot.Suit]bool{},
		LikelyShortSuits:  map[baloot.Suit]bool{},
	}

	shortCounts := map[baloot.Suit]int{}
	for _, t := range tricks {
		led := t.Plays[0].Card.Suit
		var partnerCard *baloot.Card
		var partnerVoided bool
		for _, p := range t.Plays {
			if p.Seat == partner {
				c := p.Card
				partnerCard = &c
				partnerVoided = p.Card.Suit != led
			}
		}
		if partnerCard == nil {
			continue
		}
		winnerIsUs := t.Winner == partner.Partner()
		if partnerVoided {
			read.LikelyVoidSuits[led] = true
			if winnerIsUs && isHighCard(*partnerCard) && partnerCard.Suit != trump {
				read.Feeding = true
				read.Signals = append(read.Signals, "partner fed a high off-suit card into our winner")
			}
		}
		if !partnerVoided && partnerCard.Rank <= baloot.Eight {
			shortCounts[partnerCard.Suit]++
		}
	}
	for suit, n := range shortCounts {
		if n >= 2 {
			read.LikelyShortSuits[suit] = true
		}
	}

	for _, req := range history {
		if req.Seat != partner {
			continue
		}
		switch req.Action {
		case baloot.BidHokum:
			read.LikelyStrongSuits[req.Suit] = true
			read.EstimatedTrumps += 3
			read.Confidence = clamp01(read.Confidence + 0.3)
		case baloot.BidSun:
			read.Confidence = clamp01(read.Confidence + 0.2)
		}
	}
	if mode == baloot.HOKUM {
		// Fewer observed voids implies a longer, possibly trump-heavy
		// original hand.
		read.EstimatedTrumps += 8 - len(read.LikelyVoidSuits)*2
		if read.EstimatedTrumps > 8 {
			read.EstimatedTrumps = 8
		}
		if read.EstimatedTrumps < 0 {
			read.EstimatedTrumps = 0
		}
		read.HasHighTrumps = read.EstimatedTrumps >= 3
	}
	return read
}

// ModelOpponents aggregates both opponents' observed voids, shedding
// patterns, and strength signals into a table-wide read used by the
// defense-priority and safe-lead tactics.
func ModelOpponents(me baloot.Seat, mem *baloot.CardMemory, tricks []baloot.CompletedTrick, mode baloot.Mode, trump baloot.Suit) TableRead {
	tr := TableRead{
		Profiles:       map[baloot.Seat]*OpponentProfile{},
		SafeLeadSuits:  map[baloot.Suit]bool{},
		AvoidLeadSuits: map[baloot.Suit]bool{},
	}
	opponents := []baloot.Seat{me.Next(), me.Partner().Next()}
	for _, s := range opponents {
		p := &OpponentProfile{
			Seat:              s,
			VoidSuits:         map[baloot.Suit]bool{},
			LikelyShortSuits:  map[baloot.Suit]bool{},
			StrengthBySuit:    map[baloot.Suit]float64{},
			SingletonSuspects: map[baloot.Suit]bool{},
			PlayStyle:         StyleUnknown,
		}
		for suit := baloot.Spades; suit <= baloot.Clubs; suit++ {
			if mem != nil && mem.IsVoid(s, suit) {
				p.VoidSuits[suit] = true
			}
		}
		tr.Profiles[s] = p
	}

	shedCounts := map[baloot.Seat]map[baloot.Suit]int{opponents[0]: {}, opponents[1]: {}}
	aggressivePlays := map[baloot.Seat]int{}
	totalPlays := map[baloot.Seat]int{}
	for _, t := range tricks {
		led := t.Plays[0].Card.Suit
		for _, p := range t.Plays {
			prof, ok := tr.Profiles[p.Seat]
			if !ok {
				continue
			}
			totalPlays[p.Seat]++
			if p.Card.Suit != led && t.Winner != p.Seat {
				shedCounts[p.Seat][p.Card.Suit]++
			}
			if t.Winner == p.Seat && baloot.CardPoints(p.Card, mode, trump) >= 10 {
				aggressivePlays[p.Seat]++
			}
			prof.StrengthBySuit[p.Card.Suit] += float64(baloot.CardPoints(p.Card, mode, trump)) / 20.0
		}
	}
	for s, counts := range shedCounts {
		prof := tr.Profiles[s]
		for suit, n := range counts {
			if prof.VoidSuits[suit] {
				continue
			}
			if n >= 2 {
				prof.LikelyShortSuits[suit] = true
			} else if n == 1 {
				prof.SingletonSuspects[suit] = true
			}
		}
		if totalPlays[s] > 0 {
			if float64(aggressivePlays[s])/float64(totalPlays[s]) > 0.4 {
				prof.PlayStyle = StyleAggressive
			} else {
				prof.PlayStyle = StylePassive
			}
		}
	}

	danger := 0.0
	for suit := baloot.Spades; suit <= baloot.Clubs; suit++ {
		bothVoid, eitherVoid := true, false
		for _, p := range tr.Profiles {
			if p.VoidSuits[suit] {
				eitherVoid = true
			} else {
				bothVoid = false
			}
		}
		switch {
		case bothVoid:
			tr.AvoidLeadSuits[suit] = true
			danger += 0.25
		case !eitherVoid:
			tr.SafeLeadSuits[suit] = true
		}
	}
	tr.CombinedDanger = clamp01(danger)
	return tr
}

func isHighCard(c baloot.Card) bool {
	return c.Rank == baloot.Ace || c.Rank == baloot.Ten || c.Rank == baloot.King
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
