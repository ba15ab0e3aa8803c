package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// SelectFollow chooses which card to play when following to a trick
// already in progress, running the priority cascade.
// seatPosition is 2, 3, or 4 counting the lead as position 1.
func SelectFollow(view TableView, opp TableRead, seatPosition int) ModuleResult {
	legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
	if len(legal) == 1 {
		return ModuleResult{legal[0], TacticSecondHandLow, 1.0, "only one legal card"}
	}

	partnerWinning, partnerIdx := isPartnerWinning(view)
	trickPoints := trickPointsSoFar(view)
	opponentTrumped := tableHasTrump(view)

	if partnerWinning {
		if idx, ok := feedOrDodge(view, legal); ok {
			tac := TacticFeedPartner
			if !isHighCard(view.Hand[idx]) {
				tac = TacticDodge
			}
			return ModuleResult{idx, tac, 0.7, "partner is winning the trick"}
		}
		_ = partnerIdx
	}

	if seatPosition == 2 {
		if idx, ok := secondHandLow(view, legal, trickPoints); ok {
			return ModuleResult{idx, TacticSecondHandLow, 0.55, "second hand plays low"}
		}
	}

	if trickPoints >= 15 {
		if idx, ok := cheapestBeater(view, legal); ok {
			return ModuleResult{idx, TacticWinBig, 0.75, "winning a valuable trick as cheaply as possible"}
		}
	}

	if seatPosition == 4 {
		threshold := 15
		if desperateToWin(view) {
			if idx, ok := cheapestBeater(view, legal); ok {
				return ModuleResult{idx, TacticDesperation, 0.8, "forced to win a valuable trick in last seat"}
			}
		}
		if trickPoints >= threshold {
			if idx, ok := cheapestBeater(view, legal); ok {
				return ModuleResult{idx, TacticWinCheap, 0.6, "cleaning up a valuable trick in last seat"}
			}
		}
	}

	if view.Mode == baloot.HOKUM && opponentTrumped {
		if idx, ok := overTrump(view, legal); ok {
			return ModuleResult{idx, TacticTrumpOver, 0.6, "over-trumping an opponent's ruff"}
		}
	}

	if view.Mode == baloot.HOKUM {
		voidOfLed := isVoidOfLed(view)
		floor := 15
		if seatPosition == 4 {
			floor = 10
		}
		if voidOfLed && trickPoints >= floor {
			if idx, ok := anyTrump(view, legal); ok {
				return ModuleResult{idx, TacticTrumpIn, 0.55, "trumping in on a valuable trick while void"}
			}
		}
	}

	return ModuleResult{shedSafe(view, legal, opp), TacticShedSafe, 0.35, "shedding our lowest safe card"}
}

func isPartnerWinning(view TableView) (bool, int) {
	if len(view.Table) == 0 {
		return false, -1
	}
	winnerIdx := 0
	for i := 1; i < len(view.Table); i++ {
		if beatsPublic(view.Table[i].Card, view.Table[winnerIdx].Card, view.Table[0].Card.Suit, view.Mode, view.Trump) {
			winnerIdx = i
		}
	}
	return view.Table[winnerIdx].Seat == view.Seat.Partner(), winnerIdx
}

// beatsPublic mirrors rules.go's unexported beats() for use outside the
// package; LegalMoves/TrickWinner already compute this internally, but the
// tactical cascade needs the partial-trick winner exposed to decide
// feed/dodge.
func beatsPublic(a, b baloot.Card, led baloot.Suit, mode baloot.Mode, trump baloot.Suit) bool {
	aTrump := mode == baloot.HOKUM && a.Suit == trump
	bTrump := mode == baloot.HOKUM && b.Suit == trump
	if aTrump != bTrump {
		return aTrump
	}
	if aTrump && bTrump {
		return baloot.OrderIndex(a.Rank, mode, true) > baloot.OrderIndex(b.Rank, mode, true)
	}
	aLed := a.Suit == led
	bLed := b.Suit == led
	if aLed != bLed {
		return aLed
	}
	if !aLed {
		return false
	}
	return baloot.OrderIndex(a.Rank, mode, false) > baloot.OrderIndex(b.Rank, mode, false)
}

func trickPointsSoFar(view TableView) int {
	total := 0
	for _, p := range view.Table {
		total += baloot.CardPoints(p.Card, view.Mode, view.Trump)
	}
	return total
}

func tableHasTrump(view TableView) bool {
	if view.Mode != baloot.HOKUM {
		return false
	}
	for _, p := range view.Table {
		if p.Card.Suit == view.Trump {
			return true
		}
	}
	return false
}

func isVoidOfLed(view TableView) bool {
	if len(view.Table) == 0 {
		return false
	}
	led := view.Table[0].Card.Suit
	for _, c := range view.Hand {
		if c.Suit == led {
			return false
		}
	}
	return true
}

func feedOrDodge(view TableView, legal []int) (int, bool) {
	led := view.Table[0].Card.Suit
	best, found := -1, false
	for _, i := range legal {
		c := view.Hand[i]
		if c.Suit != led && view.Mode == baloot.HOKUM && c.Suit == view.Trump {
			continue
		}
		if isHighCard(c) {
			if !found || view.Hand[best].Rank < c.Rank {
				best, found = i, true
			}
		}
	}
	if found {
		return best, true
	}
	// dodge: play our lowest legal card.
	low := legal[0]
	for _, i := range legal {
		if view.Hand[i].Rank < view.Hand[low].Rank {
			low = i
		}
	}
	return low, true
}

func secondHandLow(view TableView, legal []int, trickPoints int) (int, bool) {
	if trickPoints >= 15 {
		if _, ok := topMasterInLegal(view, legal); ok {
			return -1, false
		}
	}
	low := legal[0]
	for _, i := range legal {
		if view.Hand[i].Rank < view.Hand[low].Rank {
			low = i
		}
	}
	return low, true
}

func topMasterInLegal(view TableView, legal []int) (int, bool) {
	for _, i := range legal {
		if isMaster(view.Hand[i], view) {
			return i, true
		}
	}
	return -1, false
}

func cheapestBeater(view TableView, legal []int) (int, bool) {
	if len(view.Table) == 0 {
		return -1, false
	}
	winnerIdx := 0
	for i := 1; i < len(view.Table); i++ {
		if beatsPublic(view.Table[i].Card, view.Table[winnerIdx].Card, view.Table[0].Card.Suit, view.Mode, view.Trump) {
			winnerIdx = i
		}
	}
	winningCard := view.Table[winnerIdx].Card
	best, found := -1, false
	for _, i := range legal {
		if !beatsPublic(view.Hand[i], winningCard, view.Table[0].Card.Suit, view.Mode, view.Trump) {
			continue
		}
		if !found || view.Hand[i].Rank < view.Hand[best].Rank {
			best, found = i, true
		}
	}
	return best, found
}

func overTrump(view TableView, legal []int) (int, bool) {
	highestTrumpOnTable := -1
	for _, p := range view.Table {
		if p.Card.Suit == view.Trump {
			if highestTrumpOnTable == -1 || baloot.OrderIndex(p.Card.Rank, baloot.HOKUM, true) > baloot.OrderIndex(view.Table[highestTrumpOnTable].Card.Rank, baloot.HOKUM, true) {
				highestTrumpOnTable = indexOfPlay(view.Table, p)
			}
		}
	}
	if highestTrumpOnTable == -1 {
		return -1, false
	}
	topTrump := view.Table[highestTrumpOnTable].Card
	best, found := -1, false
	for _, i := range legal {
		c := view.Hand[i]
		if c.Suit != view.Trump {
			continue
		}
		if baloot.OrderIndex(c.Rank, baloot.HOKUM, true) <= baloot.OrderIndex(topTrump.Rank, baloot.HOKUM, true) {
			continue
		}
		if !found || c.Rank < view.Hand[best].Rank {
			best, found = i, true
		}
	}
	return best, found
}

func indexOfPlay(table []baloot.Play, target baloot.Play) int {
	for i, p := range table {
		if p == target {
			return i
		}
	}
	return -1
}

func anyTrump(view TableView, legal []int) (int, bool) {
	best, found := -1, false
	for _, i := range legal {
		if view.Hand[i].Suit != view.Trump {
			continue
		}
		if !found || view.Hand[i].Rank < view.Hand[best].Rank {
			best, found = i, true
		}
	}
	return best, found
}

func desperateToWin(view TableView) bool {
	return view.TricksRemaining <= 1 && trickPointsSoFar(view) >= 10
}

func shedSafe(view TableView, legal []int, opp TableRead) int {
	best, bestScore := legal[0], 1<<30
	for _, i := range legal {
		c := view.Hand[i]
		score := baloot.CardPoints(c, view.Mode, view.Trump) * 10
		if opp.AvoidLeadSuits[c.Suit] {
			score -= 5
		}
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
