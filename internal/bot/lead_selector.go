package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// SelectLead chooses which card to lead with, running the priority cascade
// and returning the first tactic whose condition is met.
func SelectLead(view TableView, opp TableRead, partner PartnerRead, plan TrumpPlan, losing bool) ModuleResult {
	hand := view.Hand

	if view.TricksRemaining <= 2 && losing {
		if idx, ok := highestCard(hand); ok {
			return ModuleResult{idx, TacticDesperation, 0.8, "behind with few tricks left, leading our best card"}
		}
	}

	if idx, suit, ok := shortestMasterSuit(hand, view); ok {
		return ModuleResult{idx, TacticMasterCash, 0.75, "cashing a known master in our shortest suit: " + suit.String()}
	}

	if view.Mode == baloot.HOKUM && plan == PlanDraw {
		if idx, ok := highestTrump(hand, view.Trump); ok {
			return ModuleResult{idx, TacticTrumpDraw, 0.7, "drawing trumps per the trump manager's plan"}
		}
	}

	if view.Contract != nil && baloot.TeamOf(view.Seat) != view.Contract.Team {
		if idx, ok := defensiveLead(hand, opp); ok {
			return ModuleResult{idx, TacticDefensePriority, 0.65, "leading per the opponent model's defense priority"}
		}
	}

	if idx, ok := leadIntoPartnerStrength(hand, partner, view.Trump); ok {
		return ModuleResult{idx, TacticPartnerFeed, 0.6, "leading low into partner's likely strong suit"}
	}

	if idx, ok := longRunLead(hand, view); ok {
		return ModuleResult{idx, TacticLongRun, 0.55, "leading high of a long safe suit"}
	}

	idx := safeLead(hand, view, opp)
	return ModuleResult{idx, TacticSafeLead, 0.4, "defaulting to the Bayesian-safest lead"}
}

func highestCard(hand baloot.Hand) (int, bool) {
	if len(hand) == 0 {
		return 0, false
	}
	best := 0
	for i := 1; i < len(hand); i++ {
		if hand[i].Rank > hand[best].Rank {
			best = i
		}
	}
	return best, true
}

func highestTrump(hand baloot.Hand, trump baloot.Suit) (int, bool) {
	best, found := -1, false
	for i, c := range hand {
		if c.Suit != trump {
			continue
		}
		if !found || baloot.OrderIndex(c.Rank, baloot.HOKUM, true) > baloot.OrderIndex(hand[best].Rank, baloot.HOKUM, true) {
			best, found = i, true
		}
	}
	return best, found
}

// shortestMasterSuit returns a card from the shortest non-void suit in
// hand for which every higher-ranked card of that suit is already known
// played, i.e. our card is the suit's master.
func shortestMasterSuit(hand baloot.Hand, view TableView) (int, baloot.Suit, bool) {
	bySuit := map[baloot.Suit][]int{}
	for i, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], i)
	}
	bestSuit, bestLen := baloot.Suit(-1), 1<<30
	for suit, idxs := range bySuit {
		if view.Mode == baloot.HOKUM && suit == view.Trump {
			continue
		}
		if len(idxs) < bestLen {
			top := idxs[0]
			for _, i := range idxs {
				if hand[i].Rank > hand[top].Rank {
					top = i
				}
			}
			if isMaster(hand[top], view) {
				bestSuit, bestLen = suit, len(idxs)
			}
		}
	}
	if bestSuit == -1 {
		return 0, 0, false
	}
	idxs := bySuit[bestSuit]
	top := idxs[0]
	for _, i := range idxs {
		if hand[i].Rank > hand[top].Rank {
			top = i
		}
	}
	return top, bestSuit, true
}

func isMaster(c baloot.Card, view TableView) bool {
	if view.Memory == nil {
		return c.Rank == baloot.Ace
	}
	for r := c.Rank + 1; r <= baloot.Ace; r++ {
		higher := baloot.Card{Suit: c.Suit, Rank: r}
		if !view.Memory.Played[higher] {
			return false
		}
	}
	return true
}

func defensiveLead(hand baloot.Hand, opp TableRead) (int, bool) {
	for suit := range opp.AvoidLeadSuits {
		for i, c := range hand {
			if c.Suit == suit {
				return i, true
			}
		}
	}
	best, found := -1, false
	for i, c := range hand {
		if opp.SafeLeadSuits[c.Suit] {
			if !found || c.Rank < hand[best].Rank {
				best, found = i, true
			}
		}
	}
	return best, found
}

func leadIntoPartnerStrength(hand baloot.Hand, partner PartnerRead, trump baloot.Suit) (int, bool) {
	if partner.Confidence < 0.25 {
		return -1, false
	}
	best, found := -1, false
	for i, c := range hand {
		if c.Suit == trump || !partner.LikelyStrongSuits[c.Suit] {
			continue
		}
		if !found || c.Rank < hand[best].Rank {
			best, found = i, true
		}
	}
	return best, found
}

func longRunLead(hand baloot.Hand, view TableView) (int, bool) {
	counts := map[baloot.Suit]int{}
	for _, c := range hand {
		counts[c.Suit]++
	}
	best, found := -1, false
	for i, c := range hand {
		if view.Mode == baloot.HOKUM && c.Suit == view.Trump {
			continue
		}
		if counts[c.Suit] < 4 {
			continue
		}
		if view.Memory != nil && view.Memory.IsVoid(view.Seat.Next(), c.Suit) {
			continue
		}
		if !found || c.Rank > hand[best].Rank {
			best, found = i, true
		}
	}
	return best, found
}

func safeLead(hand baloot.Hand, view TableView, opp TableRead) int {
	if len(hand) == 0 {
		return 0
	}
	counts := map[baloot.Suit]int{}
	for _, c := range hand {
		counts[c.Suit]++
	}
	bestIdx, bestScore := 0, -1.0
	for i, c := range hand {
		if view.Mode == baloot.HOKUM && c.Suit == view.Trump {
			continue
		}
		score := float64(counts[c.Suit])
		if opp.SafeLeadSuits[c.Suit] {
			score += 2
		}
		if opp.AvoidLeadSuits[c.Suit] {
			score -= 3
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx
}
