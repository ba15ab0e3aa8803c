package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// ApplyPersonality may substitute the cascade's pick for another legal
// card according to seat's trait vector. It never returns
// an illegal card: every substitution is checked against legal before
// being returned.
func ApplyPersonality(view TableView, pick ModuleResult, profile PersonalityProfile, leading bool, rng func() float64) ModuleResult {
	legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
	if !containsIdx(legal, pick.CardIndex) {
		return pick
	}

	if leading && view.Mode == baloot.HOKUM && profile.TrumpLeadBias > 0.5 {
		if idx, ok := highestTrump(view.Hand, view.Trump); ok && containsIdx(legal, idx) {
			pick = ModuleResult{idx, pick.Tactic, pick.Confidence, pick.Reasoning + " (trump-lead bias)"}
		}
	}

	points := trickPointsSoFar(view)
	if points >= 15 && profile.PointGreed > 0.6 {
		if idx, ok := cheapestBeater(view, legal); ok {
			pick = ModuleResult{idx, TacticWinBig, pick.Confidence, pick.Reasoning + " (point-greedy override)"}
		}
	} else if points == 0 && profile.PointGreed < 0.3 && leading {
		if idx, ok := lowestLegal(view.Hand, legal); ok {
			pick = ModuleResult{idx, pick.Tactic, pick.Confidence, pick.Reasoning + " (conservative low-value lead)"}
		}
	}

	if profile.CanGamble && profile.FalseSignalRate > 0 && rng() < profile.FalseSignalRate {
		if idx, ok := deceptiveAlternative(view.Hand, legal, pick.CardIndex); ok {
			pick = ModuleResult{idx, pick.Tactic, pick.Confidence * 0.9, pick.Reasoning + " (false signal)"}
		}
	}

	if !containsIdx(legal, pick.CardIndex) {
		if idx, ok := lowestLegal(view.Hand, legal); ok {
			return ModuleResult{idx, pick.Tactic, pick.Confidence, pick.Reasoning}
		}
	}
	return pick
}

func lowestLegal(hand baloot.Hand, legal []int) (int, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	best := legal[0]
	for _, i := range legal {
		if hand[i].Rank < hand[best].Rank {
			best = i
		}
	}
	return best, true
}

func deceptiveAlternative(hand baloot.Hand, legal []int, avoid int) (int, bool) {
	for _, i := range legal {
		if i != avoid {
			return i, true
		}
	}
	return 0, false
}
