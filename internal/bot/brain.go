package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// Decision is the Brain cascade's final output before the personality
// filter and legality clamp run.
type Decision struct {
	ModuleResult
	Source string
}

// thresholdFor returns the confidence bar a module must clear to win the
// cascade, shifted by trick-review momentum.
func thresholdFor(momentum TrickMomentum) float64 {
	switch momentum {
	case MomentumAggressive:
		return 0.4
	case MomentumDamageControl, MomentumCollapsing:
		return 0.6
	case MomentumConservative:
		return 0.55
	default:
		return 0.5
	}
}

// Decide runs the seven-tier priority cascade: Kaboot
// pursuit, point density, trump manager, opponent model, defense plan,
// partner signal, and finally the default lead/follow heuristic. The
// first module to clear the momentum-shifted threshold wins; if a second
// module independently agrees on the same card with non-trivial
// confidence, the winner's confidence gets a +0.1 bump.
func Decide(view TableView, opp TableRead, partner PartnerRead, momentum TrickMomentum, profile PersonalityProfile, rng func() float64) Decision {
	leading := len(view.Table) == 0
	threshold := thresholdFor(momentum)

	candidates := make([]Decision, 0, 7)

	if pursuingKaboot(view) {
		if idx, ok := kabootPursuitCard(view, leading); ok {
			candidates = append(candidates, Decision{ModuleResult{idx, TacticDesperation, 0.85, "pursuing a Kaboot sweep"}, "kaboot"})
		}
	}

	density, playHigh := PointDensityOf(view.Table, view.Mode, view.Trump, true)
	if playHigh && !leading {
		legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
		if idx, ok := cheapestBeater(view, legal); ok {
			candidates = append(candidates, Decision{ModuleResult{idx, TacticWinBig, 0.65, "fighting for a " + string(density) + "-density trick"}, "density"})
		}
	}

	if view.Mode == baloot.HOKUM && leading {
		plan := PlanTrump(view.Hand, view.Trump, view.Mode, 0, len(view.History), countVoids(opp))
		if plan == PlanDraw {
			if idx, ok := highestTrump(view.Hand, view.Trump); ok {
				candidates = append(candidates, Decision{ModuleResult{idx, TacticTrumpDraw, 0.6, "trump manager recommends drawing"}, "trump"})
			}
		}
	}

	if leading && opp.CombinedDanger > 0 {
		if idx, ok := defensiveLead(view.Hand, opp); ok {
			candidates = append(candidates, Decision{ModuleResult{idx, TacticSafeLead, 0.55, "opponent model flags danger suits"}, "opponent_model"})
		}
	}

	if view.Contract != nil && baloot.TeamOf(view.Seat) != view.Contract.Team && leading {
		if idx, ok := defensiveLead(view.Hand, opp); ok {
			candidates = append(candidates, Decision{ModuleResult{idx, TacticDefensePriority, 0.55, "defending the contract"}, "defense"})
		}
	}

	if coop, _, ok := CooperativePlay(view, partner, leading); ok {
		candidates = append(candidates, Decision{coop, "partner_signal"})
	}

	var fallback ModuleResult
	if leading {
		fallback = SelectLead(view, opp, partner, PlanNeutral, momentum == MomentumCollapsing)
	} else {
		fallback = SelectFollow(view, opp, len(view.Table)+1)
	}
	candidates = append(candidates, Decision{fallback, "default"})

	best := candidates[len(candidates)-1]
	for _, c := range candidates {
		if c.Confidence >= threshold {
			best = c
			break
		}
	}

	for _, c := range candidates {
		if c.Source != best.Source && c.CardIndex == best.CardIndex && c.Confidence >= 0.3 {
			best.Confidence = clamp01(best.Confidence + 0.1)
			break
		}
	}

	final := ApplyPersonality(view, best.ModuleResult, profile, leading, rng)
	return clampLegal(view, Decision{final, best.Source})
}

// clampLegal intersects the cascade's recommendation with the legal-move
// set; an illegal pick falls back to the best legal card by value: highest rank while pursuing Kaboot, otherwise the lowest-point
// safe shed.
func clampLegal(view TableView, d Decision) Decision {
	legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
	if containsIdx(legal, d.CardIndex) {
		return d
	}
	if pursuingKaboot(view) {
		if idx, ok := highestLegalRank(view.Hand, legal); ok {
			d.CardIndex = idx
			d.Reasoning += " (legality clamp: highest legal card)"
			return d
		}
	}
	idx, _ := lowestLegal(view.Hand, legal)
	d.CardIndex = idx
	d.Reasoning += " (legality clamp: lowest-point safe shed)"
	return d
}

func highestLegalRank(hand baloot.Hand, legal []int) (int, bool) {
	if len(legal) == 0 {
		return 0, false
	}
	best := legal[0]
	for _, i := range legal {
		if hand[i].Rank > hand[best].Rank {
			best = i
		}
	}
	return best, true
}

// pursuingKaboot reports whether our team has won every trick played so
// far this round, making a full 8-trick sweep (Kaboot) still in reach.
func pursuingKaboot(view TableView) bool {
	if len(view.History) == 0 {
		return false
	}
	us := baloot.TeamOf(view.Seat)
	for _, t := range view.History {
		if baloot.TeamOf(t.Winner) != us {
			return false
		}
	}
	return true
}

func kabootPursuitCard(view TableView, leading bool) (int, bool) {
	legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
	if leading {
		return highestLegalRank(view.Hand, legal)
	}
	return cheapestBeater(view, legal)
}

func countVoids(opp TableRead) int {
	n := 0
	for _, p := range opp.Profiles {
		n += len(p.VoidSuits)
	}
	return n
}
