package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// PlanTrump recommends a HOKUM trump-management plan from the declaring
// side's own trump count, the estimated count held across both opponents,
// how many tricks have been played, and how many voids have already shown.
// It is meaningless outside HOKUM and returns PlanNeutral for SUN rounds.
func PlanTrump(hand baloot.Hand, trump baloot.Suit, mode baloot.Mode, opponentTrumps int, tricksPlayed int, voidsSeen int) TrumpPlan {
	if mode != baloot.HOKUM {
		return PlanNeutral
	}

	ownTrumps := 0
	hasJack, hasNine := false, false
	for _, c := range hand {
		if c.Suit != trump {
			continue
		}
		ownTrumps++
		if c.Rank == baloot.Jack {
			hasJack = true
		}
		if c.Rank == baloot.Nine {
			hasNine = true
		}
	}

	strong := (hasJack && hasNine) || ((hasJack || hasNine) && ownTrumps >= 4) || ownTrumps >= 5
	if strong {
		return PlanDraw
	}

	singleHonour := (hasJack || hasNine) && ownTrumps == 3
	if singleHonour {
		if tricksPlayed <= 3 {
			return PlanDraw
		}
		return PlanPreserve
	}

	if ownTrumps <= 2 && voidsSeen >= 2 {
		return PlanCrossRuff
	}
	if opponentTrumps >= ownTrumps+2 {
		return PlanPreserve
	}
	return PlanNeutral
}
