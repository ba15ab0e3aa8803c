package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// GalossAssessment is the Galoss guard's read of mid-round contract-loss
// danger, named for the Khasara ("loss") forfeit it exists
// to avoid triggering.
type GalossAssessment struct {
	Risk           GalossRisk
	EmergencyMode  bool
	PointsNeeded   int
	PointsSoFar    int
	TricksLeft     int
}

// halfDeck is half of each mode's deck total (scoring.go's DeckTotalSUN and
// DeckTotalHOKUM), taken as the Abnat needed to avoid Khasara.
const (
	sunHalfDeck   = baloot.DeckTotalSUN / 2
	hokumHalfDeck = baloot.DeckTotalHOKUM / 2
)

// AssessGaloss estimates how close the declaring team is to falling short
// of the half-deck threshold that defines Khasara.
func AssessGaloss(contract *baloot.Contract, ourTeam baloot.Team, ourRawPoints int, tricksLeft int) GalossAssessment {
	if contract == nil || contract.Team != ourTeam {
		return GalossAssessment{Risk: RiskNone}
	}
	needed := sunHalfDeck
	if contract.Type == baloot.HOKUM {
		needed = hokumHalfDeck
	}
	shortfall := needed - ourRawPoints
	a := GalossAssessment{PointsNeeded: needed, PointsSoFar: ourRawPoints, TricksLeft: tricksLeft}

	maxRemaining := tricksLeft * 20 // a per-trick estimate; a trick holding the trump Jack and Nine (34) exceeds it
	switch {
	case shortfall <= 0:
		a.Risk = RiskNone
	case shortfall > maxRemaining:
		a.Risk = RiskCritical
		a.EmergencyMode = true
	case float64(shortfall) > float64(maxRemaining)*0.7:
		a.Risk = RiskHigh
		a.EmergencyMode = true
	case float64(shortfall) > float64(maxRemaining)*0.4:
		a.Risk = RiskMedium
	default:
		a.Risk = RiskLow
	}
	return a
}

// GalossOverride returns an emergency-mode play recommendation when the
// guard's assessment calls for one; ok is false outside emergency mode.
func GalossOverride(view TableView, assessment GalossAssessment, leading bool) (ModuleResult, bool) {
	if !assessment.EmergencyMode {
		return ModuleResult{}, false
	}

	legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
	if assessment.Risk == RiskCritical {
		if idx, ok := highestValueLegal(view, legal); ok {
			return ModuleResult{idx, TacticGalossDesperation, 0.9, "desperate bid to close the Khasara gap"}, true
		}
	}

	if leading {
		if idx, ok := highestValueLegal(view, legal); ok {
			return ModuleResult{idx, TacticGalossPress, 0.7, "pressing for points before it's too late"}, true
		}
		return ModuleResult{}, false
	}

	if trickPointsSoFar(view) >= 10 {
		if idx, ok := cheapestBeater(view, legal); ok {
			return ModuleResult{idx, TacticGalossFight, 0.75, "fighting for a valuable trick under Galoss pressure"}, true
		}
	}
	return ModuleResult{}, false
}

// MomentumFromAssessment derives the Brain cascade's TrickMomentum input
// from a Galoss read, so a host driving the engine end-to-end (cmd/selfplay)
// doesn't need its own separate notion of momentum: Khasara danger already
// captures "how is this round going."
func MomentumFromAssessment(a GalossAssessment) TrickMomentum {
	switch a.Risk {
	case RiskCritical:
		return MomentumCollapsing
	case RiskHigh:
		return MomentumDamageControl
	case RiskMedium:
		return MomentumConservative
	default:
		if a.PointsNeeded > 0 && a.PointsSoFar >= a.PointsNeeded {
			return MomentumAggressive
		}
		return MomentumNeutral
	}
}

func highestValueLegal(view TableView, legal []int) (int, bool) {
	best, found := -1, false
	for _, i := range legal {
		pts := baloot.CardPoints(view.Hand[i], view.Mode, view.Trump)
		if !found || pts > baloot.CardPoints(view.Hand[best], view.Mode, view.Trump) {
			best, found = i, true
		}
	}
	return best, found
}
