package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// CoopTactic is a cooperative-play override.
type CoopTactic string

const (
	CoopDrawTrump     CoopTactic = "DRAW_TRUMP"
	CoopSetupRun      CoopTactic = "SETUP_RUN"
	CoopFeedStrong    CoopTactic = "FEED_STRONG"
	CoopEntryTransfer CoopTactic = "ENTRY_TRANSFER"
	CoopVoidEntry     CoopTactic = "VOID_ENTRY"
	CoopTrumpSupport  CoopTactic = "TRUMP_SUPPORT"
	CoopSmartDiscard  CoopTactic = "SMART_DISCARD"
	CoopSignalShape   CoopTactic = "SIGNAL_SHAPE"
	CoopSacrifice     CoopTactic = "SACRIFICE"
)

// CooperativePlay produces a lead or follow override informed by our read
// of partner's hand, active only once partner.Confidence clears 0.25. It
// returns ok=false when no override applies, leaving the caller to fall
// through to its own cascade result.
func CooperativePlay(view TableView, partner PartnerRead, leading bool) (ModuleResult, CoopTactic, bool) {
	if partner.Confidence < 0.25 {
		return ModuleResult{}, "", false
	}

	if leading {
		if partner.HasHighTrumps && view.Mode == baloot.HOKUM {
			if idx, ok := highestTrump(view.Hand, view.Trump); ok {
				return ModuleResult{idx, TacticTrumpDraw, partner.Confidence, "supporting partner's trump strength"}, CoopDrawTrump, true
			}
		}
		for suit := range partner.LikelyStrongSuits {
			if idx, ok := lowestOfSuit(view.Hand, suit); ok {
				return ModuleResult{idx, TacticPartnerFeed, partner.Confidence, "leading into partner's strong suit"}, CoopFeedStrong, true
			}
		}
		for suit := range partner.LikelyVoidSuits {
			if idx, ok := lowestOfSuit(view.Hand, suit); ok {
				return ModuleResult{idx, TacticPartnerFeed, partner.Confidence * 0.8, "giving partner a ruffing entry"}, CoopVoidEntry, true
			}
		}
		return ModuleResult{}, "", false
	}

	// Following: if partner is void somewhere and we hold a safe low card
	// there, a discard there transfers an entry rather than wasting value.
	for suit := range partner.LikelyVoidSuits {
		if idx, ok := lowestOfSuit(view.Hand, suit); ok {
			legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
			if containsIdx(legal, idx) {
				return ModuleResult{idx, TacticShedSafe, partner.Confidence * 0.7, "transferring an entry toward partner's void"}, CoopEntryTransfer, true
			}
		}
	}
	return ModuleResult{}, "", false
}

func lowestOfSuit(hand baloot.Hand, suit baloot.Suit) (int, bool) {
	best, found := -1, false
	for i, c := range hand {
		if c.Suit != suit {
			continue
		}
		if !found || c.Rank < hand[best].Rank {
			best, found = i, true
		}
	}
	return best, found
}

func containsIdx(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
