package bot

import (
	"github.com/saudibaloot/engine/internal/bot/neural"
	"github.com/saudibaloot/engine/pkg/baloot"
)

// Strategy chooses a bot seat's bids and plays. Difficulty tiers wire in
// progressively more of the tactical cascade and the endgame solver; every
// tier still runs through the coordinator's own legality enforcement, so a
// Strategy is free to be wrong without corrupting game state.
type Strategy interface {
	ChooseBid(view TableView, legal []baloot.BidAction, floor baloot.Card, round baloot.BidRound) baloot.BidRequest
	ChoosePlay(view TableView, opp TableRead, partner PartnerRead, momentum TrickMomentum) int
}

// NeuralModelPath is where the "hard" and "pro" tiers look for their ONNX value model,
// mirroring the package-level GonnxModelPath var: a host can
// repoint it before StrategyForDifficulty is first called for "hard"/"pro".
var NeuralModelPath = "models/pro_data.onnx"

// StrategyForDifficulty dispatches to a Baloot-appropriate tier by
// difficulty name, mirroring the difficulty-keyed factory shape.
func StrategyForDifficulty(difficulty string, profile PersonalityProfile) Strategy {
	switch difficulty {
	case "medium":
		return &TacticalStrategy{profile: profile}
	case "hard", "pro":
		return newCascadeOrFallback(profile)
	default:
		return &HeuristicStrategy{profile: profile}
	}
}

// newCascadeOrFallback tries to attach the pro-data evaluator to a
// CascadeStrategy: a missing or unreadable model file never prevents
// the cascade itself from running, it just runs without the neural
// tie-break.
func newCascadeOrFallback(profile PersonalityProfile) *CascadeStrategy {
	eval, err := neural.NewEvaluator(NeuralModelPath)
	if err != nil {
		return &CascadeStrategy{profile: profile}
	}
	return &CascadeStrategy{profile: profile, eval: eval}
}

// HeuristicStrategy bids and plays off the plain rule-kernel heuristics
// only: lead/follow's final fallback tier, no inference, no solver.
type HeuristicStrategy struct {
	profile PersonalityProfile
}

func (s *HeuristicStrategy) ChooseBid(view TableView, legal []baloot.BidAction, floor baloot.Card, round baloot.BidRound) baloot.BidRequest {
	return defaultBid(view, legal, floor, round, 0.0)
}

func (s *HeuristicStrategy) ChoosePlay(view TableView, opp TableRead, partner PartnerRead, momentum TrickMomentum) int {
	var result ModuleResult
	if len(view.Table) == 0 {
		result = SelectLead(view, TableRead{}, PartnerRead{}, PlanNeutral, false)
	} else {
		result = SelectFollow(view, TableRead{}, len(view.Table)+1)
	}
	return ApplyPersonality(view, result, s.profile, len(view.Table) == 0, botFloat64).CardIndex
}

// TacticalStrategy runs the full tactical cascade and inference, but
// never invokes the endgame solver.
type TacticalStrategy struct {
	profile PersonalityProfile
}

func (s *TacticalStrategy) ChooseBid(view TableView, legal []baloot.BidAction, floor baloot.Card, round baloot.BidRound) baloot.BidRequest {
	return defaultBid(view, legal, floor, round, 0.35)
}

func (s *TacticalStrategy) ChoosePlay(view TableView, opp TableRead, partner PartnerRead, momentum TrickMomentum) int {
	return Decide(view, opp, partner, momentum, s.profile, botFloat64).CardIndex
}

// CascadeStrategy is the full pipeline: inference, the Brain cascade, the
// Galoss guard, and the Monte-Carlo/minimax endgame solver once every
// seat is down to EndgameTrigger cards or fewer.
type CascadeStrategy struct {
	profile PersonalityProfile
	eval    *neural.Evaluator
}

func (s *CascadeStrategy) ChooseBid(view TableView, legal []baloot.BidAction, floor baloot.Card, round baloot.BidRound) baloot.BidRequest {
	return defaultBid(view, legal, floor, round, 0.55)
}

// neuralTieBreakConfidence is the Decide confidence ceiling below which the
// cascade treats its own pick as genuinely uncertain and worth nudging with
// the pro-data evaluator — never a replacement for a confident cascade tier.
const neuralTieBreakConfidence = 0.3

func (s *CascadeStrategy) ChoosePlay(view TableView, opp TableRead, partner PartnerRead, momentum TrickMomentum) int {
	if view.Contract != nil {
		assessment := AssessGaloss(view.Contract, baloot.TeamOf(view.Seat), contractTeamRawPoints(view), view.TricksRemaining)
		if r, ok := GalossOverride(view, assessment, len(view.Table) == 0); ok {
			return clampLegal(view, Decision{r, "galoss"}).CardIndex
		}
	}

	if len(view.Hand) <= EndgameTrigger && view.Memory != nil {
		card, _ := DeterminizedSolve(view.Hand, baloot.Hand{}, view.Table, view.Seat, view.Seat, view.Seat, view.Mode, view.Trump, view.Memory, 10, botIntn)
		if idx := view.Hand.IndexOf(card); idx >= 0 {
			legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
			if containsIdx(legal, idx) {
				return idx
			}
		}
	}

	decision := Decide(view, opp, partner, momentum, s.profile, botFloat64)
	if s.eval != nil && decision.Confidence < neuralTieBreakConfidence {
		if idx, ok := neuralTieBreak(view, s.eval); ok {
			return idx
		}
	}
	return decision.CardIndex
}

// neuralTieBreak scores every legal card by the resulting position's
// pro-data value and returns the best one, used only when the Brain
// cascade itself couldn't settle on a confident pick.
func neuralTieBreak(view TableView, eval *neural.Evaluator) (int, bool) {
	legal := baloot.LegalMoves(view.Hand, view.Table, view.Mode, view.Trump, view.Seat)
	if len(legal) == 0 {
		return 0, false
	}
	var played map[baloot.Card]bool
	if view.Memory != nil {
		played = view.Memory.Played
	}

	best, bestScore, found := -1, 0.0, false
	for _, idx := range legal {
		f := neural.Features{
			Hand:            view.Hand.Without(idx),
			Played:          played,
			Mode:            view.Mode,
			Trump:           view.Trump,
			TricksRemaining: view.TricksRemaining,
		}
		score, err := eval.Evaluate(f)
		if err != nil {
			continue
		}
		blended := neural.Blend(0.5, score)
		if !found || blended > bestScore {
			best, bestScore, found = idx, blended, true
		}
	}
	return best, found
}

func contractTeamRawPoints(view TableView) int {
	total := 0
	for _, t := range view.History {
		if baloot.TeamOf(t.Winner) == baloot.TeamOf(view.Seat) {
			total += t.Points
		}
	}
	return total
}

// defaultBid is a conservative point-count heuristic shared by all three
// tiers, differing only in aggressiveness: higher aggressiveness lowers the
// strength threshold, so the tier bids SUN or HOKUM more readily.
func defaultBid(view TableView, legal []baloot.BidAction, floor baloot.Card, round baloot.BidRound, aggressiveness float64) baloot.BidRequest {
	strength := handStrength(view.Hand, floor.Suit)
	for _, a := range legal {
		if a == baloot.BidHokum && strength[floor.Suit] >= 0.5-aggressiveness*0.2 {
			return baloot.BidRequest{Seat: view.Seat, Action: baloot.BidHokum, Suit: floor.Suit}
		}
	}
	for _, a := range legal {
		if a == baloot.BidSun && bestSunSuit(strength) >= 0.55-aggressiveness*0.2 {
			return baloot.BidRequest{Seat: view.Seat, Action: baloot.BidSun}
		}
	}
	return baloot.BidRequest{Seat: view.Seat, Action: baloot.Pass}
}

func handStrength(hand baloot.Hand, trump baloot.Suit) map[baloot.Suit]float64 {
	strength := map[baloot.Suit]float64{}
	counts := map[baloot.Suit]int{}
	for _, c := range hand {
		counts[c.Suit]++
		strength[c.Suit] += float64(baloot.CardPoints(c, baloot.HOKUM, trump)) / 20.0
	}
	for suit, n := range counts {
		strength[suit] += float64(n) * 0.05
	}
	return strength
}

func bestSunSuit(strength map[baloot.Suit]float64) float64 {
	best := 0.0
	for _, v := range strength {
		if v > best {
			best = v
		}
	}
	return best
}
