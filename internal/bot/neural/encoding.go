package neural

import "github.com/saudibaloot/engine/pkg/baloot"

// deckIndex assigns each of the 32 canonical cards a stable feature slot.
var deckIndex = func() map[baloot.Card]int {
	m := map[baloot.Card]int{}
	for i, c := range baloot.FullDeck() {
		m[c] = i
	}
	return m
}()

// Features is the pro-data evaluator's input view of a mid-round position:
// our own remaining hand, every card played by anyone so far, the active
// trump suit and mode, and how many tricks remain.
type Features struct {
	Hand            baloot.Hand
	Played          map[baloot.Card]bool
	Mode            baloot.Mode
	Trump           baloot.Suit
	TricksRemaining int
}

// Encode flattens Features into the fixed-width vector the ONNX value
// model expects, matching the block layout in constants.go.
func Encode(f Features) []float32 {
	vec := make([]float32, NumFeatures)
	for _, c := range f.Hand {
		vec[FeatHandOffset+deckIndex[c]] = 1
	}
	for c, played := range f.Played {
		if played {
			vec[FeatPlayedOffset+deckIndex[c]] = 1
		}
	}
	if f.Mode == baloot.HOKUM {
		vec[FeatTrumpOffset+int(f.Trump)] = 1
		vec[FeatModeOffset] = 1
	}
	vec[FeatTricksOffset] = float32(f.TricksRemaining) / 8.0
	return vec
}
