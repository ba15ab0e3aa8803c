// Package neural wires the pro-data evaluator: an ONNX
// value network, run through gonnx, that scores a mid-round position as a
// tie-break input alongside the tactical cascade. It is never an eighth
// cascade tier on its own — Evaluate's score only breaks ties between
// otherwise-equal candidate plays.
package neural

// NumFeatures is the width of the flat feature vector Encode produces: a
// 32-slot one-hot block for cards still in our hand, a 32-slot block for
// cards already played by anyone, a 4-slot trump-suit one-hot, a mode
// flag, and a tricks-remaining count.
const NumFeatures = 32 + 32 + 4 + 1 + 1

// ValueWeight blends the network's score against the cascade's own
// confidence-ranked candidates, matching the NeuralValueWeight
// blending idiom (its strategy_gonnx.go / evaluate.go), scaled down since
// here the network only breaks ties rather than driving play outright.
const ValueWeight = 0.3

// Feature block offsets within the flat vector Encode produces.
const (
	FeatHandOffset   = 0
	FeatPlayedOffset = 32
	FeatTrumpOffset  = 64
	FeatModeOffset   = 68
	FeatTricksOffset = 69
)
