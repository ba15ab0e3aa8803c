package neural

import (
	"fmt"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"gorgonia.org/tensor"
)

// Evaluator wraps a loaded ONNX value model (internal/config's
// NeuralModelPath resolves pro_data.onnx): loaded once, guarded by a
// mutex, run per query.
type Evaluator struct {
	model *gonnx.Model
	mu    sync.Mutex
}

// NewEvaluator loads the value model at path. Callers should treat a
// non-nil error as "no pro-data evaluator available" and fall back to the
// tactical cascade alone, never as a reason to fail the round.
func NewEvaluator(path string) (*Evaluator, error) {
	model, err := gonnx.NewModelFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("neural: load %s: %w", path, err)
	}
	return &Evaluator{model: model}, nil
}

// Evaluate scores a mid-round position in the declaring team's favor: a
// neutral score (0) is returned whenever inference fails, so a caller
// blending this into a tie-break never needs special-case error handling.
func (e *Evaluator) Evaluate(f Features) (float64, error) {
	if e == nil || e.model == nil {
		return 0, fmt.Errorf("neural: no model loaded")
	}

	vec := Encode(f)
	in := tensor.New(
		tensor.WithShape(1, NumFeatures),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(vec),
	)

	e.mu.Lock()
	outputs, err := e.model.Run(gonnx.Tensors{"features": in})
	e.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("neural: run: %w", err)
	}

	out, ok := outputs["value"]
	if !ok {
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		return 0, fmt.Errorf("neural: no output tensor")
	}

	switch d := out.Data().(type) {
	case []float32:
		if len(d) == 0 {
			return 0, fmt.Errorf("neural: empty output")
		}
		return float64(d[0]), nil
	case []float64:
		if len(d) == 0 {
			return 0, fmt.Errorf("neural: empty output")
		}
		return d[0], nil
	default:
		return 0, fmt.Errorf("neural: unexpected output type %T", d)
	}
}

// Blend combines the evaluator's score with the cascade's own confidence
// using ValueWeight, matching the RmEvaluateBlended idiom. It is
// meant strictly as a tie-break nudge between otherwise-equal candidates,
// never as a replacement for the cascade's own ranking.
func Blend(cascadeConfidence, neuralScore float64) float64 {
	return (1-ValueWeight)*cascadeConfidence + ValueWeight*neuralScore
}
