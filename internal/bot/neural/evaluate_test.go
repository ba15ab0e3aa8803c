package neural

import "testing"

func TestNewEvaluatorErrorsOnMissingModel(t *testing.T) {
	eval, err := NewEvaluator("testdata/does-not-exist.onnx")
	if err == nil {
		t.Fatalf("expected an error loading a nonexistent model path")
	}
	if eval != nil {
		t.Fatalf("expected a nil evaluator on load failure")
	}
}

func TestEvaluateOnNilEvaluatorIsNeverFatal(t *testing.T) {
	var eval *Evaluator
	score, err := eval.Evaluate(Features{})
	if err == nil {
		t.Fatalf("expected an error from a nil evaluator")
	}
	if score != 0 {
		t.Fatalf("expected a neutral 0 score on failure, got %v", score)
	}
}

func TestBlendWeightsTowardCascadeConfidence(t *testing.T) {
	got := Blend(1.0, 0.0)
	want := 1 - ValueWeight
	if got != want {
		t.Fatalf("expected Blend(1, 0) = %v, got %v", want, got)
	}
	if Blend(0.5, 0.5) != 0.5 {
		t.Fatalf("expected Blend to return the midpoint when both inputs agree")
	}
}
