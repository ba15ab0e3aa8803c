package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNewRoundIDIsEightCharsFromCharset(t *testing.T) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	id := NewRoundID()
	if len(id) != 8 {
		t.Fatalf("expected an 8-character round ID, got %q", id)
	}
	for _, c := range id {
		if !strings.ContainsRune(charset, c) {
			t.Fatalf("round ID %q contains a character outside the charset", id)
		}
	}
}

func TestNewRoundIDIsNotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[NewRoundID()] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied round IDs across calls, got only %v", seen)
	}
}

func TestRoundIDRoundTripsThroughContext(t *testing.T) {
	if got := RoundIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty round ID on a bare context, got %q", got)
	}
	ctx := WithRoundID(context.Background(), "r-123")
	if got := RoundIDFromContext(ctx); got != "r-123" {
		t.Fatalf("expected r-123, got %q", got)
	}
}

func TestLogScoreIncludesRoundOutcome(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	LogScore(l, baloutSeatStringer("Bottom"), 162, 0, "normal")

	out := buf.String()
	for _, want := range []string{`"winner":"Bottom"`, `"usGP":162`, `"themGP":0`, `"reason":"normal"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %s, got %s", want, out)
		}
	}
}

func TestLogBidIncludesSeatAndAction(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	LogBid(l, baloutSeatStringer("Top"), baloutSeatStringer("HOKUM"))

	out := buf.String()
	for _, want := range []string{`"seat":"Top"`, `"action":"HOKUM"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %s, got %s", want, out)
		}
	}
}

func TestForRoundFallsBackToBareLoggerWithoutRoundID(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)
	l := ForRound(context.Background())
	l.Info().Msg("no round")
	if strings.Contains(buf.String(), "roundId") {
		t.Errorf("expected no roundId field without a round in context, got %s", buf.String())
	}
}

func TestForRoundAttachesRoundIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = log.Logger.Output(&buf)
	ctx := WithRoundID(context.Background(), "abc123")
	l := ForRound(ctx)
	l.Info().Msg("with round")
	if !strings.Contains(buf.String(), `"roundId":"abc123"`) {
		t.Errorf("expected roundId field in output, got %s", buf.String())
	}
}

func TestIsDevelopmentModeChecksKnownEnvVars(t *testing.T) {
	t.Setenv("DEV", "")
	t.Setenv("DEV_MODE", "")
	t.Setenv("DEVELOPMENT", "")
	if isDevelopmentMode() {
		t.Errorf("expected development mode off with no env vars set")
	}
	t.Setenv("DEV_MODE", "true")
	if !isDevelopmentMode() {
		t.Errorf("expected development mode on when DEV_MODE=true")
	}
}

type baloutSeatStringer string

func (s baloutSeatStringer) String() string { return string(s) }
