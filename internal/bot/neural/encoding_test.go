package neural

import (
	"testing"

	"github.com/saudibaloot/engine/pkg/baloot"
)

func TestEncodeSetsHandAndPlayedSlots(t *testing.T) {
	hand := baloot.Hand{{Suit: baloot.Spades, Rank: baloot.Jack}}
	played := map[baloot.Card]bool{{Suit: baloot.Hearts, Rank: baloot.Ace}: true}

	vec := Encode(Features{Hand: hand, Played: played, Mode: baloot.SUN, TricksRemaining: 4})
	if len(vec) != NumFeatures {
		t.Fatalf("expected a %d-wide vector, got %d", NumFeatures, len(vec))
	}

	handSlot := FeatHandOffset + deckIndex[hand[0]]
	if vec[handSlot] != 1 {
		t.Fatalf("expected hand card slot %d to be set", handSlot)
	}
	for c := range played {
		playedSlot := FeatPlayedOffset + deckIndex[c]
		if vec[playedSlot] != 1 {
			t.Fatalf("expected played card slot %d to be set", playedSlot)
		}
	}
}

func TestEncodeOnlySetsTrumpUnderHokum(t *testing.T) {
	f := Features{Mode: baloot.SUN, Trump: baloot.Clubs, TricksRemaining: 8}
	vec := Encode(f)
	for i := FeatTrumpOffset; i < FeatModeOffset; i++ {
		if vec[i] != 0 {
			t.Fatalf("expected no trump slot set under SUN, got %v at %d", vec[i], i)
		}
	}
	if vec[FeatModeOffset] != 0 {
		t.Fatalf("expected mode flag unset under SUN")
	}

	f.Mode = baloot.HOKUM
	vec = Encode(f)
	if vec[FeatTrumpOffset+int(baloot.Clubs)] != 1 {
		t.Fatalf("expected Clubs trump slot set under HOKUM")
	}
	if vec[FeatModeOffset] != 1 {
		t.Fatalf("expected mode flag set under HOKUM")
	}
}

func TestEncodeTricksRemainingIsNormalized(t *testing.T) {
	vec := Encode(Features{TricksRemaining: 8})
	if vec[FeatTricksOffset] != 1 {
		t.Fatalf("expected a full 8 tricks remaining to normalize to 1, got %v", vec[FeatTricksOffset])
	}
}
