package bot

import (
	"testing"

	"github.com/saudibaloot/engine/pkg/baloot"
)

func TestSolveEndgamePicksWinningCard(t *testing.T) {
	hands := map[baloot.Seat]baloot.Hand{
		baloot.Bottom: {{baloot.Hearts, baloot.Ace}},
		baloot.Right:  {{baloot.Hearts, baloot.King}},
		baloot.Top:    {{baloot.Hearts, baloot.Queen}},
		baloot.Left:   {{baloot.Hearts, baloot.Jack}},
	}
	card, _ := SolveEndgame(hands, nil, baloot.Bottom, baloot.Bottom, baloot.SUN, baloot.Spades)
	if card != (baloot.Card{Suit: baloot.Hearts, Rank: baloot.Ace}) {
		t.Fatalf("expected to lead our only card (Ace of Hearts), got %v", card)
	}
}

func TestSolveEndgameSingleTrickValue(t *testing.T) {
	hands := map[baloot.Seat]baloot.Hand{
		baloot.Bottom: {{baloot.Hearts, baloot.Ace}},
		baloot.Right:  {{baloot.Hearts, baloot.King}},
		baloot.Top:    {{baloot.Hearts, baloot.Queen}},
		baloot.Left:   {{baloot.Hearts, baloot.Jack}},
	}
	_, val := SolveEndgame(hands, nil, baloot.Bottom, baloot.Bottom, baloot.SUN, baloot.Spades)
	// Bottom (Us) wins the only trick: Ace(11)+King(4)+Queen(3)+Jack(2)=20 for Us, 0 for Them.
	if val != 20 {
		t.Fatalf("expected value 20, got %d", val)
	}
}
