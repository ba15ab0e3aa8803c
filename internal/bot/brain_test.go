package bot

import (
	"testing"

	"github.com/saudibaloot/engine/pkg/baloot"
)

func emptyTableRead() TableRead {
	return TableRead{
		Profiles:       map[baloot.Seat]*OpponentProfile{},
		SafeLeadSuits:  map[baloot.Suit]bool{},
		AvoidLeadSuits: map[baloot.Suit]bool{},
	}
}

func TestDecideNeverReturnsIllegalCard(t *testing.T) {
	hand := baloot.Hand{{baloot.Hearts, baloot.King}, {baloot.Hearts, baloot.Ace}, {baloot.Spades, baloot.Seven}}
	table := []baloot.Play{{Seat: baloot.Right, Card: baloot.Card{Suit: baloot.Hearts, Rank: baloot.Nine}}}
	view := TableView{
		Seat:            baloot.Bottom,
		Hand:            hand,
		Table:           table,
		Mode:            baloot.SUN,
		TricksRemaining: 4,
	}

	d := Decide(view, emptyTableRead(), PartnerRead{}, MomentumNeutral, DefaultPersonality(), func() float64 { return 0.5 })
	if hand[d.CardIndex].Suit != baloot.Hearts {
		t.Fatalf("expected a legal Hearts follow, got %v", hand[d.CardIndex])
	}
}

func TestPointDensityThresholds(t *testing.T) {
	table := []baloot.Play{
		{Seat: baloot.Bottom, Card: baloot.Card{Suit: baloot.Clubs, Rank: baloot.Ace}},
		{Seat: baloot.Right, Card: baloot.Card{Suit: baloot.Clubs, Rank: baloot.Ten}},
	}
	density, playHigh := PointDensityOf(table, baloot.SUN, baloot.Spades, false)
	if density != DensityHigh || !playHigh {
		t.Fatalf("expected HIGH/playHigh for 21 points pre-calibration, got %v/%v", density, playHigh)
	}
}

func TestPlanTrumpDrawsWithStrongHolding(t *testing.T) {
	hand := baloot.Hand{
		{baloot.Spades, baloot.Jack}, {baloot.Spades, baloot.Nine}, {baloot.Spades, baloot.Ace},
	}
	plan := PlanTrump(hand, baloot.Spades, baloot.HOKUM, 3, 1, 0)
	if plan != PlanDraw {
		t.Fatalf("expected PlanDraw with J+9 trump holding, got %v", plan)
	}
}

func TestPlanTrumpNeutralOutsideHokum(t *testing.T) {
	hand := baloot.Hand{{baloot.Spades, baloot.Jack}, {baloot.Spades, baloot.Nine}}
	if plan := PlanTrump(hand, baloot.Spades, baloot.SUN, 0, 0, 0); plan != PlanNeutral {
		t.Fatalf("expected PlanNeutral under SUN, got %v", plan)
	}
}
