package bot

import (
	"testing"

	"github.com/saudibaloot/engine/pkg/baloot"
)

func TestInferFromBidsTracksDeclarer(t *testing.T) {
	history := []baloot.BidRequest{
		{Seat: baloot.Right, Action: baloot.Pass},
		{Seat: baloot.Top, Action: baloot.BidHokum, Suit: baloot.Spades},
		{Seat: baloot.Left, Action: baloot.Pass},
	}
	reads := InferFromBids(baloot.Bottom, history, baloot.Card{Suit: baloot.Spades, Rank: baloot.Nine}, baloot.Round1)

	top := reads[baloot.Top]
	if top.DeclarerTrump != baloot.Spades || top.DeclarerPosition != baloot.Top {
		t.Fatalf("expected Top to be recorded as declarer in Spades, got %+v", top)
	}
	if !top.AvoidSuits[baloot.Spades] {
		t.Fatalf("expected the declarer itself to avoid (not target) its own trump suit, got %+v", top)
	}

	right := reads[baloot.Right]
	if !right.TargetSuits[baloot.Spades] {
		t.Fatalf("expected a non-declaring opponent to target the declarer's trump, got %+v", right)
	}
}

func TestReadPartnerDetectsFeeding(t *testing.T) {
	tricks := []baloot.CompletedTrick{
		{
			Plays: []baloot.Play{
				{Seat: baloot.Bottom, Card: baloot.Card{Suit: baloot.Hearts, Rank: baloot.Ace}},
				{Seat: baloot.Right, Card: baloot.Card{Suit: baloot.Hearts, Rank: baloot.Seven}},
				{Seat: baloot.Top, Card: baloot.Card{Suit: baloot.Clubs, Rank: baloot.King}},
				{Seat: baloot.Left, Card: baloot.Card{Suit: baloot.Hearts, Rank: baloot.Eight}},
			},
			Winner: baloot.Bottom,
			Leader: baloot.Bottom,
			Points: 18,
		},
	}
	read := ReadPartner(baloot.Top, nil, tricks, baloot.SUN, baloot.Spades)
	if !read.Feeding {
		t.Fatalf("expected partner's off-suit King discard into our winner to register as feeding: %+v", read)
	}
}
