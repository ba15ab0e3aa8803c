package baloot

import "testing"

func TestLegalMovesMustFollowSuit(t *testing.T) {
	hand := Hand{{Spades, Seven}, {Hearts, King}, {Hearts, Ace}}
	table := []Play{{Seat: Bottom, Card: Card{Hearts, Nine}}}
	legal := LegalMoves(hand, table, SUN, Spades, Right)
	if len(legal) != 2 {
		t.Fatalf("expected 2 legal moves (the two Hearts), got %d: %v", len(legal), legal)
	}
	for _, idx := range legal {
		if hand[idx].Suit != Hearts {
			t.Errorf("expected only Hearts cards legal, got %v", hand[idx])
		}
	}
}

func TestLegalMovesHokumMustTrumpIn(t *testing.T) {
	// Led suit is Hearts; Right is void in Hearts and holds both a low and
	// a high trump (Spades). Bottom currently wins with a high Heart (no
	// trump has been played), so the trump-in duty applies because Bottom
	// is on the opposing team from Right.
	hand := Hand{{Spades, Seven}, {Spades, Ace}, {Diamonds, King}}
	table := []Play{{Seat: Bottom, Card: Card{Hearts, Ace}}}
	legal := LegalMoves(hand, table, HOKUM, Spades, Right)
	for _, idx := range legal {
		if hand[idx].Suit != Spades {
			t.Errorf("expected only trump cards legal when void in led suit, got %v", hand[idx])
		}
	}
	if len(legal) != 2 {
		t.Fatalf("expected both Spades legal, got %d", len(legal))
	}
}

func TestLegalMovesHokumNoTrumpInDutyAgainstPartnersLead(t *testing.T) {
	// Same table as above, but the seat to move (Top) is Bottom's partner.
	// The trump-in duty never applies when the current winner is already
	// on your own team, so every non-led card is free to play.
	hand := Hand{{Spades, Seven}, {Spades, Ace}, {Diamonds, King}}
	table := []Play{{Seat: Bottom, Card: Card{Hearts, Ace}}}
	legal := LegalMoves(hand, table, HOKUM, Spades, Top)
	if len(legal) != 3 {
		t.Fatalf("expected all 3 non-led cards legal when partner holds the trick, got %d: %v", len(legal), legal)
	}
}

func TestLegalMovesHokumMustOvertrumpOpponentsTrump(t *testing.T) {
	// Right, on the opposing team from Bottom, has already trumped in. A
	// void Bottom holding a higher trump must over-trump rather than shed.
	hand := Hand{{Spades, Ace}, {Diamonds, King}}
	table := []Play{
		{Seat: Top, Card: Card{Hearts, Ace}},
		{Seat: Right, Card: Card{Spades, Seven}},
	}
	legal := LegalMoves(hand, table, HOKUM, Spades, Bottom)
	if len(legal) != 1 || hand[legal[0]] != (Card{Spades, Ace}) {
		t.Fatalf("expected only the higher trump legal, got %v", legal)
	}
}

func TestLegalMovesHokumNoOvertrumpDutyAgainstPartnersTrump(t *testing.T) {
	// Bottom's trump is currently winning; Bottom's partner Top is void in
	// the led suit and holds a higher trump, but owes no over-trump duty to
	// its own partner and may shed instead.
	table := []Play{
		{Seat: Right, Card: Card{Hearts, Ace}},
		{Seat: Bottom, Card: Card{Spades, Seven}},
	}
	hand := Hand{{Spades, Ace}, {Diamonds, King}}
	legal := LegalMoves(hand, table, HOKUM, Spades, Top)
	if len(legal) != 2 {
		t.Fatalf("expected both cards legal for Bottom's own partner, got %v", legal)
	}

	// Left is on Right's team, so Bottom (the current winner) is the
	// opposing team from Left's point of view: the duty does apply here.
	legal = LegalMoves(hand, table, HOKUM, Spades, Left)
	if len(legal) != 1 || hand[legal[0]] != (Card{Spades, Ace}) {
		t.Fatalf("expected only the higher trump legal against an opposing winner, got %v", legal)
	}
}

func TestTrickWinnerSunHighestLedSuit(t *testing.T) {
	plays := []Play{
		{Seat: Bottom, Card: Card{Hearts, King}},
		{Seat: Right, Card: Card{Hearts, Ace}},
		{Seat: Top, Card: Card{Spades, Ace}}, // off-suit, cannot win in SUN
		{Seat: Left, Card: Card{Hearts, Ten}},
	}
	winner := TrickWinner(plays, SUN, Spades)
	if winner != Right {
		t.Errorf("expected Right (Ace of Hearts) to win, got %v", winner)
	}
}

func TestTrickWinnerHokumTrumpBeatsLedSuit(t *testing.T) {
	plays := []Play{
		{Seat: Bottom, Card: Card{Hearts, Ace}},
		{Seat: Right, Card: Card{Spades, Seven}}, // trump, beats any non-trump
		{Seat: Top, Card: Card{Hearts, King}},
		{Seat: Left, Card: Card{Diamonds, Ace}},
	}
	winner := TrickWinner(plays, HOKUM, Spades)
	if winner != Right {
		t.Errorf("expected Right's trump seven to win, got %v", winner)
	}
}
