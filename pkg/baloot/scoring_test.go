package baloot

import "testing"

// trickWonBy builds a CompletedTrick worth points, won by winner.
func trickWonBy(winner Seat, points int) CompletedTrick {
	return CompletedTrick{Winner: winner, Points: points}
}

// TestScoreKhasaraDoubled covers a Khasara flip scenario: HOKUM, doubled,
// raw Abnat us=76 them=86, buyer is "us". Expect a Khasara flip giving the
// defender the full doubled pot and the buyer nothing.
func TestScoreKhasaraDoubled(t *testing.T) {
	history := []CompletedTrick{
		trickWonBy(Bottom, 38),
		trickWonBy(Right, 28),
		trickWonBy(Right, 58),
		trickWonBy(Bottom, 28), // last trick: +10 ardh goes to Us
	}
	contract := &Contract{Type: HOKUM, Team: Us, BidderSeat: Bottom, Level: LevelDouble}
	res := Score(ScoreInput{History: history, Contract: contract, Mode: HOKUM})

	if res.Reason != "khasara" {
		t.Fatalf("expected khasara, got %q (us=%+v them=%+v)", res.Reason, res.Us, res.Them)
	}
	if res.Us.Result != 0 {
		t.Errorf("expected buyer (us) to score 0, got %d", res.Us.Result)
	}
	if res.Them.Result != 32 {
		t.Errorf("expected defender (them) to score 32, got %d", res.Them.Result)
	}
	if res.Winner != Them {
		t.Errorf("expected Them to win the round, got %v", res.Winner)
	}
}

func TestConvertGPHokumHalfDown(t *testing.T) {
	cases := map[int]int{0: 0, 4: 0, 5: 0, 6: 1, 10: 1, 15: 1, 16: 2}
	for raw, want := range cases {
		if got := convertGP(raw, HOKUM); got != want {
			t.Errorf("convertGP(%d, HOKUM) = %d, want %d", raw, got, want)
		}
	}
}

func TestConvertGPSunBankersRounding(t *testing.T) {
	// raw*2/10 with round-half-to-even.
	if got := convertGP(25, SUN); got != 5 { // 50/10 = 5, exact
		t.Errorf("convertGP(25, SUN) = %d, want 5", got)
	}
	if got := convertGP(15, SUN); got != 3 { // 30/10 = 3 exact
		t.Errorf("convertGP(15, SUN) = %d, want 3", got)
	}
}

func TestScoreKaboot(t *testing.T) {
	history := make([]CompletedTrick, 0, 8)
	for i := 0; i < 8; i++ {
		history = append(history, trickWonBy(Bottom, 10))
	}
	contract := &Contract{Type: SUN, Team: Us, BidderSeat: Bottom, Level: LevelBase}
	res := Score(ScoreInput{History: history, Contract: contract, Mode: SUN})
	if !res.Us.IsKaboot {
		t.Fatal("expected Us to be flagged IsKaboot")
	}
	if res.Us.Result != KabootSUN {
		t.Errorf("expected kaboot pot %d, got %d", KabootSUN, res.Us.Result)
	}
	if res.Them.Result != 0 {
		t.Errorf("expected shut-out team to score 0, got %d", res.Them.Result)
	}
}

func TestScoreGahwaShutout(t *testing.T) {
	history := []CompletedTrick{trickWonBy(Bottom, 80), trickWonBy(Top, 82)}
	contract := &Contract{Type: HOKUM, Team: Us, BidderSeat: Bottom, Level: LevelGahwa, Variant: Open}
	res := Score(ScoreInput{History: history, Contract: contract, Mode: HOKUM})
	// Us (buyer) wins all points, so Them's GP converts to 0 -> shutout path.
	if res.Reason != "khasara" && res.Reason != "gahwa-shutout" {
		t.Fatalf("unexpected reason %q", res.Reason)
	}
}
