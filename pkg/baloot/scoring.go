package baloot

// Kaboot pots and deck totals.
const (
	KabootSUN        = 44
	KabootHOKUM      = 25
	DeckTotalSUN     = 130
	DeckTotalHOKUM   = 162
	TargetGPSUN      = 26
	TargetGPHOKUM    = 16
	GahwaShutoutGP   = 152
	GahwaMultiplier  = 4 // historical default, made explicit
	LastTrickBonus   = 10
)

// TeamScore is one team's line item in a ScoreResult.
type TeamScore struct {
	Result            int
	CardPoints        int
	ProjectPoints     int
	Ardh              int
	IsKaboot          bool
	MultiplierApplied int
}

// ScoreResult is the output of Score.
type ScoreResult struct {
	Us, Them ScoreSide
	Winner   Team
	Reason   string
}

// ScoreSide bundles a TeamScore under its team tag for convenient lookup.
type ScoreSide = TeamScore

// ScoreInput bundles everything the scoring engine needs for one round.
type ScoreInput struct {
	History     []CompletedTrick
	Declared    map[Seat]*Project
	Contract    *Contract
	Baloot      *BalootState
	Mode        Mode
	Trump       Suit
}

// Score computes the final GP for both teams for one completed round,
// following the scoring pipeline's steps in order.
func Score(in ScoreInput) ScoreResult {
	mode := in.Mode

	// Step 1: raw Abnat per team, plus Ardh to the winner of the final trick.
	raw := map[Team]int{Us: 0, Them: 0}
	for _, t := range in.History {
		raw[TeamOf(t.Winner)] += t.Points
	}
	ardh := map[Team]int{}
	if len(in.History) > 0 {
		last := in.History[len(in.History)-1]
		raw[TeamOf(last.Winner)] += LastTrickBonus
		ardh[TeamOf(last.Winner)] = LastTrickBonus
	}

	// Step 2: Kaboot.
	tricksWonBy := map[Team]int{}
	for _, t := range in.History {
		tricksWonBy[TeamOf(t.Winner)]++
	}
	isKaboot := map[Team]bool{}
	gp := map[Team]int{}
	kabootHappened := false
	for _, team := range []Team{Us, Them} {
		if tricksWonBy[team] == 8 {
			pot := KabootSUN
			if mode == HOKUM {
				pot = KabootHOKUM
			}
			gp[team] = pot
			gp[team.Opponent()] = 0
			isKaboot[team] = true
			kabootHappened = true
		}
	}

	if !kabootHappened {
		// Step 3: Abnat -> GP conversion, with pair rounding.
		gp[Us] = convertGP(raw[Us], mode)
		gp[Them] = convertGP(raw[Them], mode)
		target := TargetGPSUN
		if mode == HOKUM {
			target = TargetGPHOKUM
		}
		if delta := gp[Us] + gp[Them] - target; delta != 0 {
			larger := Us
			if raw[Them] > raw[Us] {
				larger = Them
			}
			gp[larger] -= delta
		}
	}

	// Step 4: project points.
	projWinner, projAbnat := ResolveProjects(in.Declared, mode, in.Trump)
	projGP := ProjectGP(projAbnat, mode)
	projectPoints := map[Team]int{}
	if projGP > 0 {
		projectPoints[projWinner] = projGP
		gp[projWinner] += projGP
	}

	buyer := in.Contract.Team
	defender := buyer.Opponent()
	reason := "normal"

	// Step 5: Khasara, overridden by Kaboot.
	if !kabootHappened && gp[buyer] <= gp[defender] {
		total := gp[Us] + gp[Them]
		gp[defender] = total
		gp[buyer] = 0
		reason = "khasara"
	}

	// Step 6: doubling multiplier (Gahwa handled separately in step 7).
	mult := map[Team]int{Us: 1, Them: 1}
	if in.Contract.Level != LevelGahwa {
		m := in.Contract.Level.Multiplier()
		gp[Us] *= m
		gp[Them] *= m
		mult[Us], mult[Them] = m, m
	} else {
		// Step 7: Gahwa.
		if gp[Us] == 0 || gp[Them] == 0 {
			shutout := Us
			if gp[Us] != 0 {
				shutout = Them
			}
			winner := shutout.Opponent()
			gp[winner] = GahwaShutoutGP
			gp[shutout] = 0
			reason = "gahwa-shutout"
		} else {
			gp[Us] *= GahwaMultiplier
			gp[Them] *= GahwaMultiplier
			reason = "gahwa"
		}
		mult[Us], mult[Them] = GahwaMultiplier, GahwaMultiplier
	}

	// Step 8: Baloot GP, immune to every multiplier, added last.
	balootGP := map[Team]int{}
	if in.Baloot != nil {
		balootGP[Us] = in.Baloot.TeamGP(Us)
		balootGP[Them] = in.Baloot.TeamGP(Them)
		gp[Us] += balootGP[Us]
		gp[Them] += balootGP[Them]
	}

	winner := buyer
	target := TargetGPSUN / 2
	if mode == HOKUM {
		target = TargetGPHOKUM / 2
	}
	if !kabootHappened && reason == "normal" && raw[Us]-ardh[Us] == raw[Them]-ardh[Them] && gp[Us] == target && gp[Them] == target {
		winner = buyer // explicit tiebreak: buyer wins an exact GP tie
	} else if gp[Them] > gp[Us] {
		winner = Them
	} else if gp[Us] > gp[Them] {
		winner = Us
	}

	return ScoreResult{
		Us: TeamScore{
			Result: gp[Us], CardPoints: raw[Us], ProjectPoints: projectPoints[Us],
			Ardh: ardh[Us], IsKaboot: isKaboot[Us], MultiplierApplied: mult[Us],
		},
		Them: TeamScore{
			Result: gp[Them], CardPoints: raw[Them], ProjectPoints: projectPoints[Them],
			Ardh: ardh[Them], IsKaboot: isKaboot[Them], MultiplierApplied: mult[Them],
		},
		Winner: winner,
		Reason: reason,
	}
}

// convertGP converts raw team Abnat to GP under the mode's rounding rule.
func convertGP(raw int, mode Mode) int {
	if mode == HOKUM {
		// Half-down rounding of raw/10: exactly .5 rounds down.
		return (raw + 4) / 10
	}
	// SUN: banker's rounding (round-half-to-even) of raw*2/10.
	x := raw * 2
	n, r := x/10, x%10
	switch {
	case r < 5:
		return n
	case r > 5:
		return n + 1
	default:
		if n%2 == 0 {
			return n
		}
		return n + 1
	}
}
