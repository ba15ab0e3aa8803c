package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// EndgameTrigger is the maximum per-seat hand size at which the solver
// takes over from the tactical cascade.
const EndgameTrigger = 4

// endgameState is the solver's fast, index-based rollout representation:
// a bitset of remaining cards per seat plus the in-progress trick, so a
// minimax search over the tail of a round never touches the heavier
// Hand/TrickManager types used by the rest of the engine.
type endgameState struct {
	hands  [4]uint32 // bit i set => seat holds FullDeck()[i]
	table  []baloot.Play
	turn   baloot.Seat
	leader baloot.Seat
	mode   baloot.Mode
	trump  baloot.Suit
	usPts  int
	themPts int
}

var deckIndex = func() map[baloot.Card]int {
	m := map[baloot.Card]int{}
	for i, c := range baloot.FullDeck() {
		m[c] = i
	}
	return m
}()

func newEndgameState(hands map[baloot.Seat]baloot.Hand, table []baloot.Play, turn, leader baloot.Seat, mode baloot.Mode, trump baloot.Suit) endgameState {
	var es endgameState
	for s, h := range hands {
		var bits uint32
		for _, c := range h {
			bits |= 1 << uint(deckIndex[c])
		}
		es.hands[s] = bits
	}
	es.table = append([]baloot.Play(nil), table...)
	es.turn, es.leader, es.mode, es.trump = turn, leader, mode, trump
	return es
}

func (es endgameState) cardsOf(seat baloot.Seat) []baloot.Card {
	deck := baloot.FullDeck()
	var out []baloot.Card
	bits := es.hands[seat]
	for i := 0; i < 32; i++ {
		if bits&(1<<uint(i)) != 0 {
			out = append(out, deck[i])
		}
	}
	return out
}

func (es endgameState) play(seat baloot.Seat, c baloot.Card) endgameState {
	next := es
	next.hands[seat] = es.hands[seat] &^ (1 << uint(deckIndex[c]))
	next.table = append(append([]baloot.Play(nil), es.table...), baloot.Play{Seat: seat, Card: c})
	if len(next.table) < 4 {
		next.turn = seat.Next()
		return next
	}
	winner := baloot.TrickWinner(next.table, es.mode, es.trump)
	points := 0
	for _, p := range next.table {
		points += baloot.CardPoints(p.Card, es.mode, es.trump)
	}
	if baloot.TeamOf(winner) == baloot.Us {
		next.usPts += points
	} else {
		next.themPts += points
	}
	next.table = nil
	next.turn = winner
	next.leader = winner
	return next
}

func (es endgameState) terminal() bool {
	return es.hands[baloot.Bottom] == 0 && es.hands[baloot.Right] == 0 &&
		es.hands[baloot.Top] == 0 && es.hands[baloot.Left] == 0 && len(es.table) == 0
}

func (es endgameState) legalPlays(seat baloot.Seat) []baloot.Card {
	hand := baloot.Hand(es.cardsOf(seat))
	idxs := baloot.LegalMoves(hand, es.table, es.mode, es.trump, seat)
	out := make([]baloot.Card, len(idxs))
	for i, idx := range idxs {
		out[i] = hand[idx]
	}
	return out
}

// SolveEndgame runs exhaustive alpha-beta minimax when every seat holds at
// most EndgameTrigger cards (the perfect-information case: the solver
// already knows every hand, typically from a prior Monte-Carlo sample or
// from spectating a finished round for analysis). value is the final
// Abnat total of turn's team minus the opponents'. It tolerates mid-trick
// states.
func SolveEndgame(hands map[baloot.Seat]baloot.Hand, table []baloot.Play, turn, leader baloot.Seat, mode baloot.Mode, trump baloot.Suit) (baloot.Card, int) {
	es := newEndgameState(hands, table, turn, leader, mode, trump)
	maximize := baloot.TeamOf(turn) == baloot.Us
	bestCard, bestVal := baloot.Card{}, -1<<30
	alpha, beta := -1<<30, 1<<30
	for _, c := range es.legalPlays(turn) {
		v := minimax(es.play(turn, c), alpha, beta)
		score := v
		if !maximize {
			score = -v
		}
		if score > bestVal {
			bestVal, bestCard = score, c
		}
		if maximize && v > alpha {
			alpha = v
		}
		if !maximize && v < beta {
			beta = v
		}
	}
	return bestCard, bestVal
}

// minimax always scores from Us's perspective (usPts - themPts); the
// active seat's own team determines whether this node maximizes or
// minimizes that value, independent of who sat at the root.
func minimax(es endgameState, alpha, beta int) int {
	if es.terminal() {
		return es.usPts - es.themPts
	}
	plays := es.legalPlays(es.turn)
	if baloot.TeamOf(es.turn) == baloot.Us {
		best := -1 << 30
		for _, c := range plays {
			v := minimax(es.play(es.turn, c), alpha, beta)
			if v > best {
				best = v
			}
			if v > alpha {
				alpha = v
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}
	best := 1 << 30
	for _, c := range plays {
		v := minimax(es.play(es.turn, c), alpha, beta)
		if v < best {
			best = v
		}
		if v < beta {
			beta = v
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// DeterminizedSolve handles the imperfect-information case: it samples K
// opponent hand deals consistent with known voids and the remaining-deck
// constraint, solves each sample exactly, and votes on the best card by
// majority with ties broken by average value.
func DeterminizedSolve(myHand baloot.Hand, myDeterminedPartner baloot.Hand, table []baloot.Play, turn, leader, me baloot.Seat, mode baloot.Mode, trump baloot.Suit, mem *baloot.CardMemory, samples int, rngIntn func(int) int) (baloot.Card, float64) {
	unseen := baloot.UnseenCards(mem.Played, append(append(baloot.Hand(nil), myHand...), myDeterminedPartner...))

	votes := map[baloot.Card]int{}
	totals := map[baloot.Card]float64{}

	opp1, opp2 := me.Next(), me.Partner().Next()
	for s := 0; s < samples; s++ {
		deal := dealConsistent(unseen, mem, opp1, opp2, rngIntn)
		hands := map[baloot.Seat]baloot.Hand{
			me:                 myHand,
			me.Partner():       myDeterminedPartner,
			opp1:               deal[opp1],
			opp2:               deal[opp2],
		}
		card, val := SolveEndgame(hands, table, turn, leader, mode, trump)
		votes[card]++
		totals[card] += float64(val)
	}

	var bestCard baloot.Card
	bestVotes := -1
	bestAvg := -1e18
	for c, v := range votes {
		avg := totals[c] / float64(v)
		if v > bestVotes || (v == bestVotes && avg > bestAvg) {
			bestCard, bestVotes, bestAvg = c, v, avg
		}
	}
	return bestCard, bestAvg
}

// dealConsistent randomly partitions unseen cards between the two
// opponent seats, honoring any known voids, using rngIntn for the
// Fisher-Yates-style draw (callers pass a seeded, package-scoped RNG so
// results stay reproducible across a search).
func dealConsistent(unseen []baloot.Card, mem *baloot.CardMemory, opp1, opp2 baloot.Seat, rngIntn func(int) int) map[baloot.Seat]baloot.Hand {
	shuffled := append([]baloot.Card(nil), unseen...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rngIntn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	hands := map[baloot.Seat]baloot.Hand{opp1: {}, opp2: {}}
	overflow := []baloot.Card{}
	for _, c := range shuffled {
		switch {
		case mem.IsVoid(opp1, c.Suit):
			hands[opp2] = append(hands[opp2], c)
		case mem.IsVoid(opp2, c.Suit):
			hands[opp1] = append(hands[opp1], c)
		default:
			overflow = append(overflow, c)
		}
	}
	for i, c := range overflow {
		if i%2 == 0 {
			hands[opp1] = append(hands[opp1], c)
		} else {
			hands[opp2] = append(hands[opp2], c)
		}
	}
	return hands
}
