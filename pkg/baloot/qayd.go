package baloot

import (
	"time"

	"github.com/google/uuid"
)

// QaydState is a state of the forensic adjudication protocol.
type QaydState int

const (
	QaydIdle QaydState = iota
	QaydTriggered
	QaydReview
	QaydResult
	QaydResolved
)

func (q QaydState) String() string {
	switch q {
	case QaydIdle:
		return "IDLE"
	case QaydTriggered:
		return "TRIGGERED"
	case QaydReview:
		return "REVIEW"
	case QaydResult:
		return "RESULT"
	case QaydResolved:
		return "RESOLVED"
	default:
		return "?"
	}
}

// QaydVerdict is the outcome of a REVIEW pass.
type QaydVerdict int

const (
	VerdictNone QaydVerdict = iota
	VerdictCorrect
	VerdictFalse
	VerdictInconclusive
)

const DefaultQaydHoldWindow = 2 * time.Second

// QaydEvidence is what the adjudicator found during REVIEW.
type QaydEvidence struct {
	Revoke            bool
	MustOverTrumpMiss bool
	OffenderSeat      Seat
	TrickIndex        int
}

// QaydAdjudicator runs the accusation protocol. It holds a reentrancy
// lock (IsLocked) that gates play actions while an accusation is live; it
// never calls back into trick-play routines itself, preserving the
// invariant that no code path inside Qayd calls PlayCard.
type QaydAdjudicator struct {
	State         QaydState
	IsLocked      bool
	AccusationID  string
	Accuser       Seat
	Accused       Seat
	Verdict       QaydVerdict
	Evidence      QaydEvidence
	HoldWindow    time.Duration
	resultAt      time.Time
}

func NewQaydAdjudicator() *QaydAdjudicator {
	return &QaydAdjudicator{State: QaydIdle, HoldWindow: DefaultQaydHoldWindow}
}

// Raise begins an accusation. Bots never accuse their own partner; the
// caller (coordinator or AI cascade) is responsible for enforcing that
// team-loyalty rule before calling Raise.
func (q *QaydAdjudicator) Raise(accuser Seat, accused Seat) error {
	if q.State != QaydIdle {
		return newErr(KindPhase, CodeQaydNotActive, "Qayd already in progress")
	}
	if accuser == accused || accuser.Partner() == accused {
		return newErr(KindInput, CodeQaydSelfAccuse, "cannot accuse own partner")
	}
	q.State = QaydTriggered
	q.IsLocked = true
	q.AccusationID = uuid.NewString()
	q.Accuser = accuser
	q.Accused = accused
	return nil
}

// Review scans history for revoke and must-over-trump evidence against
// the accused seat, using the rule kernel's own legality check, and moves
// to REVIEW then RESULT, arming the hold window.
func (q *QaydAdjudicator) Review(history []CompletedTrick, table []Play, mode Mode, trump Suit, memory *CardMemory, now time.Time) {
	q.State = QaydReview
	ev := scanForViolation(history, table, q.Accused, mode, trump, memory)
	q.Evidence = ev
	switch {
	case ev.Revoke || ev.MustOverTrumpMiss:
		q.Verdict = VerdictCorrect
	default:
		q.Verdict = VerdictFalse
	}
	q.State = QaydResult
	q.resultAt = now.Add(q.HoldWindow)
}

// scanForViolation looks for a completed trick in which the accused
// seat failed to follow the led suit while card memory shows they held it
// at the time, or failed an over-trump duty: HOKUM only, and only when the
// seat currently holding the trick at the time of the accused's play was on
// the opposing team (the same gate LegalMoves applies when the duty binds).
func scanForViolation(history []CompletedTrick, table []Play, accused Seat, mode Mode, trump Suit, memory *CardMemory) QaydEvidence {
	for i, t := range history {
		if len(t.Plays) == 0 {
			continue
		}
		led := t.Plays[0].Card.Suit
		for j, p := range t.Plays {
			if p.Seat != accused {
				continue
			}
			if p.Card.Suit != led {
				// Played off-suit: a revoke if memory never marked the seat
				// void in led before this point (i.e. they were expected to
				// be able to follow).
				if memory != nil && !memory.IsVoid(accused, led) {
					return QaydEvidence{Revoke: true, OffenderSeat: accused, TrickIndex: i}
				}
			}
			if mode != HOKUM || j == 0 {
				continue
			}
			winnerIdx := currentWinner(t.Plays[:j], mode, trump)
			winningPlay := t.Plays[winnerIdx]
			if winningPlay.Card.Suit != trump || TeamOf(winningPlay.Seat) == TeamOf(accused) {
				continue
			}
			played := OrderIndex(p.Card.Rank, HOKUM, true)
			requiredBeat := OrderIndex(winningPlay.Card.Rank, HOKUM, true)
			if p.Card.Suit == trump && played > requiredBeat {
				continue // duty satisfied
			}
			if heldHigherTrumpLater(history, i, accused, trump, requiredBeat) {
				return QaydEvidence{MustOverTrumpMiss: true, OffenderSeat: accused, TrickIndex: i}
			}
		}
	}
	return QaydEvidence{}
}

// heldHigherTrumpLater reports whether accused is later seen (in a trick
// after fromTrick) playing a trump ranked above requiredBeat, which proves
// that card was still in hand — and so available but withheld — at
// fromTrick.
func heldHigherTrumpLater(history []CompletedTrick, fromTrick int, accused Seat, trump Suit, requiredBeat int) bool {
	for k := fromTrick + 1; k < len(history); k++ {
		for _, p := range history[k].Plays {
			if p.Seat == accused && p.Card.Suit == trump && OrderIndex(p.Card.Rank, HOKUM, true) > requiredBeat {
				return true
			}
		}
	}
	return false
}

// CheckTimeout polls the RESULT hold window. It is explicitly not gated
// by IsLocked: a Qayd timer must always be able to unlock
// the game. Returns true when the window has elapsed and the
// adjudicator has moved to RESOLVED.
func (q *QaydAdjudicator) CheckTimeout(now time.Time) bool {
	if q.State != QaydResult {
		return false
	}
	if now.Before(q.resultAt) {
		return false
	}
	q.State = QaydResolved
	q.IsLocked = false
	return true
}

// Penalty computes the round-ending score override implied by the
// verdict: on CORRECT the offender's team
// loses all earned card points and the defender receives the mode's full
// GP total; on FALSE the accuser's team forfeits symmetrically; on
// INCONCLUSIVE the round continues with no penalty (ok=false).
func (q *QaydAdjudicator) Penalty(mode Mode) (result ScoreResult, ok bool) {
	total := TargetGPSUN
	if mode == HOKUM {
		total = TargetGPHOKUM
	}
	switch q.Verdict {
	case VerdictCorrect:
		loser := TeamOf(q.Accused)
		winner := loser.Opponent()
		return penaltyResult(winner, loser, total, "qayd-revoke"), true
	case VerdictFalse:
		loser := TeamOf(q.Accuser)
		winner := loser.Opponent()
		return penaltyResult(winner, loser, total, "qayd-false-accusation"), true
	default:
		return ScoreResult{}, false
	}
}

func penaltyResult(winner, loser Team, total int, reason string) ScoreResult {
	res := ScoreResult{Winner: winner, Reason: reason}
	w, l := TeamScore{Result: total}, TeamScore{Result: 0}
	if winner == Us {
		res.Us, res.Them = w, l
	} else {
		res.Us, res.Them = l, w
	}
	return res
}
