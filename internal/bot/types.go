// Package bot implements the tactical modules, opponent/partner inference,
// endgame solver, and hierarchical "Brain" strategy cascade that choose a
// bot seat's bids and plays.
package bot

import "github.com/saudibaloot/engine/pkg/baloot"

// Tactic names a specific cascade outcome, for logging and for the
// trick-review momentum feedback loop.
type Tactic string

const (
	TacticDesperation    Tactic = "DESPERATION"
	TacticMasterCash     Tactic = "MASTER_CASH"
	TacticTrumpDraw      Tactic = "TRUMP_DRAW"
	TacticDefensePriority Tactic = "DEFENSE_PRIORITY"
	TacticPartnerFeed    Tactic = "PARTNER_FEED"
	TacticLongRun        Tactic = "LONG_RUN"
	TacticSafeLead       Tactic = "SAFE_LEAD"

	TacticFeedPartner   Tactic = "FEED_PARTNER"
	TacticDodge         Tactic = "DODGE"
	TacticSecondHandLow Tactic = "SECOND_HAND_LOW"
	TacticWinBig        Tactic = "WIN_BIG"
	TacticWinCheap      Tactic = "WIN_CHEAP"
	TacticTrumpOver     Tactic = "TRUMP_OVER"
	TacticTrumpIn       Tactic = "TRUMP_IN"
	TacticShedSafe      Tactic = "SHED_SAFE"

	TacticGalossDesperation Tactic = "GALOSS_DESPERATION"
	TacticGalossFeed        Tactic = "GALOSS_FEED"
	TacticGalossFight       Tactic = "GALOSS_FIGHT"
	TacticGalossPress       Tactic = "GALOSS_PRESS"
	TacticGalossDeny        Tactic = "GALOSS_DENY"
)

// ModuleResult is the common return shape of every tactical module: a
// recommended hand index, the tactic that produced it, a confidence in
// [0,1], and a short human-readable reason.
type ModuleResult struct {
	CardIndex int
	Tactic    Tactic
	Confidence float64
	Reasoning  string
}

// TrumpPlan is the trump manager's recommendation.
type TrumpPlan string

const (
	PlanDraw      TrumpPlan = "DRAW"
	PlanPreserve  TrumpPlan = "PRESERVE"
	PlanCrossRuff TrumpPlan = "CROSS_RUFF"
	PlanNeutral   TrumpPlan = "NEUTRAL"
)

// PointDensity classifies the current table's point value.
type PointDensity string

const (
	DensityEmpty    PointDensity = "EMPTY"
	DensityLow      PointDensity = "LOW"
	DensityMedium   PointDensity = "MEDIUM"
	DensityHigh     PointDensity = "HIGH"
	DensityCritical PointDensity = "CRITICAL"
)

// PlayStyle is model_opponents' coarse read of an opponent's tendencies.
type PlayStyle string

const (
	StyleAggressive PlayStyle = "AGGRESSIVE"
	StylePassive    PlayStyle = "PASSIVE"
	StyleUnknown    PlayStyle = "UNKNOWN"
)

// OpponentProfile is model_opponents' per-opponent read.
type OpponentProfile struct {
	Seat              baloot.Seat
	VoidSuits         map[baloot.Suit]bool
	LikelyShortSuits  map[baloot.Suit]bool
	EstimatedTrumps   int
	HasHighTrumps     bool
	StrengthBySuit    map[baloot.Suit]float64
	PlayStyle         PlayStyle
	SingletonSuspects map[baloot.Suit]bool
	Signals           []string
}

// TableRead is model_opponents' overall output alongside the per-seat
// profiles.
type TableRead struct {
	Profiles        map[baloot.Seat]*OpponentProfile
	SafeLeadSuits   map[baloot.Suit]bool
	AvoidLeadSuits  map[baloot.Suit]bool
	CombinedDanger  float64
}

// PartnerRead is read_partner's output.
type PartnerRead struct {
	LikelyStrongSuits map[baloot.Suit]bool
	LikelyVoidSuits   map[baloot.Suit]bool
	LikelyShortSuits  map[baloot.Suit]bool
	Feeding           bool
	EstimatedTrumps   int
	HasHighTrumps     bool
	Confidence        float64
	Signals           []string
}

// GalossRisk is the Galoss guard's contract-loss danger level.
type GalossRisk string

const (
	RiskNone     GalossRisk = "NONE"
	RiskLow      GalossRisk = "LOW"
	RiskMedium   GalossRisk = "MEDIUM"
	RiskHigh     GalossRisk = "HIGH"
	RiskCritical GalossRisk = "CRITICAL"
)

// TrickMomentum feeds back into the Brain cascade's decision threshold.
type TrickMomentum string

const (
	MomentumNeutral       TrickMomentum = "NEUTRAL"
	MomentumAggressive    TrickMomentum = "AGGRESSIVE"
	MomentumConservative  TrickMomentum = "CONSERVATIVE"
	MomentumDamageControl TrickMomentum = "DAMAGE_CONTROL"
	MomentumCollapsing    TrickMomentum = "COLLAPSING"
)

// PersonalityProfile biases a seat's otherwise-optimal cascade pick.
type PersonalityProfile struct {
	SunBias         float64
	HokumBias       float64
	RiskTolerance   float64
	PointGreed      float64
	TrumpLeadBias   float64
	PartnerTrust    float64
	FalseSignalRate float64
	CanGamble       bool
}

// DefaultPersonality is a neutral profile with no biases.
func DefaultPersonality() PersonalityProfile {
	return PersonalityProfile{RiskTolerance: 0.5, PartnerTrust: 0.5}
}

// TableView is the read-only slice of round state every tactical module,
// inference routine, and the Brain cascade operate on. It never includes
// other seats' hands: only what a seat legitimately observes.
type TableView struct {
	Seat     baloot.Seat
	Hand     baloot.Hand
	Table    []baloot.Play
	History  []baloot.CompletedTrick
	Mode     baloot.Mode
	Trump    baloot.Suit
	Memory   *baloot.CardMemory
	Contract *baloot.Contract
	TricksRemaining int
}
