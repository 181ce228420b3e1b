package reconcile

import (
	"math"

	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/flipduel/arbiter/internal/rating"
)

// Epsilon absorbs floating-point noise when comparing an observed rating
// delta against the server-expected one.
const Epsilon = 1e-6

// Snapshot is a consistent read of both accounts involved in a result.
type Snapshot struct {
	Player   entities.Account
	Opponent entities.Account
}

// Plan is the server-side resolution of one match result: the expected
// deltas and after-values, and the verdict reached by comparing them to
// what the client already wrote.
type Plan struct {
	DeltaPlayer      int
	DeltaOpponent    int
	EloPlayerAfter   float64
	EloOpponentAfter float64
	Verdict          entities.Validation
}

func (p Plan) Corrected() bool {
	return !p.Verdict.Valid
}

// BuildPlan recomputes the rating movement from the "before" snapshot
// and judges the "now" snapshot against it. Any observed delta beyond
// tolerance on either side means a client touched a rating it should
// not have; the plan then carries the corrective after-values.
func BuildPlan(before, now Snapshot, playerScore, opponentScore float64) Plan {
	kPlayer := rating.KFactor(before.Player.PlacementMatchesPlayed)
	kOpponent := rating.KFactor(before.Opponent.PlacementMatchesPlayed)

	deltaPlayer := rating.Delta(before.Player.Rating, before.Opponent.Rating, playerScore, kPlayer)
	deltaOpponent := rating.Delta(before.Opponent.Rating, before.Player.Rating, opponentScore, kOpponent)

	plan := Plan{
		DeltaPlayer:      deltaPlayer,
		DeltaOpponent:    deltaOpponent,
		EloPlayerAfter:   before.Player.Rating + float64(deltaPlayer),
		EloOpponentAfter: before.Opponent.Rating + float64(deltaOpponent),
	}

	observedPlayer := now.Player.Rating - before.Player.Rating
	observedOpponent := now.Opponent.Rating - before.Opponent.Rating
	playerOk := math.Abs(observedPlayer-float64(deltaPlayer)) < Epsilon
	opponentOk := math.Abs(observedOpponent-float64(deltaOpponent)) < Epsilon

	if playerOk && opponentOk {
		plan.Verdict = entities.Valid()
	} else {
		plan.Verdict = entities.Invalid("rating client incorrect – corrected by server")
	}
	return plan
}
