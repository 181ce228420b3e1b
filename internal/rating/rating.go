package rating

import "math"

const (
	// DefaultRating is assumed for any account without a stored rating.
	DefaultRating = 1000

	// KPlacement applies while an account is still in its placement
	// period; KStandard afterwards.
	KPlacement = 200.0
	KStandard  = 60.0

	// PlacementMatchLimit is the number of placement matches. An account
	// with no stored counter is treated as past placement.
	PlacementMatchLimit = 5
)

// Delta computes the rating change for a player against an opponent,
// given the player's outcome score (1 win, 0.5 draw, 0 loss) and the
// K-factor. Standard logistic expected-score curve, rounded to the
// nearest integer.
func Delta(playerRating, opponentRating, score, kFactor float64) int {
	expected := 1 / (1 + math.Pow(10, (opponentRating-playerRating)/400))
	return int(math.Round(kFactor * (score - expected)))
}

// KFactor selects the K-factor from an account's placement progress.
func KFactor(placementMatchesPlayed int) float64 {
	if placementMatchesPlayed < PlacementMatchLimit {
		return KPlacement
	}
	return KStandard
}
