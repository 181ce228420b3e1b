package entities

// Account holds a player's persistent rating state. Only the rating
// reconciler writes to it; the placement counter is maintained by the
// onboarding flow and read here to pick the K-factor.
type Account struct {
	AccountId              string  `dynamodbav:"accountId"`
	Rating                 float64 `dynamodbav:"rating"`
	PlacementMatchesPlayed int     `dynamodbav:"placementMatchesPlayed"`
}
