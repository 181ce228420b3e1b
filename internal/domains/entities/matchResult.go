package entities

// MatchResult is the append-only record written once per completed match.
// The four required fields are pointer-typed so that an absent attribute
// is distinguishable from a zero value. The delta/after fields are
// appended by the rating reconciler.
type MatchResult struct {
	MatchId       string   `dynamodbav:"matchId"`
	PlayerId      *string  `dynamodbav:"playerId"`
	OpponentId    *string  `dynamodbav:"opponentId"`
	PlayerScore   *float64 `dynamodbav:"playerScore"`
	OpponentScore *float64 `dynamodbav:"opponentScore"`

	Validation       *Validation     `dynamodbav:"validation,omitempty"`
	DeltaPlayer      *int            `dynamodbav:"deltaPlayer,omitempty"`
	DeltaOpponent    *int            `dynamodbav:"deltaOpponent,omitempty"`
	EloPlayerAfter   *float64        `dynamodbav:"eloPlayerAfter,omitempty"`
	EloOpponentAfter *float64        `dynamodbav:"eloOpponentAfter,omitempty"`
	ServerExpected   *ServerExpected `dynamodbav:"serverExpected,omitempty"`
}

// ServerExpected is the audit trail written when the reconciler had to
// correct client-written ratings.
type ServerExpected struct {
	DeltaPlayer      int     `dynamodbav:"deltaPlayer" json:"deltaPlayer"`
	DeltaOpponent    int     `dynamodbav:"deltaOpponent" json:"deltaOpponent"`
	EloPlayerAfter   float64 `dynamodbav:"eloPlayerAfter" json:"eloPlayerAfter"`
	EloOpponentAfter float64 `dynamodbav:"eloOpponentAfter" json:"eloOpponentAfter"`
}

// MissingField reports the first absent required field, if any.
func (r MatchResult) MissingField() (string, bool) {
	switch {
	case r.PlayerId == nil:
		return "playerId", true
	case r.OpponentId == nil:
		return "opponentId", true
	case r.PlayerScore == nil:
		return "playerScore", true
	case r.OpponentScore == nil:
		return "opponentScore", true
	}
	return "", false
}
