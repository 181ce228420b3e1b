package entities

// PlayerInfo is the opaque per-participant payload of a match document.
// Its content belongs to the match-setup collaborator; the validator only
// requires structural equality once a match is ongoing.
type PlayerInfo map[string]interface{}

// Match is the durable document form of a match.
type Match struct {
	MatchId    string                `dynamodbav:"matchId"`
	Players    map[string]PlayerInfo `dynamodbav:"players"`
	Mode       string                `dynamodbav:"mode"`
	Status     MatchStatus           `dynamodbav:"status"`
	Validation *Validation           `dynamodbav:"validation,omitempty"`
}
