package entities

// LiveMatch is the real-time form of an in-progress match, one item per
// match with both players' sub-records nested under players. It is
// mutated by clients, flagged by the live validators and resolved by the
// watchdog sweeps.
type LiveMatch struct {
	MatchId     string                `dynamodbav:"matchId"`
	Players     map[string]LivePlayer `dynamodbav:"players"`
	Cards       []string              `dynamodbav:"cards"`
	Mode        string                `dynamodbav:"mode"`
	StartTime   *int64                `dynamodbav:"startTime,omitempty"`
	ModeSpeedUp bool                  `dynamodbav:"modeSpeedUp"`
	Validation  *Validation           `dynamodbav:"validation,omitempty"`
}

// LivePlayer is a single player's sub-record inside a live match.
// Score stays float64 so that a non-integer client write reaches the
// validator as data instead of failing the unmarshal; the integer rule
// is enforced there. StatusSince/DisconnectedAt are unix milliseconds.
type LivePlayer struct {
	Status           PlayerStatus `dynamodbav:"status"`
	CurrentCardIndex int          `dynamodbav:"currentCardIndex"`
	Score            float64      `dynamodbav:"score"`
	ElapsedTime      float64      `dynamodbav:"elapsedTime"`
	GameResult       GameResult   `dynamodbav:"gameResult,omitempty"`
	CardsOrder       []int        `dynamodbav:"cardsOrder"`
	StatusSince      *int64       `dynamodbav:"statusSince,omitempty"`
	DisconnectedAt   *int64       `dynamodbav:"disconnectedAt,omitempty"`
	Validation       *Validation  `dynamodbav:"validation,omitempty"`
}

// PlayerOutcome is a terminal resolution a watchdog sweep forces onto a
// player sub-record.
type PlayerOutcome struct {
	Status     PlayerStatus
	GameResult GameResult
}
