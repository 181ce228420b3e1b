package entities

// MatchStatus is the lifecycle status of a match document.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchOngoing  MatchStatus = "ongoing"
	MatchFinished MatchStatus = "finished"
)

// PlayerStatus is the in-match status of a player's live sub-record.
type PlayerStatus string

const (
	PlayerInGame          PlayerStatus = "in game"
	PlayerFinished        PlayerStatus = "finished"
	PlayerDisconnected    PlayerStatus = "disconnected"
	PlayerAbandon         PlayerStatus = "abandon"
	PlayerWaitingOpponent PlayerStatus = "waitingOpponent"
)

// GameResult is a player's final outcome, settable once.
type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
	ResultDraw GameResult = "draw"
)
