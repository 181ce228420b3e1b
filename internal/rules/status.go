package rules

import "github.com/flipduel/arbiter/internal/domains/entities"

const (
	// MaxCards is the length of a match's card sequence; a player's
	// progress index is always strictly below it.
	MaxCards = 20

	// MaxGameSeconds is the longest a player clock may run.
	MaxGameSeconds = 360
)

// Document-form match modes.
const (
	ModeClassique = "CLASSIQUE"
	ModeClassee   = "CLASSEE"
)

// Live-state match modes.
const (
	ModeRanked = "ranked"
	ModeCasual = "casual"
)

func KnownPlayerStatus(s entities.PlayerStatus) bool {
	switch s {
	case entities.PlayerInGame,
		entities.PlayerFinished,
		entities.PlayerDisconnected,
		entities.PlayerAbandon,
		entities.PlayerWaitingOpponent:
		return true
	}
	return false
}

func KnownGameResult(r entities.GameResult) bool {
	switch r {
	case entities.ResultWin, entities.ResultLoss, entities.ResultDraw:
		return true
	}
	return false
}

// TerminalPlayerStatus reports whether a player can take no further part
// in the match.
func TerminalPlayerStatus(s entities.PlayerStatus) bool {
	return s == entities.PlayerFinished || s == entities.PlayerAbandon
}

// MatchStatusTransitionAllowed encodes the match lifecycle machine:
// pending → ongoing → finished, or no change.
func MatchStatusTransitionAllowed(before, after entities.MatchStatus) bool {
	switch {
	case before == after:
		return true
	case before == entities.MatchPending && after == entities.MatchOngoing:
		return true
	case before == entities.MatchOngoing && after == entities.MatchFinished:
		return true
	}
	return false
}

// PlayerStatusTransitionAllowed encodes the legal moves of a player's
// in-match status. A disconnected player never comes back "in game"
// directly; the watchdog decides their fate.
func PlayerStatusTransitionAllowed(before, after entities.PlayerStatus) bool {
	if before == after {
		return true
	}
	switch before {
	case entities.PlayerInGame:
		switch after {
		case entities.PlayerWaitingOpponent,
			entities.PlayerAbandon,
			entities.PlayerDisconnected,
			entities.PlayerFinished:
			return true
		}
	case entities.PlayerWaitingOpponent:
		return after == entities.PlayerFinished
	}
	return false
}
