package watchdog

import (
	"time"

	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/flipduel/arbiter/internal/rules"
)

const (
	// DisconnectTimeout is how long a player may stay disconnected
	// before being resolved to abandon.
	DisconnectTimeout = 60 * time.Second

	// MaxMatchDuration is the wall-clock cap on a whole match.
	MaxMatchDuration = rules.MaxGameSeconds * time.Second
)

// Outcomes maps matchId → playerId → the terminal resolution to force.
type Outcomes map[string]map[string]entities.PlayerOutcome

func (o Outcomes) add(matchId, playerId string, outcome entities.PlayerOutcome) {
	if o[matchId] == nil {
		o[matchId] = map[string]entities.PlayerOutcome{}
	}
	o[matchId][playerId] = outcome
}

// PlanDisconnectSweep resolves players that have sat in disconnected
// longer than the timeout: they abandon and take the loss. Re-planning
// on the resulting state yields nothing, which is what makes the sweep
// safe to re-run on a stale snapshot.
func PlanDisconnectSweep(matches []entities.LiveMatch, now time.Time) Outcomes {
	outcomes := Outcomes{}
	for _, match := range matches {
		for playerId, player := range match.Players {
			if player.Status != entities.PlayerDisconnected {
				continue
			}
			since := player.StatusSince
			if since == nil {
				since = player.DisconnectedAt
			}
			if olderThan(since, DisconnectTimeout, now) {
				outcomes.add(match.MatchId, playerId, entities.PlayerOutcome{
					Status:     entities.PlayerAbandon,
					GameResult: entities.ResultLoss,
				})
			}
		}
	}
	return outcomes
}

// PlanTimeoutSweep force-finishes every non-terminal player of a match
// that has outlived the maximum duration. A player already waiting on
// their opponent wins by default; anyone still playing takes the loss.
func PlanTimeoutSweep(matches []entities.LiveMatch, now time.Time) Outcomes {
	outcomes := Outcomes{}
	for _, match := range matches {
		if !olderThan(match.StartTime, MaxMatchDuration, now) {
			continue
		}
		for playerId, player := range match.Players {
			if rules.TerminalPlayerStatus(player.Status) {
				continue
			}
			result := entities.ResultLoss
			if player.Status == entities.PlayerWaitingOpponent {
				result = entities.ResultWin
			}
			outcomes.add(match.MatchId, playerId, entities.PlayerOutcome{
				Status:     entities.PlayerFinished,
				GameResult: result,
			})
		}
	}
	return outcomes
}

// PlanCleanup selects the matches whose players have all reached a
// terminal status; those items can be removed.
func PlanCleanup(matches []entities.LiveMatch) []string {
	var matchIds []string
	for _, match := range matches {
		if len(match.Players) == 0 {
			continue
		}
		done := true
		for _, player := range match.Players {
			if !rules.TerminalPlayerStatus(player.Status) {
				done = false
				break
			}
		}
		if done {
			matchIds = append(matchIds, match.MatchId)
		}
	}
	return matchIds
}

func olderThan(unixMillis *int64, delay time.Duration, now time.Time) bool {
	return unixMillis != nil && now.UnixMilli()-*unixMillis > delay.Milliseconds()
}
