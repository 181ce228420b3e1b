package watchdog

import (
	"testing"
	"time"

	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1700000000000)

func millisAgo(d time.Duration) *int64 {
	ts := now.Add(-d).UnixMilli()
	return &ts
}

func TestPlanDisconnectSweep(t *testing.T) {
	matches := []entities.LiveMatch{
		{
			MatchId: "stale",
			Players: map[string]entities.LivePlayer{
				"alice": {
					Status:      entities.PlayerDisconnected,
					StatusSince: millisAgo(2 * time.Minute),
				},
				"bob": {Status: entities.PlayerWaitingOpponent},
			},
		},
		{
			MatchId: "fresh",
			Players: map[string]entities.LivePlayer{
				"carol": {
					Status:      entities.PlayerDisconnected,
					StatusSince: millisAgo(10 * time.Second),
				},
				"dave": {Status: entities.PlayerInGame},
			},
		},
	}

	outcomes := PlanDisconnectSweep(matches, now)
	require.Len(t, outcomes, 1)
	require.Len(t, outcomes["stale"], 1)
	assert.Equal(t, entities.PlayerOutcome{
		Status:     entities.PlayerAbandon,
		GameResult: entities.ResultLoss,
	}, outcomes["stale"]["alice"])
}

func TestPlanDisconnectSweepFallsBackToDisconnectedAt(t *testing.T) {
	matches := []entities.LiveMatch{{
		MatchId: "m1",
		Players: map[string]entities.LivePlayer{
			"alice": {
				Status:         entities.PlayerDisconnected,
				DisconnectedAt: millisAgo(5 * time.Minute),
			},
		},
	}}
	outcomes := PlanDisconnectSweep(matches, now)
	assert.Len(t, outcomes["m1"], 1)

	// No timestamp at all: nothing to measure against, leave alone.
	matches[0].Players["alice"] = entities.LivePlayer{Status: entities.PlayerDisconnected}
	assert.Empty(t, PlanDisconnectSweep(matches, now))
}

func TestPlanDisconnectSweepIdempotent(t *testing.T) {
	matches := []entities.LiveMatch{{
		MatchId: "m1",
		Players: map[string]entities.LivePlayer{
			"alice": {
				Status:      entities.PlayerDisconnected,
				StatusSince: millisAgo(2 * time.Minute),
			},
			"bob": {Status: entities.PlayerInGame},
		},
	}}

	first := PlanDisconnectSweep(matches, now)
	require.Len(t, first, 1)

	// Apply the plan, then sweep again with no intervening writes.
	for matchId, playerOutcomes := range first {
		for playerId, outcome := range playerOutcomes {
			for i := range matches {
				if matches[i].MatchId != matchId {
					continue
				}
				player := matches[i].Players[playerId]
				player.Status = outcome.Status
				player.GameResult = outcome.GameResult
				matches[i].Players[playerId] = player
			}
		}
	}
	assert.Empty(t, PlanDisconnectSweep(matches, now))
}

func TestPlanTimeoutSweep(t *testing.T) {
	expired := entities.LiveMatch{
		MatchId:   "expired",
		StartTime: millisAgo(MaxMatchDuration + time.Minute),
		Players: map[string]entities.LivePlayer{
			"alice": {Status: entities.PlayerWaitingOpponent},
			"bob":   {Status: entities.PlayerInGame},
			"done":  {Status: entities.PlayerFinished},
		},
	}
	running := entities.LiveMatch{
		MatchId:   "running",
		StartTime: millisAgo(time.Minute),
		Players: map[string]entities.LivePlayer{
			"carol": {Status: entities.PlayerInGame},
		},
	}
	unstarted := entities.LiveMatch{
		MatchId: "unstarted",
		Players: map[string]entities.LivePlayer{
			"dave": {Status: entities.PlayerInGame},
		},
	}

	outcomes := PlanTimeoutSweep([]entities.LiveMatch{expired, running, unstarted}, now)
	require.Len(t, outcomes, 1)
	require.Len(t, outcomes["expired"], 2)
	// Waiting on a finished opponent wins by default; still playing loses.
	assert.Equal(t, entities.PlayerOutcome{
		Status:     entities.PlayerFinished,
		GameResult: entities.ResultWin,
	}, outcomes["expired"]["alice"])
	assert.Equal(t, entities.PlayerOutcome{
		Status:     entities.PlayerFinished,
		GameResult: entities.ResultLoss,
	}, outcomes["expired"]["bob"])
}

func TestPlanCleanup(t *testing.T) {
	matches := []entities.LiveMatch{
		{
			MatchId: "both finished",
			Players: map[string]entities.LivePlayer{
				"alice": {Status: entities.PlayerFinished},
				"bob":   {Status: entities.PlayerFinished},
			},
		},
		{
			MatchId: "finished and abandoned",
			Players: map[string]entities.LivePlayer{
				"carol": {Status: entities.PlayerFinished},
				"dave":  {Status: entities.PlayerAbandon},
			},
		},
		{
			MatchId: "still playing",
			Players: map[string]entities.LivePlayer{
				"erin":  {Status: entities.PlayerFinished},
				"frank": {Status: entities.PlayerInGame},
			},
		},
		{
			MatchId: "no players",
			Players: map[string]entities.LivePlayer{},
		},
	}

	matchIds := PlanCleanup(matches)
	assert.ElementsMatch(t, []string{"both finished", "finished and abandoned"}, matchIds)
}
