package rules

import (
	"testing"

	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/stretchr/testify/assert"
)

func playing(index int, score float64) entities.LivePlayer {
	return entities.LivePlayer{
		Status:           entities.PlayerInGame,
		CurrentCardIndex: index,
		Score:            score,
		ElapsedTime:      60,
	}
}

func TestReviewPlayerStateCardIndex(t *testing.T) {
	before := playing(3, 2)

	next := playing(4, 2)
	assert.True(t, ReviewPlayerState(&before, next).Valid)

	jumped := playing(5, 2)
	verdict := ReviewPlayerState(&before, jumped)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "card index jumped more than 1", verdict.Reason)

	regressed := playing(2, 2)
	assert.False(t, ReviewPlayerState(&before, regressed).Valid)

	outOfBounds := playing(MaxCards, 2)
	assert.False(t, ReviewPlayerState(&before, outOfBounds).Valid)

	negative := playing(-1, 0)
	assert.False(t, ReviewPlayerState(nil, negative).Valid)
}

func TestReviewPlayerStateScore(t *testing.T) {
	before := playing(5, 3)

	scoreAboveIndex := playing(5, 6)
	verdict := ReviewPlayerState(&before, scoreAboveIndex)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "score exceeds card index", verdict.Reason)

	fractional := playing(5, 3.5)
	assert.False(t, ReviewPlayerState(&before, fractional).Valid)

	negative := playing(5, -1)
	assert.False(t, ReviewPlayerState(&before, negative).Valid)

	legitimate := playing(5, 4)
	legitimate.CurrentCardIndex = 6
	assert.True(t, ReviewPlayerState(&before, legitimate).Valid)
}

func TestReviewPlayerStateStatusTransitions(t *testing.T) {
	tests := []struct {
		name   string
		before entities.PlayerStatus
		after  entities.PlayerStatus
		valid  bool
	}{
		{"in game to finished", entities.PlayerInGame, entities.PlayerFinished, true},
		{"in game to disconnected", entities.PlayerInGame, entities.PlayerDisconnected, true},
		{"in game to waiting", entities.PlayerInGame, entities.PlayerWaitingOpponent, true},
		{"in game to abandon", entities.PlayerInGame, entities.PlayerAbandon, true},
		{"waiting to finished", entities.PlayerWaitingOpponent, entities.PlayerFinished, true},
		{"no change", entities.PlayerDisconnected, entities.PlayerDisconnected, true},
		{"finished back in game", entities.PlayerFinished, entities.PlayerInGame, false},
		{"disconnected back in game", entities.PlayerDisconnected, entities.PlayerInGame, false},
		{"abandon to finished", entities.PlayerAbandon, entities.PlayerFinished, false},
		{"waiting to abandon", entities.PlayerWaitingOpponent, entities.PlayerAbandon, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := playing(3, 2)
			before.Status = tt.before
			after := playing(3, 2)
			after.Status = tt.after
			verdict := ReviewPlayerState(&before, after)
			assert.Equal(t, tt.valid, verdict.Valid, verdict.Reason)
		})
	}
}

func TestReviewPlayerStateUnknownStatus(t *testing.T) {
	after := playing(0, 0)
	after.Status = "spectating"
	verdict := ReviewPlayerState(nil, after)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "status not allowed", verdict.Reason)
}

func TestReviewPlayerStateElapsedTime(t *testing.T) {
	before := playing(3, 2)

	tooLong := playing(3, 2)
	tooLong.ElapsedTime = MaxGameSeconds + 1
	assert.False(t, ReviewPlayerState(&before, tooLong).Valid)

	regressed := playing(3, 2)
	regressed.ElapsedTime = before.ElapsedTime - 1
	assert.False(t, ReviewPlayerState(&before, regressed).Valid)

	atLimit := playing(3, 2)
	atLimit.ElapsedTime = MaxGameSeconds
	assert.True(t, ReviewPlayerState(&before, atLimit).Valid)
}

func TestReviewPlayerStateScoreFrozenAfterTerminal(t *testing.T) {
	before := playing(10, 7)
	before.Status = entities.PlayerFinished

	bumped := playing(10, 8)
	bumped.Status = entities.PlayerFinished
	verdict := ReviewPlayerState(&before, bumped)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "score changed after finish", verdict.Reason)

	unchanged := playing(10, 7)
	unchanged.Status = entities.PlayerFinished
	assert.True(t, ReviewPlayerState(&before, unchanged).Valid)
}

func TestReviewPlayerStateGameResult(t *testing.T) {
	before := playing(10, 7)
	before.Status = entities.PlayerFinished
	before.GameResult = entities.ResultWin

	flipped := before
	flipped.GameResult = entities.ResultLoss
	verdict := ReviewPlayerState(&before, flipped)
	assert.False(t, verdict.Valid)
	assert.Equal(t, "gameResult immutable", verdict.Reason)

	unset := playing(3, 2)
	bogus := playing(3, 2)
	bogus.GameResult = "forfeit"
	assert.False(t, ReviewPlayerState(&unset, bogus).Valid)

	settled := playing(3, 2)
	settled.Status = entities.PlayerFinished
	settled.GameResult = entities.ResultDraw
	inGame := playing(3, 2)
	assert.True(t, ReviewPlayerState(&inGame, settled).Valid)
}
