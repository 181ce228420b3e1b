package rules

import (
	"testing"

	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveMatch() entities.LiveMatch {
	cards := make([]string, MaxCards)
	order := make([]int, MaxCards)
	for i := range cards {
		cards[i] = "card"
		order[i] = i
	}
	return entities.LiveMatch{
		MatchId: "m1",
		Mode:    ModeRanked,
		Cards:   cards,
		Players: map[string]entities.LivePlayer{
			"alice": {Status: entities.PlayerInGame, CardsOrder: order},
			"bob":   {Status: entities.PlayerInGame, CardsOrder: order},
		},
	}
}

func TestReviewLiveMatchCreation(t *testing.T) {
	assert.True(t, ReviewLiveMatchCreation(liveMatch()).Valid)

	short := liveMatch()
	short.Cards = short.Cards[:MaxCards-1]
	assert.False(t, ReviewLiveMatchCreation(short).Valid)

	solo := liveMatch()
	delete(solo.Players, "bob")
	assert.False(t, ReviewLiveMatchCreation(solo).Valid)

	badOrder := liveMatch()
	player := badOrder.Players["alice"]
	player.CardsOrder = player.CardsOrder[:5]
	badOrder.Players["alice"] = player
	assert.False(t, ReviewLiveMatchCreation(badOrder).Valid)

	midGame := liveMatch()
	player = midGame.Players["bob"]
	player.CurrentCardIndex = 3
	midGame.Players["bob"] = player
	assert.False(t, ReviewLiveMatchCreation(midGame).Valid)

	badMode := liveMatch()
	badMode.Mode = "tournament"
	assert.False(t, ReviewLiveMatchCreation(badMode).Valid)
}

func TestReviewLiveMatchMetadataImmutability(t *testing.T) {
	startTime := int64(1700000000000)

	before := liveMatch()
	before.StartTime = &startTime
	before.ModeSpeedUp = true

	unchanged := liveMatch()
	unchanged.StartTime = &startTime
	unchanged.ModeSpeedUp = true
	verdict, reverts := ReviewLiveMatchMetadata(before, unchanged)
	assert.True(t, verdict.Valid)
	assert.True(t, reverts.Empty())

	shifted := unchanged
	later := startTime + 60000
	shifted.StartTime = &later
	verdict, reverts = ReviewLiveMatchMetadata(before, shifted)
	assert.False(t, verdict.Valid)
	require.NotNil(t, reverts.StartTime)
	assert.Equal(t, startTime, *reverts.StartTime)

	slowedDown := unchanged
	slowedDown.ModeSpeedUp = false
	verdict, reverts = ReviewLiveMatchMetadata(before, slowedDown)
	assert.False(t, verdict.Valid)
	require.NotNil(t, reverts.ModeSpeedUp)
	assert.True(t, *reverts.ModeSpeedUp)

	remodded := unchanged
	remodded.Mode = ModeCasual
	verdict, reverts = ReviewLiveMatchMetadata(before, remodded)
	assert.False(t, verdict.Valid)
	require.NotNil(t, reverts.Mode)
	assert.Equal(t, ModeRanked, *reverts.Mode)

	reshuffled := unchanged
	reshuffled.Cards = append([]string{"other"}, before.Cards[1:]...)
	verdict, reverts = ReviewLiveMatchMetadata(before, reshuffled)
	assert.False(t, verdict.Valid)
	assert.Equal(t, before.Cards, reverts.Cards)
}

func TestReviewLiveMatchMetadataStartTimeFirstWrite(t *testing.T) {
	before := liveMatch()
	after := liveMatch()
	startTime := int64(1700000000000)
	after.StartTime = &startTime

	// Setting startTime for the first time is the legal write.
	verdict, reverts := ReviewLiveMatchMetadata(before, after)
	assert.True(t, verdict.Valid)
	assert.True(t, reverts.Empty())

	// Speeding up is the legal direction.
	spedUp := liveMatch()
	spedUp.ModeSpeedUp = true
	verdict, _ = ReviewLiveMatchMetadata(liveMatch(), spedUp)
	assert.True(t, verdict.Valid)
}
