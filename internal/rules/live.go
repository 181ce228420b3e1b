package rules

import (
	"slices"

	"github.com/flipduel/arbiter/internal/domains/entities"
)

// MetadataReverts carries the prior values to restore onto a live match
// whose immutable metadata was tampered with. The legal value of each
// field is known exactly, so reverting is safe here, unlike player
// progress fields which are only flagged.
type MetadataReverts struct {
	StartTime   *int64
	Mode        *string
	Cards       []string
	ModeSpeedUp *bool
}

func (r MetadataReverts) Empty() bool {
	return r.StartTime == nil && r.Mode == nil && r.Cards == nil && r.ModeSpeedUp == nil
}

// ReviewLiveMatchCreation validates a newly created live match: two
// players, a full card sequence, and every player at the canonical
// initial state.
func ReviewLiveMatchCreation(m entities.LiveMatch) entities.Validation {
	if len(m.Players) != 2 {
		return entities.Invalid("exactly 2 players required")
	}
	if len(m.Cards) < MaxCards {
		return entities.Invalid("at least 20 cards required")
	}
	for _, p := range m.Players {
		if len(p.CardsOrder) != MaxCards {
			return entities.Invalid("invalid cardsOrder")
		}
		if p.Status != entities.PlayerInGame || p.CurrentCardIndex != 0 || p.Score != 0 {
			return entities.Invalid("invalid initial player state")
		}
	}
	if m.Mode != ModeRanked && m.Mode != ModeCasual {
		return entities.Invalid("unknown mode")
	}
	return entities.Valid()
}

// ReviewLiveMatchMetadata checks the immutable top-level fields of a
// live match across one write. On violation it returns the verdict plus
// the prior values to write back.
func ReviewLiveMatchMetadata(before, after entities.LiveMatch) (entities.Validation, MetadataReverts) {
	var reverts MetadataReverts
	verdict := entities.Valid()

	if before.StartTime != nil &&
		(after.StartTime == nil || *after.StartTime != *before.StartTime) {
		verdict = entities.Invalid("startTime immutable")
		reverts.StartTime = before.StartTime
	}
	if before.ModeSpeedUp && !after.ModeSpeedUp {
		verdict = entities.Invalid("modeSpeedUp cannot return to false")
		speedUp := true
		reverts.ModeSpeedUp = &speedUp
	}
	if before.Mode != after.Mode {
		verdict = entities.Invalid("mode immutable")
		mode := before.Mode
		reverts.Mode = &mode
	}
	if !slices.Equal(before.Cards, after.Cards) {
		verdict = entities.Invalid("cards immutable")
		reverts.Cards = before.Cards
	}
	return verdict, reverts
}
