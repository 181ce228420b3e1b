package rules

import (
	"reflect"

	"github.com/flipduel/arbiter/internal/domains/entities"
)

// ReviewMatchCreation validates a freshly created match document:
// exactly two participants and a known mode.
func ReviewMatchCreation(match entities.Match) entities.Validation {
	if len(match.Players) != 2 {
		return entities.Invalid("exactly 2 players required")
	}
	if match.Mode != ModeClassique && match.Mode != ModeClassee {
		return entities.Invalid("unknown mode")
	}
	return entities.Valid()
}

// ReviewMatchUpdate validates a match document write against its prior
// value: the lifecycle machine must be respected and the participant set
// is frozen once the match is ongoing. Offending fields are not
// reverted; the verdict alone is the contract.
func ReviewMatchUpdate(before, after entities.Match) entities.Validation {
	if !MatchStatusTransitionAllowed(before.Status, after.Status) {
		return entities.Invalid("status transition not allowed")
	}
	if before.Status == entities.MatchOngoing &&
		!reflect.DeepEqual(before.Players, after.Players) {
		return entities.Invalid("players immutable while ongoing")
	}
	return entities.Valid()
}
