package rules

import (
	"math"

	"github.com/flipduel/arbiter/internal/domains/entities"
)

// ReviewPlayerState validates one write to a player's live sub-record.
// before is nil when the sub-record did not exist. The checks are
// independent; the first failing reason is the one recorded. The
// offending fields are never reverted, only flagged.
func ReviewPlayerState(before *entities.LivePlayer, after entities.LivePlayer) entities.Validation {
	if !KnownPlayerStatus(after.Status) {
		return entities.Invalid("status not allowed")
	}
	if before != nil && !PlayerStatusTransitionAllowed(before.Status, after.Status) {
		return entities.Invalid("status transition not allowed")
	}

	if after.CurrentCardIndex < 0 || after.CurrentCardIndex >= MaxCards {
		return entities.Invalid("card index out of bounds")
	}
	if before != nil && after.CurrentCardIndex < before.CurrentCardIndex {
		return entities.Invalid("card index regressed")
	}
	priorIndex := 0
	if before != nil {
		priorIndex = before.CurrentCardIndex
	}
	if after.CurrentCardIndex-priorIndex > 1 {
		return entities.Invalid("card index jumped more than 1")
	}

	if after.ElapsedTime < 0 || after.ElapsedTime > MaxGameSeconds {
		return entities.Invalid("elapsedTime out of bounds")
	}
	if before != nil && after.ElapsedTime < before.ElapsedTime {
		return entities.Invalid("elapsedTime regressed")
	}

	if after.Score != math.Trunc(after.Score) || after.Score < 0 || after.Score > MaxCards {
		return entities.Invalid("invalid score")
	}
	if after.Score > float64(after.CurrentCardIndex) {
		return entities.Invalid("score exceeds card index")
	}
	if before != nil && TerminalPlayerStatus(before.Status) && after.Score != before.Score {
		return entities.Invalid("score changed after finish")
	}

	if before != nil && before.GameResult != "" && before.GameResult != after.GameResult {
		return entities.Invalid("gameResult immutable")
	}
	if after.GameResult != "" && !KnownGameResult(after.GameResult) {
		return entities.Invalid("unknown gameResult")
	}
	return entities.Valid()
}
