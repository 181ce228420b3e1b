package reconcile

import (
	"context"
	"fmt"

	"github.com/flipduel/arbiter/internal/aws/storage"
	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/flipduel/arbiter/pkg/logging"
	"go.uber.org/zap"
)

// Reconciler settles the rating movement of one match result. The read
// sequence is: consistent "before" reads of both accounts, the expected
// delta computation, then a "now" re-read that exposes any rating a
// client wrote between match end and this trigger firing. The commit is
// a single conditional transaction pinned to the "now" values, so two
// results touching the same account serialize; a lost condition fails
// the invocation and the event collaborator redelivers it.
type Reconciler struct {
	storage *storage.Client
}

func NewReconciler(storageClient *storage.Client) *Reconciler {
	return &Reconciler{storage: storageClient}
}

func (r *Reconciler) Reconcile(ctx context.Context, result entities.MatchResult) error {
	if name, missing := result.MissingField(); missing {
		logging.Warn("match result rejected",
			zap.String("match_id", result.MatchId),
			zap.String("missing_field", name),
		)
		return r.storage.UpdateMatchResultValidation(
			ctx,
			result.MatchId,
			entities.Invalid("missing field "+name),
		)
	}

	playerBefore, err := r.storage.GetAccount(ctx, *result.PlayerId)
	if err != nil {
		return fmt.Errorf("failed to read player account: %w", err)
	}
	opponentBefore, err := r.storage.GetAccount(ctx, *result.OpponentId)
	if err != nil {
		return fmt.Errorf("failed to read opponent account: %w", err)
	}
	before := Snapshot{Player: playerBefore, Opponent: opponentBefore}

	playerNow, err := r.storage.GetAccount(ctx, *result.PlayerId)
	if err != nil {
		return fmt.Errorf("failed to re-read player account: %w", err)
	}
	opponentNow, err := r.storage.GetAccount(ctx, *result.OpponentId)
	if err != nil {
		return fmt.Errorf("failed to re-read opponent account: %w", err)
	}
	now := Snapshot{Player: playerNow, Opponent: opponentNow}

	plan := BuildPlan(before, now, *result.PlayerScore, *result.OpponentScore)
	if plan.Corrected() {
		logging.Warn("client-written rating corrected",
			zap.String("match_id", result.MatchId),
			zap.String("player_id", *result.PlayerId),
			zap.String("opponent_id", *result.OpponentId),
			zap.Float64("elo_player_after", plan.EloPlayerAfter),
			zap.Float64("elo_opponent_after", plan.EloOpponentAfter),
		)
	}

	return r.storage.TransactReconcileWrite(ctx, storage.ReconcileWrite{
		MatchId:           result.MatchId,
		PlayerId:          *result.PlayerId,
		OpponentId:        *result.OpponentId,
		PlayerRatingNow:   now.Player.Rating,
		OpponentRatingNow: now.Opponent.Rating,
		DeltaPlayer:       plan.DeltaPlayer,
		DeltaOpponent:     plan.DeltaOpponent,
		EloPlayerAfter:    plan.EloPlayerAfter,
		EloOpponentAfter:  plan.EloOpponentAfter,
		Verdict:           plan.Verdict,
		Corrected:         plan.Corrected(),
	})
}
