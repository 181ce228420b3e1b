package watchdog

import (
	"context"
	"fmt"
	"time"

	"github.com/flipduel/arbiter/internal/aws/storage"
	"github.com/flipduel/arbiter/pkg/logging"
	"go.uber.org/zap"
)

// Sweeper runs the periodic reconciliation jobs over the live-match
// table: scan a fresh snapshot, plan, apply. The scan-then-write pair is
// not transactional across matches; each plan is idempotent, so a write
// lost to a concurrent client costs one extra cycle, never corruption.
type Sweeper struct {
	storage *storage.Client
}

func NewSweeper(storageClient *storage.Client) *Sweeper {
	return &Sweeper{storage: storageClient}
}

// SweepDisconnected resolves timed-out disconnections to abandon/loss.
func (s *Sweeper) SweepDisconnected(ctx context.Context) error {
	matches, err := s.storage.ScanLiveMatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot live matches: %w", err)
	}
	return s.apply(ctx, PlanDisconnectSweep(matches, time.Now()))
}

// SweepTimedOut force-finishes matches past the maximum duration.
func (s *Sweeper) SweepTimedOut(ctx context.Context) error {
	matches, err := s.storage.ScanLiveMatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot live matches: %w", err)
	}
	return s.apply(ctx, PlanTimeoutSweep(matches, time.Now()))
}

// SweepFinished removes matches whose players are all terminal.
func (s *Sweeper) SweepFinished(ctx context.Context) error {
	matches, err := s.storage.ScanLiveMatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to snapshot live matches: %w", err)
	}
	for _, matchId := range PlanCleanup(matches) {
		if err := s.storage.DeleteLiveMatch(ctx, matchId); err != nil {
			return err
		}
		logging.Info("finished match removed", zap.String("match_id", matchId))
	}
	return nil
}

func (s *Sweeper) apply(ctx context.Context, outcomes Outcomes) error {
	for matchId, playerOutcomes := range outcomes {
		if err := s.storage.UpdateLivePlayerOutcomes(ctx, matchId, playerOutcomes); err != nil {
			return err
		}
		logging.Info("stalled players resolved",
			zap.String("match_id", matchId),
			zap.Int("players", len(playerOutcomes)),
		)
	}
	return nil
}
