package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/flipduel/arbiter/internal/aws/storage"
	"github.com/flipduel/arbiter/internal/watchdog"
	"github.com/flipduel/arbiter/pkg/logging"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Self-hosted alternative to the EventBridge-scheduled lambdas: one
// process running all three sweeps on their cadences.
func main() {
	cfg := NewConfig()

	awsCfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		logging.Fatal("failed to load aws config", zap.Error(err))
	}
	sweeper := watchdog.NewSweeper(
		storage.NewClient(dynamodb.NewFromConfig(awsCfg), storage.LoadConfig()),
	)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("failed to create scheduler", zap.Error(err))
	}

	jobs := []struct {
		name     string
		interval gocron.JobDefinition
		sweep    func(context.Context) error
	}{
		{"disconnect", gocron.DurationJob(cfg.DisconnectInterval), sweeper.SweepDisconnected},
		{"timeout", gocron.DurationJob(cfg.TimeoutInterval), sweeper.SweepTimedOut},
		{"cleanup", gocron.DurationJob(cfg.CleanupInterval), sweeper.SweepFinished},
	}
	for _, job := range jobs {
		_, err := scheduler.NewJob(job.interval, gocron.NewTask(runSweep, job.name, job.sweep))
		if err != nil {
			logging.Fatal("failed to schedule sweep",
				zap.String("sweep", job.name),
				zap.Error(err),
			)
		}
	}

	scheduler.Start()
	logging.Info("watchdog started",
		zap.Duration("disconnect_interval", cfg.DisconnectInterval),
		zap.Duration("timeout_interval", cfg.TimeoutInterval),
		zap.Duration("cleanup_interval", cfg.CleanupInterval),
	)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := scheduler.Shutdown(); err != nil {
		logging.Error("failed to shut down scheduler", zap.Error(err))
	}
	logging.Info("watchdog stopped")
}

func runSweep(name string, sweep func(context.Context) error) {
	runId := uuid.NewString()
	logging.Info("sweep started",
		zap.String("sweep", name),
		zap.String("run_id", runId),
	)
	if err := sweep(context.Background()); err != nil {
		logging.Error("sweep failed",
			zap.String("sweep", name),
			zap.String("run_id", runId),
			zap.Error(err),
		)
	}
}
