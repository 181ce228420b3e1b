package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/flipduel/arbiter/internal/aws/storage"
	"github.com/flipduel/arbiter/internal/watchdog"
)

var sweeper *watchdog.Sweeper

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	sweeper = watchdog.NewSweeper(
		storage.NewClient(dynamodb.NewFromConfig(cfg), storage.LoadConfig()),
	)
}

func handler(ctx context.Context, event events.CloudWatchEvent) error {
	return sweeper.SweepFinished(ctx)
}

func main() {
	lambda.Start(handler)
}
