package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/flipduel/arbiter/internal/aws/storage"
	"github.com/flipduel/arbiter/internal/aws/streams"
	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/flipduel/arbiter/internal/reconcile"
)

var reconciler *reconcile.Reconciler

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	reconciler = reconcile.NewReconciler(
		storage.NewClient(dynamodb.NewFromConfig(cfg), storage.LoadConfig()),
	)
}

func handler(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if record.EventName != "INSERT" {
			continue
		}
		var result entities.MatchResult
		if err := streams.UnmarshalStreamImage(record.Change.NewImage, &result); err != nil {
			return fmt.Errorf("failed to unmarshal match result: %w", err)
		}
		if err := reconciler.Reconcile(ctx, result); err != nil {
			return fmt.Errorf("failed to reconcile match result: %w", err)
		}
	}
	return nil
}

func main() {
	lambda.Start(handler)
}
