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
	"github.com/flipduel/arbiter/internal/rules"
	"github.com/flipduel/arbiter/pkg/logging"
	"go.uber.org/zap"
)

var storageClient *storage.Client

func init() {
	cfg, _ := config.LoadDefaultConfig(context.TODO())
	storageClient = storage.NewClient(dynamodb.NewFromConfig(cfg), storage.LoadConfig())
}

func handler(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if err := validateRecord(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func validateRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName == "REMOVE" {
		return nil
	}
	var after entities.Match
	if err := streams.UnmarshalStreamImage(record.Change.NewImage, &after); err != nil {
		return fmt.Errorf("failed to unmarshal match: %w", err)
	}

	var verdict entities.Validation
	if record.EventName == "INSERT" {
		verdict = rules.ReviewMatchCreation(after)
	} else {
		var before entities.Match
		if err := streams.UnmarshalStreamImage(record.Change.OldImage, &before); err != nil {
			return fmt.Errorf("failed to unmarshal prior match: %w", err)
		}
		verdict = rules.ReviewMatchUpdate(before, after)
	}

	if !verdict.Valid {
		logging.Warn("match document rejected",
			zap.String("match_id", after.MatchId),
			zap.String("reason", verdict.Reason),
		)
		return storageClient.UpdateMatchValidation(ctx, after.MatchId, verdict)
	}
	// Writing valid again would re-trigger this stream for nothing.
	if after.Validation != nil && after.Validation.Valid {
		return nil
	}
	return storageClient.UpdateMatchValidation(ctx, after.MatchId, verdict)
}

func main() {
	lambda.Start(handler)
}
