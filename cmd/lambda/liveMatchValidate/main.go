package main

import (
	"context"
	"fmt"
	"reflect"

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
		switch record.EventName {
		case "INSERT":
			if err := validateCreation(ctx, record); err != nil {
				return err
			}
		case "MODIFY":
			if err := validateUpdate(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCreation(ctx context.Context, record events.DynamoDBEventRecord) error {
	var match entities.LiveMatch
	if err := streams.UnmarshalStreamImage(record.Change.NewImage, &match); err != nil {
		return fmt.Errorf("failed to unmarshal live match: %w", err)
	}
	verdict := rules.ReviewLiveMatchCreation(match)
	if !verdict.Valid {
		logging.Warn("live match creation rejected",
			zap.String("match_id", match.MatchId),
			zap.String("reason", verdict.Reason),
		)
	}
	return storageClient.UpdateLiveMatchValidation(ctx, match.MatchId, verdict)
}

func validateUpdate(ctx context.Context, record events.DynamoDBEventRecord) error {
	var before, after entities.LiveMatch
	if err := streams.UnmarshalStreamImage(record.Change.OldImage, &before); err != nil {
		return fmt.Errorf("failed to unmarshal prior live match: %w", err)
	}
	if err := streams.UnmarshalStreamImage(record.Change.NewImage, &after); err != nil {
		return fmt.Errorf("failed to unmarshal live match: %w", err)
	}

	verdict, reverts := rules.ReviewLiveMatchMetadata(before, after)
	if !verdict.Valid {
		logging.Warn("live match metadata reverted",
			zap.String("match_id", after.MatchId),
			zap.String("reason", verdict.Reason),
		)
		if err := storageClient.RevertLiveMatchMetadata(ctx, after.MatchId, reverts, verdict); err != nil {
			return err
		}
	}

	for playerId, player := range after.Players {
		var prior *entities.LivePlayer
		if beforePlayer, exists := before.Players[playerId]; exists {
			if reflect.DeepEqual(beforePlayer, player) {
				continue
			}
			prior = &beforePlayer
		}
		if err := validatePlayer(ctx, after.MatchId, playerId, prior, player); err != nil {
			return err
		}
	}
	return nil
}

func validatePlayer(
	ctx context.Context,
	matchId string,
	playerId string,
	before *entities.LivePlayer,
	after entities.LivePlayer,
) error {
	verdict := rules.ReviewPlayerState(before, after)
	if !verdict.Valid {
		logging.Warn("player state rejected",
			zap.String("match_id", matchId),
			zap.String("player_id", playerId),
			zap.String("reason", verdict.Reason),
		)
		return storageClient.UpdateLivePlayerValidation(ctx, matchId, playerId, verdict)
	}
	// Skip the redundant write that would re-trigger the stream.
	if after.Validation != nil && after.Validation.Valid {
		return nil
	}
	return storageClient.UpdateLivePlayerValidation(ctx, matchId, playerId, verdict)
}

func main() {
	lambda.Start(handler)
}
