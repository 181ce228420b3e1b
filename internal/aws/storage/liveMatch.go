package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/flipduel/arbiter/internal/rules"
)

// ScanLiveMatches pulls a full snapshot of the live-match table. The
// watchdog sweeps re-derive their target set from a fresh snapshot on
// every run, so a stale page costs one cycle of delay at worst.
func (client *Client) ScanLiveMatches(ctx context.Context) ([]entities.LiveMatch, error) {
	var matches []entities.LiveMatch
	var lastKey map[string]types.AttributeValue
	for {
		output, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         client.cfg.LiveMatchesTableName,
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan live matches: %w", err)
		}
		var page []entities.LiveMatch
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal live matches: %w", err)
		}
		matches = append(matches, page...)
		if output.LastEvaluatedKey == nil {
			return matches, nil
		}
		lastKey = output.LastEvaluatedKey
	}
}

func (client *Client) DeleteLiveMatch(ctx context.Context, matchId string) error {
	_, err := client.dynamodb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: client.cfg.LiveMatchesTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchId},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete live match: %w", err)
	}
	return nil
}

func (client *Client) UpdateLiveMatchValidation(
	ctx context.Context,
	matchId string,
	verdict entities.Validation,
) error {
	verdictAv, err := attributevalue.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	_, err = client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.LiveMatchesTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression: aws.String("SET validation = :verdict"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":verdict": verdictAv,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update live match validation: %w", err)
	}
	return nil
}

func (client *Client) UpdateLivePlayerValidation(
	ctx context.Context,
	matchId string,
	playerId string,
	verdict entities.Validation,
) error {
	verdictAv, err := attributevalue.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	_, err = client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.LiveMatchesTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression: aws.String("SET players.#playerId.validation = :verdict"),
		ExpressionAttributeNames: map[string]string{
			"#playerId": playerId,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":verdict": verdictAv,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update live player validation: %w", err)
	}
	return nil
}

// RevertLiveMatchMetadata writes the prior values of tampered immutable
// fields back onto the match, together with the failing verdict, in one
// update.
func (client *Client) RevertLiveMatchMetadata(
	ctx context.Context,
	matchId string,
	reverts rules.MetadataReverts,
	verdict entities.Validation,
) error {
	verdictAv, err := attributevalue.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	clauses := []string{"validation = :verdict"}
	values := map[string]types.AttributeValue{":verdict": verdictAv}

	if reverts.StartTime != nil {
		clauses = append(clauses, "startTime = :startTime")
		values[":startTime"] = numberAttribute(float64(*reverts.StartTime))
	}
	if reverts.Mode != nil {
		clauses = append(clauses, "#mode = :mode")
		values[":mode"] = &types.AttributeValueMemberS{Value: *reverts.Mode}
	}
	if reverts.Cards != nil {
		cardsAv, err := attributevalue.Marshal(reverts.Cards)
		if err != nil {
			return fmt.Errorf("failed to marshal cards: %w", err)
		}
		clauses = append(clauses, "cards = :cards")
		values[":cards"] = cardsAv
	}
	if reverts.ModeSpeedUp != nil {
		clauses = append(clauses, "modeSpeedUp = :modeSpeedUp")
		values[":modeSpeedUp"] = &types.AttributeValueMemberBOOL{Value: *reverts.ModeSpeedUp}
	}

	input := &dynamodb.UpdateItemInput{
		TableName: client.cfg.LiveMatchesTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(clauses, ", ")),
		ExpressionAttributeValues: values,
	}
	if reverts.Mode != nil {
		input.ExpressionAttributeNames = map[string]string{"#mode": "mode"}
	}
	if _, err := client.dynamodb.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to revert live match metadata: %w", err)
	}
	return nil
}

// UpdateLivePlayerOutcomes forces terminal resolutions onto one match's
// player sub-records in a single multi-path update.
func (client *Client) UpdateLivePlayerOutcomes(
	ctx context.Context,
	matchId string,
	outcomes map[string]entities.PlayerOutcome,
) error {
	if len(outcomes) == 0 {
		return nil
	}
	playerIds := make([]string, 0, len(outcomes))
	for playerId := range outcomes {
		playerIds = append(playerIds, playerId)
	}
	sort.Strings(playerIds)

	var clauses []string
	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{}
	for i, playerId := range playerIds {
		outcome := outcomes[playerId]
		playerName := fmt.Sprintf("#player%d", i)
		names[playerName] = playerId
		clauses = append(clauses,
			fmt.Sprintf("players.%s.#status = :status%d", playerName, i),
			fmt.Sprintf("players.%s.gameResult = :result%d", playerName, i),
		)
		values[fmt.Sprintf(":status%d", i)] = &types.AttributeValueMemberS{
			Value: string(outcome.Status),
		}
		values[fmt.Sprintf(":result%d", i)] = &types.AttributeValueMemberS{
			Value: string(outcome.GameResult),
		}
	}

	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.LiveMatchesTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(clauses, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("failed to update live player outcomes: %w", err)
	}
	return nil
}
