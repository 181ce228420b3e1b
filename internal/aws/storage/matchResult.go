package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/flipduel/arbiter/internal/domains/entities"
)

func (client *Client) UpdateMatchResultValidation(
	ctx context.Context,
	matchId string,
	verdict entities.Validation,
) error {
	verdictAv, err := attributevalue.Marshal(verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}
	_, err = client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.MatchResultsTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression: aws.String("SET validation = :verdict"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":verdict": verdictAv,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update match result validation: %w", err)
	}
	return nil
}
