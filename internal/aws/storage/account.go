package storage

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/flipduel/arbiter/internal/domains/entities"
	"github.com/flipduel/arbiter/internal/rating"
)

// accountRecord mirrors the stored item with pointer fields so that an
// absent attribute is distinguishable from a written zero.
type accountRecord struct {
	AccountId              string   `dynamodbav:"accountId"`
	Rating                 *float64 `dynamodbav:"rating"`
	PlacementMatchesPlayed *int     `dynamodbav:"placementMatchesPlayed"`
}

// GetAccount reads an account with a strongly consistent read. A missing
// item or attribute resolves to the documented defaults: rating 1000,
// placement counter at the limit (not in placement).
func (client *Client) GetAccount(ctx context.Context, accountId string) (entities.Account, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.AccountsTableName,
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountId},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	account := entities.Account{
		AccountId:              accountId,
		Rating:                 rating.DefaultRating,
		PlacementMatchesPlayed: rating.PlacementMatchLimit,
	}
	if output.Item == nil {
		return account, nil
	}
	var record accountRecord
	if err := attributevalue.UnmarshalMap(output.Item, &record); err != nil {
		return entities.Account{}, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	if record.Rating != nil {
		account.Rating = *record.Rating
	}
	if record.PlacementMatchesPlayed != nil {
		account.PlacementMatchesPlayed = *record.PlacementMatchesPlayed
	}
	return account, nil
}

// ReconcileWrite is the single transaction that settles a match result:
// both accounts are set to their server-expected ratings and the result
// record receives its verdict and audit fields. Each account update is
// conditioned on the rating still holding the value observed in the
// "now" snapshot, so a concurrent reconciliation on the same account
// cancels the transaction instead of losing an update.
type ReconcileWrite struct {
	MatchId    string
	PlayerId   string
	OpponentId string

	PlayerRatingNow   float64
	OpponentRatingNow float64

	DeltaPlayer      int
	DeltaOpponent    int
	EloPlayerAfter   float64
	EloOpponentAfter float64

	Verdict   entities.Validation
	Corrected bool
}

func (client *Client) TransactReconcileWrite(ctx context.Context, write ReconcileWrite) error {
	verdictAv, err := attributevalue.Marshal(write.Verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	resultUpdate := types.Update{
		TableName: client.cfg.MatchResultsTableName,
		Key: map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: write.MatchId},
		},
	}
	if write.Corrected {
		expectedAv, err := attributevalue.Marshal(entities.ServerExpected{
			DeltaPlayer:      write.DeltaPlayer,
			DeltaOpponent:    write.DeltaOpponent,
			EloPlayerAfter:   write.EloPlayerAfter,
			EloOpponentAfter: write.EloOpponentAfter,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal server expected: %w", err)
		}
		resultUpdate.UpdateExpression = aws.String("SET validation = :verdict, serverExpected = :expected")
		resultUpdate.ExpressionAttributeValues = map[string]types.AttributeValue{
			":verdict":  verdictAv,
			":expected": expectedAv,
		}
	} else {
		resultUpdate.UpdateExpression = aws.String(
			"SET validation = :verdict, deltaPlayer = :deltaPlayer, deltaOpponent = :deltaOpponent, " +
				"eloPlayerAfter = :eloPlayerAfter, eloOpponentAfter = :eloOpponentAfter",
		)
		resultUpdate.ExpressionAttributeValues = map[string]types.AttributeValue{
			":verdict":          verdictAv,
			":deltaPlayer":      numberAttribute(float64(write.DeltaPlayer)),
			":deltaOpponent":    numberAttribute(float64(write.DeltaOpponent)),
			":eloPlayerAfter":   numberAttribute(write.EloPlayerAfter),
			":eloOpponentAfter": numberAttribute(write.EloOpponentAfter),
		}
	}

	_, err = client.dynamodb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: accountRatingUpdate(
				client.cfg.AccountsTableName,
				write.PlayerId,
				write.EloPlayerAfter,
				write.PlayerRatingNow,
			)},
			{Update: accountRatingUpdate(
				client.cfg.AccountsTableName,
				write.OpponentId,
				write.EloOpponentAfter,
				write.OpponentRatingNow,
			)},
			{Update: &resultUpdate},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit reconcile write: %w", err)
	}
	return nil
}

func accountRatingUpdate(tableName *string, accountId string, after, observed float64) *types.Update {
	return &types.Update{
		TableName: tableName,
		Key: map[string]types.AttributeValue{
			"accountId": &types.AttributeValueMemberS{Value: accountId},
		},
		UpdateExpression:    aws.String("SET rating = :after"),
		ConditionExpression: aws.String("attribute_not_exists(rating) OR rating = :observed"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":after":    numberAttribute(after),
			":observed": numberAttribute(observed),
		},
	}
}

func numberAttribute(value float64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatFloat(value, 'f', -1, 64)}
}
