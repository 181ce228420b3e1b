package streams

import (
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UnmarshalStreamImage converts a DynamoDB Streams record image into the
// given value. The Lambda events package carries its own attribute-value
// type, so the image is first mapped onto SDK attribute values and then
// unmarshalled the usual way.
func UnmarshalStreamImage(image map[string]events.DynamoDBAttributeValue, out interface{}) error {
	avMap, err := fromStreamImage(image)
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalMap(avMap, out); err != nil {
		return fmt.Errorf("failed to unmarshal stream image: %w", err)
	}
	return nil
}

func fromStreamImage(image map[string]events.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	avMap := make(map[string]types.AttributeValue, len(image))
	for key, value := range image {
		av, err := fromStreamValue(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		avMap[key] = av
	}
	return avMap, nil
}

func fromStreamValue(value events.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch value.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: value.String()}, nil
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: value.Number()}, nil
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: value.Binary()}, nil
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: value.Boolean()}, nil
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: value.IsNull()}, nil
	case events.DataTypeList:
		list := make([]types.AttributeValue, 0, len(value.List()))
		for _, item := range value.List() {
			av, err := fromStreamValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, av)
		}
		return &types.AttributeValueMemberL{Value: list}, nil
	case events.DataTypeMap:
		avMap, err := fromStreamImage(value.Map())
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: avMap}, nil
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: value.StringSet()}, nil
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: value.NumberSet()}, nil
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: value.BinarySet()}, nil
	}
	return nil, fmt.Errorf("unsupported stream attribute type %v", value.DataType())
}
