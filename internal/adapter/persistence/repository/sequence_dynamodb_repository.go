package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"sisgenius/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultCountersTableName = "counters"

	// orderCounterID is the single counter document holding the highest
	// order number issued so far. Only this repository touches it.
	orderCounterID = "service_order_number"
)

var errCounterValueUnreadable = errors.New("counter value unreadable")

// SequenceDynamoRepository backs the order-number counter with DynamoDB.
//
// Increment relies on UpdateItem ADD, which is a single atomic
// read-modify-write inside the store and creates the counter item with the
// increment applied when it does not exist yet. Two concurrent callers can
// therefore never observe the same pre-increment value, and the
// first-use initialization race resolves inside DynamoDB.

type SequenceDynamoRepository struct {
	ddb             *dynamodb.Client
	tableName       string
	ordersTableName string
}

var _ interfaces.ISequenceRepository = (*SequenceDynamoRepository)(nil)

func NewSequenceDynamoRepository(ddb *dynamodb.Client) *SequenceDynamoRepository {
	return &SequenceDynamoRepository{
		ddb:             ddb,
		tableName:       getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
		ordersTableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *SequenceDynamoRepository) Increment(ctx context.Context) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: orderCounterID},
		},
		UpdateExpression: aws.String("ADD #value :one"),
		ExpressionAttributeNames: map[string]string{
			"#value": "current_value",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}

	raw, ok := out.Attributes["current_value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errCounterValueUnreadable
	}
	value, err := strconv.ParseInt(raw.Value, 10, 64)
	if err != nil {
		return 0, errCounterValueUnreadable
	}
	return value, nil
}

// AssignNumbers writes every backfill assignment plus the new counter value
// in one TransactWriteItems call, so either all legacy orders get their
// numbers or none do. Each order update is guarded so an order that somehow
// picked up a number since the scan fails the whole transaction instead of
// being renumbered.
func (r *SequenceDynamoRepository) AssignNumbers(ctx context.Context, assignments []interfaces.NumberAssignment, counterValue int64) error {
	if len(assignments) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	items := make([]types.TransactWriteItem, 0, len(assignments)+1)

	for _, a := range assignments {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(r.ordersTableName),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: a.OrderID},
				},
				UpdateExpression:    aws.String("SET #number = :number, #updated_at = :updated_at"),
				ConditionExpression: aws.String("attribute_exists(#id) AND (attribute_not_exists(#number) OR #number = :zero)"),
				ExpressionAttributeNames: map[string]string{
					"#id":         "id",
					"#number":     "number",
					"#updated_at": "updated_at",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":number":     &types.AttributeValueMemberN{Value: strconv.FormatInt(a.Number, 10)},
					":zero":       &types.AttributeValueMemberN{Value: "0"},
					":updated_at": &types.AttributeValueMemberS{Value: now},
				},
			},
		})
	}

	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: orderCounterID},
			},
			UpdateExpression: aws.String("SET #value = :value"),
			ExpressionAttributeNames: map[string]string{
				"#value": "current_value",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":value": &types.AttributeValueMemberN{Value: strconv.FormatInt(counterValue, 10)},
			},
		},
	})

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	return err
}
