package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ornamenta/storefront/internal/aws"
)

// CodeIndexName is the GSI projecting order_code -> order.
const CodeIndexName = "order_code-index"

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// NewOrderID generates a 24-char lowercase hex system identifier.
func NewOrderID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the process is in no state to serve
		panic(fmt.Sprintf("orders: rand.Read: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// Create persists a new order, guarded by attribute_not_exists(order_id).
// Version starts at 1; order_code is derived from the summary list so the
// code index can serve lookups.
func (s *Store) Create(ctx context.Context, order *Order) error {
	now := s.nowFunc()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.Version == 0 {
		order.Version = 1
	}
	order.OrderCode = order.Code()

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	input := &dyn.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(order_id)"),
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// GetByID fetches an order by order_id. Returns (nil, nil) if not found.
func (s *Store) GetByID(ctx context.Context, orderID string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// GetByCode finds the order whose human code equals code. The code index is
// tried first; records written before order_code was denormalized are found
// by scanning summary entries. Returns (nil, nil) if nothing matches.
func (s *Store) GetByCode(ctx context.Context, code string) (*Order, error) {
	out, err := s.client.Query(ctx, &dyn.QueryInput{
		TableName:              &s.tableName,
		IndexName:              awsString(CodeIndexName),
		KeyConditionExpression: awsString("order_code = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code": &types.AttributeValueMemberS{Value: code},
		},
		Limit: awsInt32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("query code index: %w", err)
	}
	if len(out.Items) > 0 {
		var o Order
		if err := attributevalue.UnmarshalMap(out.Items[0], &o); err != nil {
			return nil, fmt.Errorf("unmarshal order: %w", err)
		}
		return &o, nil
	}
	return s.scanByCode(ctx, code)
}

// scanByCode pages through the table matching the "Order ID" summary entry
// client-side. Slow path for pre-index records only.
func (s *Store) scanByCode(ctx context.Context, code string) (*Order, error) {
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		for _, item := range out.Items {
			var o Order
			if err := attributevalue.UnmarshalMap(item, &o); err != nil {
				return nil, fmt.Errorf("unmarshal order: %w", err)
			}
			for _, entry := range o.Summary {
				if entry.Label == SummaryLabelOrderID && entry.Value == code {
					return &o, nil
				}
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// List returns all orders, newest first.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	var result []Order
	var startKey map[string]types.AttributeValue
	for {
		out, err := s.client.Scan(ctx, &dyn.ScanInput{
			TableName:         &s.tableName,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		for _, item := range out.Items {
			var o Order
			if err := attributevalue.UnmarshalMap(item, &o); err != nil {
				return nil, fmt.Errorf("unmarshal order: %w", err)
			}
			result = append(result, o)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes the whole order record.
func (s *Store) Delete(ctx context.Context, orderID string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// UpdateStatus sets the fulfillment status, guarded by the version counter.
// expectedVersion 0 targets pre-versioning records (no version attribute).
// Returns ErrVersionConflict when a concurrent writer got there first.
func (s *Store) UpdateStatus(ctx context.Context, orderID, newStatus string, expectedVersion int64) error {
	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression:         awsString("SET #s = :new, updated_at = :ua, version = :nv"),
		ExpressionAttributeNames: map[string]string{"#s": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":new": &types.AttributeValueMemberS{Value: newStatus},
			":ua":  &types.AttributeValueMemberS{Value: s.nowFunc().Format(time.RFC3339)},
			":nv":  &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion+1, 10)},
		},
	}
	applyVersionCondition(input, expectedVersion)

	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrVersionConflict
		}
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// UpdatePayment overwrites the embedded payment record, guarded by the
// version counter.
func (s *Store) UpdatePayment(ctx context.Context, orderID string, payment Payment, expectedVersion int64) error {
	pay, err := attributevalue.MarshalMap(payment)
	if err != nil {
		return fmt.Errorf("marshal payment: %w", err)
	}

	input := &dyn.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		UpdateExpression: awsString("SET payment = :p, updated_at = :ua, version = :nv"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":p":   &types.AttributeValueMemberM{Value: pay},
			":ua":  &types.AttributeValueMemberS{Value: s.nowFunc().Format(time.RFC3339)},
			":nv":  &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion+1, 10)},
		},
	}
	applyVersionCondition(input, expectedVersion)

	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrVersionConflict
		}
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

func applyVersionCondition(input *dyn.UpdateItemInput, expectedVersion int64) {
	if expectedVersion == 0 {
		input.ConditionExpression = awsString("attribute_exists(order_id) AND attribute_not_exists(version)")
		return
	}
	input.ConditionExpression = awsString("version = :ev")
	input.ExpressionAttributeValues[":ev"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)}
}

func awsString(s string) *string { return &s }
func awsInt32(n int32) *int32    { return &n }
