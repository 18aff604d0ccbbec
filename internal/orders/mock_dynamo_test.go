package orders

import (
	"context"
	"errors"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is an in-memory stand-in for the orders table, implementing the
// slice of the DynamoDB API the store uses: keyed get/put/delete, the
// order_code index query, full scans and the version-guarded updates.
type mockDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue // order_id -> item
	down  bool                                       // simulate a storage outage
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

var errStorageDown = errors.New("storage down")

func (m *mockDynamo) put(item map[string]types.AttributeValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pk := item["order_id"].(*types.AttributeValueMemberS).Value
	m.items[pk] = item
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errStorageDown
	}
	pk := params.Item["order_id"].(*types.AttributeValueMemberS).Value
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(order_id)" {
		if _, exists := m.items[pk]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.items[pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errStorageDown
	}
	pk := params.Key["order_id"].(*types.AttributeValueMemberS).Value
	item, ok := m.items[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errStorageDown
	}
	pk := params.Key["order_id"].(*types.AttributeValueMemberS).Value
	delete(m.items, pk)
	return &dyn.DeleteItemOutput{}, nil
}

// Query supports only the order_code-index equality lookup.
func (m *mockDynamo) Query(ctx context.Context, params *dyn.QueryInput, optFns ...func(*dyn.Options)) (*dyn.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errStorageDown
	}
	want := params.ExpressionAttributeValues[":code"].(*types.AttributeValueMemberS).Value
	out := &dyn.QueryOutput{}
	for _, item := range m.items {
		code, ok := item["order_code"].(*types.AttributeValueMemberS)
		if ok && code.Value == want {
			out.Items = append(out.Items, item)
			break
		}
	}
	return out, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errStorageDown
	}
	out := &dyn.ScanOutput{}
	for _, item := range m.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

// UpdateItem honors the two version-guard condition forms the store emits
// and applies the :new/:p/:nv/:ua values.
func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errStorageDown
	}
	pk := params.Key["order_id"].(*types.AttributeValueMemberS).Value
	item, exists := m.items[pk]
	if !exists {
		return nil, &types.ConditionalCheckFailedException{}
	}

	if params.ConditionExpression != nil {
		switch *params.ConditionExpression {
		case "version = :ev":
			curr, ok := item["version"].(*types.AttributeValueMemberN)
			expected := params.ExpressionAttributeValues[":ev"].(*types.AttributeValueMemberN).Value
			if !ok || curr.Value != expected {
				return nil, &types.ConditionalCheckFailedException{}
			}
		case "attribute_exists(order_id) AND attribute_not_exists(version)":
			if _, hasVersion := item["version"]; hasVersion {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}

	if v, ok := params.ExpressionAttributeValues[":new"]; ok {
		item["status"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":p"]; ok {
		item["payment"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":nv"]; ok {
		item["version"] = v
	}
	if v, ok := params.ExpressionAttributeValues[":ua"]; ok {
		item["updated_at"] = v
	}
	m.items[pk] = item
	return &dyn.UpdateItemOutput{Attributes: item}, nil
}
