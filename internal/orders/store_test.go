package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func seedOrder(t *testing.T, mock *mockDynamo, o Order) {
	t.Helper()
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		t.Fatalf("marshal seed order: %v", err)
	}
	mock.put(item)
}

func TestCreate_SetsDefaultsAndDerivesCode(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	order := Order{
		OrderID: NewOrderID(),
		Summary: []SummaryEntry{
			{Label: "Order ID", Value: "ORD-1001"},
			{Label: "Order Date", Value: "12/01/2026"},
		},
		Status:      StatusPending,
		TotalAmount: 250.00,
	}

	if err := store.Create(context.Background(), &order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Version != 1 {
		t.Fatalf("expected version 1, got %d", order.Version)
	}
	if order.OrderCode != "ORD-1001" {
		t.Fatalf("expected derived code ORD-1001, got %s", order.OrderCode)
	}
	if order.CreatedAt.IsZero() || order.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	item := mock.items[order.OrderID]
	if item == nil {
		t.Fatal("order not stored")
	}
	if got := item["order_code"].(*types.AttributeValueMemberS).Value; got != "ORD-1001" {
		t.Fatalf("stored order_code = %s", got)
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	order := Order{OrderID: "aaaaaaaaaaaaaaaaaaaaaaaa", Status: StatusPending}
	if err := store.Create(context.Background(), &order); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := Order{OrderID: "aaaaaaaaaaaaaaaaaaaaaaaa", Status: StatusPending}
	if err := store.Create(context.Background(), &dup); !errors.Is(err, ErrDuplicateOrder) {
		t.Fatalf("expected ErrDuplicateOrder, got %v", err)
	}
}

func TestGetByCode_IndexHit(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	seedOrder(t, mock, Order{
		OrderID:   "111111111111111111111111",
		OrderCode: "ORD-42",
		Summary:   []SummaryEntry{{Label: "Order ID", Value: "ORD-42"}},
		Status:    StatusPending,
		Version:   1,
	})

	o, err := store.GetByCode(context.Background(), "ORD-42")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if o == nil || o.OrderID != "111111111111111111111111" {
		t.Fatalf("wrong order: %+v", o)
	}
}

func TestGetByCode_LegacyScanFallback(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	// record written before order_code was denormalized: summary only
	legacy := Order{
		OrderID: "222222222222222222222222",
		Summary: []SummaryEntry{{Label: "Order ID", Value: "ORD-77"}},
		Status:  StatusShipped,
	}
	item, _ := attributevalue.MarshalMap(legacy)
	delete(item, "order_code")
	mock.put(item)

	o, err := store.GetByCode(context.Background(), "ORD-77")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if o == nil || o.OrderID != "222222222222222222222222" {
		t.Fatalf("fallback scan missed the legacy record: %+v", o)
	}

	// and a code nobody has
	o, err = store.GetByCode(context.Background(), "ORD-nope")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if o != nil {
		t.Fatalf("expected nil for unknown code, got %+v", o)
	}
}

func TestList_NewestFirst(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	seedOrder(t, mock, Order{OrderID: "aaaaaaaaaaaaaaaaaaaaaaa1", CreatedAt: base})
	seedOrder(t, mock, Order{OrderID: "aaaaaaaaaaaaaaaaaaaaaaa2", CreatedAt: base.Add(2 * time.Hour)})
	seedOrder(t, mock, Order{OrderID: "aaaaaaaaaaaaaaaaaaaaaaa3", CreatedAt: base.Add(time.Hour)})

	got, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(got))
	}
	if got[0].OrderID != "aaaaaaaaaaaaaaaaaaaaaaa2" || got[2].OrderID != "aaaaaaaaaaaaaaaaaaaaaaa1" {
		t.Fatalf("wrong ordering: %s, %s, %s", got[0].OrderID, got[1].OrderID, got[2].OrderID)
	}
}

func TestUpdateStatus_VersionGuard(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	seedOrder(t, mock, Order{OrderID: "333333333333333333333333", Status: StatusPending, Version: 1})

	if err := store.UpdateStatus(context.Background(), "333333333333333333333333", StatusShipped, 1); err != nil {
		t.Fatalf("update with matching version: %v", err)
	}

	// stale version loses
	err := store.UpdateStatus(context.Background(), "333333333333333333333333", StatusCancelled, 1)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	item := mock.items["333333333333333333333333"]
	if got := item["status"].(*types.AttributeValueMemberS).Value; got != StatusShipped {
		t.Fatalf("status should still be Shipped, got %s", got)
	}
	if got := item["version"].(*types.AttributeValueMemberN).Value; got != "2" {
		t.Fatalf("version should be 2, got %s", got)
	}
}

func TestUpdateStatus_PreVersioningRecord(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	// historical record without a version attribute
	o := Order{OrderID: "444444444444444444444444", Status: StatusPending}
	item, _ := attributevalue.MarshalMap(o)
	delete(item, "version")
	mock.put(item)

	if err := store.UpdateStatus(context.Background(), "444444444444444444444444", StatusProcessing, 0); err != nil {
		t.Fatalf("update pre-versioning record: %v", err)
	}
	got := mock.items["444444444444444444444444"]
	if v := got["version"].(*types.AttributeValueMemberN).Value; v != "1" {
		t.Fatalf("expected version 1 after first guarded write, got %s", v)
	}
}

func TestDelete(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")

	seedOrder(t, mock, Order{OrderID: "555555555555555555555555"})
	if err := store.Delete(context.Background(), "555555555555555555555555"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, exists := mock.items["555555555555555555555555"]; exists {
		t.Fatal("order still present after delete")
	}
}

func TestCanonicalItems_AdaptsLegacyShape(t *testing.T) {
	o := Order{
		LegacyItems: []LegacyItem{
			{ProductName: "Gold Band", Quantity: 2, Price: 100.00},
			{ProductName: "Silver Chain", Quantity: 1, Price: 50.00},
		},
	}
	items := o.CanonicalItems()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Total != 200.00 || items[1].Total != 50.00 {
		t.Fatalf("wrong line totals: %v, %v", items[0].Total, items[1].Total)
	}
	if items[0].Customization != nil {
		t.Fatal("legacy items carry no customization")
	}
}
