package orders

import (
	"context"
	"errors"
	"testing"
)

func TestResolve_BySystemID(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")
	r := NewResolver(store)

	seedOrder(t, mock, Order{
		OrderID:   "abcdefabcdefabcdefabcdef",
		OrderCode: "ORD-500",
		Summary:   []SummaryEntry{{Label: "Order ID", Value: "ORD-500"}},
		Version:   1,
	})

	o, err := r.Resolve(context.Background(), "abcdefabcdefabcdefabcdef")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if o.OrderID != "abcdefabcdefabcdefabcdef" {
		t.Fatalf("wrong order: %s", o.OrderID)
	}
}

func TestResolve_SystemIDWinsOverCollidingCode(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")
	r := NewResolver(store)

	// order A owns the system id
	seedOrder(t, mock, Order{OrderID: "aaaabbbbccccddddeeeeffff", Version: 1})
	// order B's human code happens to equal A's system id
	seedOrder(t, mock, Order{
		OrderID:   "000011112222333344445555",
		OrderCode: "aaaabbbbccccddddeeeeffff",
		Summary:   []SummaryEntry{{Label: "Order ID", Value: "aaaabbbbccccddddeeeeffff"}},
		Version:   1,
	})

	o, err := r.Resolve(context.Background(), "aaaabbbbccccddddeeeeffff")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if o.OrderID != "aaaabbbbccccddddeeeeffff" {
		t.Fatalf("direct id lookup should win, got %s", o.OrderID)
	}
}

func TestResolve_HumanCodeBothForms(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")
	r := NewResolver(store)

	seedOrder(t, mock, Order{
		OrderID:   "123456789012345678901234",
		OrderCode: "ORD-123",
		Summary:   []SummaryEntry{{Label: "Order ID", Value: "ORD-123"}},
		Version:   1,
	})

	for _, id := range []string{"123", "ORD-123"} {
		o, err := r.Resolve(context.Background(), id)
		if err != nil {
			t.Fatalf("resolve(%q): %v", id, err)
		}
		if o.Code() != "ORD-123" {
			t.Fatalf("resolve(%q) found wrong order %s", id, o.Code())
		}
	}
}

func TestResolve_HexMissThenCodeFallback(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")
	r := NewResolver(store)

	// human code that is itself a valid 24-hex string, with no order owning
	// that system id: the direct lookup misses, the code lookup must hit
	seedOrder(t, mock, Order{
		OrderID:   "999999999999999999999999",
		OrderCode: "cafecafecafecafecafecafe",
		Summary:   []SummaryEntry{{Label: "Order ID", Value: "cafecafecafecafecafecafe"}},
		Version:   1,
	})

	o, err := r.Resolve(context.Background(), "cafecafecafecafecafecafe")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if o.OrderID != "999999999999999999999999" {
		t.Fatalf("expected code fallback hit, got %s", o.OrderID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	mock := newMockDynamo()
	store := NewStore(mock, "orders")
	r := NewResolver(store)

	for _, id := range []string{"nope", "ORD-does-not-exist", "!!!", ""} {
		_, err := r.Resolve(context.Background(), id)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("resolve(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestResolve_StorageFailureIsNotNotFound(t *testing.T) {
	mock := newMockDynamo()
	mock.down = true
	store := NewStore(mock, "orders")
	r := NewResolver(store)

	_, err := r.Resolve(context.Background(), "ORD-123")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("storage failure must not collapse into not-found")
	}
}
