package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGateway_CreateOrder_ConvertsToPaise(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, _, ok := r.BasicAuth()
		if !ok || user != "key-1" {
			t.Fatalf("missing basic auth")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_xyz",
			Amount:   int64(gotBody["amount"].(float64)),
			Currency: "INR",
			Status:   "created",
		})
	}))
	defer srv.Close()

	g := NewGateway("key-1", "secret-1", srv.URL)
	out, err := g.CreateOrder(context.Background(), 1999.50, "", "receipt-9")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if out.ID != "order_xyz" {
		t.Fatalf("unexpected id: %s", out.ID)
	}
	if gotBody["amount"].(float64) != 199950 {
		t.Fatalf("expected 199950 paise, got %v", gotBody["amount"])
	}
	if gotBody["currency"] != "INR" {
		t.Fatalf("expected INR default, got %v", gotBody["currency"])
	}
}

func TestGateway_FetchPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay_42" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(GatewayPayment{ID: "pay_42", Status: PaymentCaptured})
	}))
	defer srv.Close()

	g := NewGateway("key-1", "secret-1", srv.URL)
	p, err := g.FetchPayment(context.Background(), "pay_42")
	if err != nil {
		t.Fatalf("fetch payment: %v", err)
	}
	if p.Status != PaymentCaptured {
		t.Fatalf("unexpected status: %s", p.Status)
	}
}

func TestGateway_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"BAD_REQUEST"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewGateway("key-1", "secret-1", srv.URL)
	if _, err := g.FetchPayment(context.Background(), "pay_0"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
