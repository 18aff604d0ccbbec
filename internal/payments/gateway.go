package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// MethodRazorpay is the payment-method tag that triggers signature gating.
const MethodRazorpay = "razorpay"

// PaymentCaptured is the gateway-side status a payment must reach before an
// order carrying it may be accepted.
const PaymentCaptured = "captured"

// GatewayOrder is the gateway's order object. Amount is in paise.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayPayment is the gateway's payment object.
type GatewayPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
	Method  string `json:"method"`
}

// Gateway is a thin client for the Razorpay REST API.
type Gateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewGateway returns a Gateway. baseURL has no trailing slash.
func NewGateway(keyID, keySecret, baseURL string) *Gateway {
	return &Gateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// KeyID exposes the public key id for frontend checkout bootstrapping.
func (g *Gateway) KeyID() string { return g.keyID }

// VerifySignature checks a capture callback against this gateway's secret.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, g.keySecret)
}

// CreateOrder creates a gateway order for the given rupee amount. The
// gateway wants paise, so the amount is scaled by 100 and rounded.
func (g *Gateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	payload := map[string]interface{}{
		"amount":          int64(math.Round(amount * 100)),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.keySecret)

	var out GatewayOrder
	if err := g.do(req, &out); err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}
	return &out, nil
}

// FetchPayment retrieves the payment so its capture status can be checked.
func (g *Gateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)

	var out GatewayPayment
	if err := g.do(req, &out); err != nil {
		return nil, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}
	return &out, nil
}

func (g *Gateway) do(req *http.Request, out interface{}) error {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
