package checkout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ornamenta/storefront/internal/aws"
	"github.com/ornamenta/storefront/internal/orders"
	"github.com/ornamenta/storefront/internal/payments"
	"github.com/ornamenta/storefront/internal/validation"
)

// ErrIncompleteGatewayDetails: a razorpay-method request is missing one of
// the three gateway fields.
var ErrIncompleteGatewayDetails = errors.New("incomplete razorpay payment details")

// PaymentNotCapturedError: the gateway reports the payment in a state other
// than captured, so the order must not be accepted.
type PaymentNotCapturedError struct {
	Status string
}

func (e *PaymentNotCapturedError) Error() string {
	return fmt.Sprintf("payment not completed, gateway status %q", e.Status)
}

// GatewayClient is the slice of the payment gateway checkout needs.
type GatewayClient interface {
	VerifySignature(orderID, paymentID, signature string) bool
	FetchPayment(ctx context.Context, paymentID string) (*payments.GatewayPayment, error)
}

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev aws.OrderEvent) error
}

// MetricsEmitter emits order counters.
type MetricsEmitter interface {
	OrderCreated(ctx context.Context, paymentMethod string) error
}

// Service captures checkout requests as orders. Signature gating happens
// before any write; event publication and metrics are best-effort after the
// order is stored.
type Service struct {
	store     *orders.Store
	gateway   GatewayClient
	publisher EventPublisher
	metrics   MetricsEmitter
	log       *zap.Logger
	nowFunc   func() time.Time
}

// NewService wires a checkout service. publisher and metrics may be nil.
func NewService(store *orders.Store, gateway GatewayClient, publisher EventPublisher, metrics MetricsEmitter, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		gateway:   gateway,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		nowFunc:   time.Now,
	}
}

// Result is what a successful checkout reports back.
type Result struct {
	OrderID       string  `json:"orderId"`
	OrderCode     string  `json:"orderCode"`
	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus,omitempty"`
}

// CreateOrder validates payment gating, computes totals and persists the
// order. Nothing is written when the gateway signature fails or the payment
// is not captured.
func (s *Service) CreateOrder(ctx context.Context, req *validation.CreateOrderRequest) (*Result, error) {
	isGateway := req.Payment != nil && req.Payment.Method == payments.MethodRazorpay

	if isGateway {
		p := req.Payment
		if p.RazorpayOrderID == "" || p.RazorpayPaymentID == "" || p.RazorpaySignature == "" {
			return nil, ErrIncompleteGatewayDetails
		}
		if !s.gateway.VerifySignature(p.RazorpayOrderID, p.RazorpayPaymentID, p.RazorpaySignature) {
			return nil, payments.ErrSignatureMismatch
		}
		payment, err := s.gateway.FetchPayment(ctx, p.RazorpayPaymentID)
		if err != nil {
			return nil, fmt.Errorf("verify capture with gateway: %w", err)
		}
		if payment.Status != payments.PaymentCaptured {
			return nil, &PaymentNotCapturedError{Status: payment.Status}
		}
	}

	items, total := buildLineItems(req.Items)

	orderID := orders.NewOrderID()
	summary := buildSummary(req.Summary, orderID, s.nowFunc())

	order := orders.Order{
		OrderID: orderID,
		Summary: summary,
		Items:   items,
		Customer: orders.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
			City:    req.Customer.City,
			State:   req.Customer.State,
			ZipCode: req.Customer.ZipCode,
			Country: req.Customer.Country,
		},
		Payment:     buildPayment(req.Payment, isGateway),
		Status:      orders.StatusPending,
		TotalAmount: total,
	}

	if err := s.store.Create(ctx, &order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	s.afterCreate(ctx, &order)

	result := &Result{
		OrderID:     order.OrderID,
		OrderCode:   order.Code(),
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
	}
	if order.Payment != nil {
		result.PaymentStatus = order.Payment.Status
	}
	return result, nil
}

// afterCreate runs the best-effort follow-ups. The stored order stands even
// when these fail.
func (s *Service) afterCreate(ctx context.Context, order *orders.Order) {
	method := orders.UnknownSentinel
	if order.Payment != nil {
		method = order.Payment.Method
	}

	if s.publisher != nil {
		ev := aws.OrderEvent{
			Kind:          aws.EventOrderCreated,
			OrderID:       order.OrderID,
			OrderCode:     order.Code(),
			Status:        order.Status,
			CustomerEmail: order.Customer.Email,
		}
		if err := s.publisher.PublishOrderEvent(ctx, ev); err != nil {
			s.log.Warn("order event publish failed",
				zap.String("order_id", order.OrderID), zap.Error(err))
		}
	}

	if s.metrics != nil {
		if err := s.metrics.OrderCreated(ctx, method); err != nil {
			s.log.Warn("order metric emit failed",
				zap.String("order_id", order.OrderID), zap.Error(err))
		}
	}
}

func buildLineItems(reqItems []validation.OrderItemRequest) ([]orders.LineItem, float64) {
	items := make([]orders.LineItem, 0, len(reqItems))
	var total float64
	for _, it := range reqItems {
		price := validation.ParsePrice(it.Price)
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := round2(price * float64(qty))
		total += lineTotal

		items = append(items, orders.LineItem{
			ProductName:   it.ProductName,
			Price:         price,
			Quantity:      qty,
			Size:          it.Size,
			Total:         lineTotal,
			Image:         it.Image,
			Customization: buildCustomization(it.Customization),
		})
	}
	return items, round2(total)
}

func buildCustomization(c *validation.CustomizationRequest) *orders.Customization {
	if c == nil {
		return nil
	}
	return &orders.Customization{
		Type:  c.Type,
		Text:  c.Text,
		Font:  c.Font,
		Image: c.Image,
		File:  c.File,
		Notes: c.Notes,
	}
}

// buildSummary keeps the caller's summary list and guarantees an "Order ID"
// entry, generating ORD-<id prefix> when the client sent none.
func buildSummary(reqSummary []validation.SummaryEntryRequest, orderID string, now time.Time) []orders.SummaryEntry {
	summary := make([]orders.SummaryEntry, 0, len(reqSummary)+2)
	hasCode := false
	hasDate := false
	for _, e := range reqSummary {
		if e.Label == orders.SummaryLabelOrderID && e.Value != "" {
			hasCode = true
		}
		if e.Label == "Order Date" {
			hasDate = true
		}
		summary = append(summary, orders.SummaryEntry{Label: e.Label, Value: e.Value})
	}
	if !hasCode {
		code := orders.OrderCodePrefix + strings.ToUpper(orderID[:8])
		summary = append([]orders.SummaryEntry{{Label: orders.SummaryLabelOrderID, Value: code}}, summary...)
	}
	if !hasDate {
		summary = append(summary, orders.SummaryEntry{Label: "Order Date", Value: now.Format("02/01/2006")})
	}
	return summary
}

func buildPayment(req *validation.PaymentRequest, isGateway bool) *orders.Payment {
	if req == nil {
		return nil
	}
	payment := &orders.Payment{
		Method: req.Method,
		Status: orders.PaymentPending,
	}
	switch {
	case isGateway:
		payment.PaymentID = req.RazorpayPaymentID
		payment.Status = orders.PaymentSuccessful
	case req.PaymentID != "":
		payment.PaymentID = req.PaymentID
	default:
		payment.PaymentID = orders.UnknownSentinel
	}
	return payment
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
