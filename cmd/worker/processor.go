package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/ornamenta/storefront/internal/aws"
	"github.com/ornamenta/storefront/internal/orders"
)

// Notifier delivers customer-facing notifications for order events. The
// default implementation only logs; an email sender plugs in here.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) Notify(ctx context.Context, email, subject, body string) error {
	n.log.Info("notification",
		zap.String("email", email),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// Processor consumes order events from SQS and fans out notifications.
type Processor struct {
	orderStore *orders.Store
	notifier   Notifier
	log        *zap.Logger
}

// NewProcessor creates a worker processor.
func NewProcessor(dynamo aws.DynamoDBAPI, ordersTable string, notifier Notifier, log *zap.Logger) *Processor {
	if notifier == nil {
		notifier = &logNotifier{log: log}
	}
	return &Processor{
		orderStore: orders.NewStore(dynamo, ordersTable),
		notifier:   notifier,
		log:        log,
	}
}

// Handle receives an SQS batch and processes each record. A failing record
// fails the batch so the runtime retries; poisoned bodies go to the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processRecord(ctx, rec); err != nil {
			p.log.Error("worker record failed",
				zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processRecord(ctx context.Context, rec events.SQSMessage) error {
	var ev aws.OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid event body: %w", err)
	}

	order, err := p.orderStore.GetByID(ctx, ev.OrderID)
	if err != nil {
		return fmt.Errorf("fetch order %s: %w", ev.OrderID, err)
	}
	if order == nil {
		// deleted between publish and delivery; nothing to notify about
		p.log.Warn("event for missing order", zap.String("order_id", ev.OrderID))
		return nil
	}
	if order.Customer.Email == "" {
		p.log.Info("order has no customer email, skipping notification",
			zap.String("order_id", ev.OrderID))
		return nil
	}

	subject, body, ok := renderNotification(ev, order)
	if !ok {
		p.log.Warn("unknown event kind", zap.String("kind", ev.Kind))
		return nil
	}

	if err := p.notifier.Notify(ctx, order.Customer.Email, subject, body); err != nil {
		return fmt.Errorf("notify for order %s: %w", ev.OrderID, err)
	}
	return nil
}

// renderNotification builds the message for an event against the current
// order state. Returns ok=false for kinds this worker does not handle.
func renderNotification(ev aws.OrderEvent, order *orders.Order) (subject, body string, ok bool) {
	code := order.Code()
	switch ev.Kind {
	case aws.EventOrderCreated:
		return fmt.Sprintf("Order %s confirmed", code),
			fmt.Sprintf("Thank you for your order %s. Total: %.2f.", code, order.TotalAmount),
			true
	case aws.EventOrderStatusChanged:
		return fmt.Sprintf("Order %s update", code),
			fmt.Sprintf("Your order %s is now %s.", code, order.Status),
			true
	case aws.EventPaymentStatusChanged:
		status := orders.UnknownSentinel
		if order.Payment != nil {
			status = order.Payment.Status
		}
		return fmt.Sprintf("Payment update for order %s", code),
			fmt.Sprintf("The payment for order %s is now %s.", code, status),
			true
	default:
		return "", "", false
	}
}
