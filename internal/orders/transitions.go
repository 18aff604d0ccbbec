package orders

import (
	"context"
)

// TransitionResult is what a successful transition reports back to the
// caller: the resolved human code and the state that was applied.
type TransitionResult struct {
	OrderCode     string `json:"id"`
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

// Engine validates and applies status and payment-status changes.
//
// There is deliberately no transition graph: any state is reachable from any
// other by direct overwrite, matching the system this replaces. The only
// write guard is the version counter.
type Engine struct {
	store *Store
}

// NewEngine returns an Engine over the given store.
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// ApplyStatusChange normalizes requested, validates it against the six order
// statuses and persists it. The order is mutated in place on success.
// Returns *InvalidStatusError without touching storage when the value is
// outside the set; ErrVersionConflict when a concurrent writer won.
func (e *Engine) ApplyStatusChange(ctx context.Context, order *Order, requested string) (*TransitionResult, error) {
	normalized := NormalizeStatus(requested)
	if !isValidStatus(normalized, OrderStatuses) {
		return nil, &InvalidStatusError{Requested: requested, Valid: OrderStatuses}
	}

	if err := e.store.UpdateStatus(ctx, order.OrderID, normalized, order.Version); err != nil {
		return nil, err
	}

	order.Status = normalized
	order.Version++

	return &TransitionResult{
		OrderCode: order.Code(),
		Status:    normalized,
	}, nil
}

// ApplyPaymentStatusChange is the payment-side twin of ApplyStatusChange,
// validated against the five payment statuses. Orders stored without a
// payment record get one synthesized with Unknown method and transaction id.
func (e *Engine) ApplyPaymentStatusChange(ctx context.Context, order *Order, requested string) (*TransitionResult, error) {
	normalized := NormalizeStatus(requested)
	if !isValidStatus(normalized, PaymentStatuses) {
		return nil, &InvalidStatusError{Requested: requested, Valid: PaymentStatuses}
	}

	payment := order.Payment
	if payment == nil {
		payment = &Payment{
			PaymentID: UnknownSentinel,
			Method:    UnknownSentinel,
		}
	}
	payment.Status = normalized

	if err := e.store.UpdatePayment(ctx, order.OrderID, *payment, order.Version); err != nil {
		return nil, err
	}

	order.Payment = payment
	order.Version++

	return &TransitionResult{
		OrderCode:     order.Code(),
		PaymentStatus: normalized,
		PaymentMethod: payment.Method,
	}, nil
}
