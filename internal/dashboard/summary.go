package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/ornamenta/storefront/internal/orders"
)

// recentLimit caps the recent-orders list on the summary payload.
const recentLimit = 10

// OrderLister is the slice of the order store the dashboard needs.
type OrderLister interface {
	List(ctx context.Context) ([]orders.Order, error)
}

// RecentOrder is the trimmed order row shown on the dashboard.
type RecentOrder struct {
	OrderID       string    `json:"order_id"`
	OrderCode     string    `json:"order_code"`
	CustomerName  string    `json:"customer_name"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary is the admin dashboard aggregate.
type Summary struct {
	TotalOrders     int              `json:"total_orders"`
	OrdersByStatus  map[string]int   `json:"orders_by_status"`
	PendingPayments int              `json:"pending_payments"`
	// Revenue counts only orders whose payment has settled.
	Revenue      float64       `json:"revenue"`
	RecentOrders []RecentOrder `json:"recent_orders"`
}

// Service computes dashboard aggregates over the order store.
type Service struct {
	orders OrderLister
}

// NewService returns a dashboard Service.
func NewService(orders OrderLister) *Service {
	return &Service{orders: orders}
}

// Summarize lists every order and folds it into the summary. The order store
// returns newest first, so the recent list is a prefix.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	summary := &Summary{
		TotalOrders:    len(all),
		OrdersByStatus: map[string]int{},
		RecentOrders:   []RecentOrder{},
	}
	for i := range all {
		o := &all[i]
		summary.OrdersByStatus[o.Status]++

		paymentStatus := orders.UnknownSentinel
		if o.Payment != nil {
			paymentStatus = o.Payment.Status
		}
		switch paymentStatus {
		case orders.PaymentSuccessful:
			summary.Revenue += o.TotalAmount
		case orders.PaymentPending:
			summary.PendingPayments++
		}

		if len(summary.RecentOrders) < recentLimit {
			summary.RecentOrders = append(summary.RecentOrders, RecentOrder{
				OrderID:       o.OrderID,
				OrderCode:     o.Code(),
				CustomerName:  o.Customer.Name,
				Status:        o.Status,
				PaymentStatus: paymentStatus,
				TotalAmount:   o.TotalAmount,
				CreatedAt:     o.CreatedAt,
			})
		}
	}
	return summary, nil
}
