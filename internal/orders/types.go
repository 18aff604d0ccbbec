package orders

import (
	"strings"
	"time"
)

// Order statuses
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
	StatusRefunded   = "Refunded"
)

// Payment statuses accepted by the transition engine. The stored enum also
// admits "Completed" on historical records, but no transition produces it.
const (
	PaymentPending       = "Pending"
	PaymentSuccessful    = "Successful"
	PaymentFailed        = "Failed"
	PaymentRefunded      = "Refunded"
	PaymentPartiallyPaid = "Partially Paid"
)

// OrderStatuses is the full set a status transition may target.
var OrderStatuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusRefunded,
}

// PaymentStatuses is the set a payment transition may target.
var PaymentStatuses = []string{
	PaymentPending,
	PaymentSuccessful,
	PaymentFailed,
	PaymentRefunded,
	PaymentPartiallyPaid,
}

// UnknownSentinel fills payment fields synthesized for orders that were
// stored without a payment record.
const UnknownSentinel = "Unknown"

// SummaryLabelOrderID is the summary entry carrying the human order code.
const SummaryLabelOrderID = "Order ID"

// OrderCodePrefix prefixes generated human order codes.
const OrderCodePrefix = "ORD-"

// SummaryEntry is one label/value pair of the display-facing order summary.
type SummaryEntry struct {
	Label string `dynamodbav:"label" json:"label"`
	Value string `dynamodbav:"value" json:"value"`
}

// Customization is the tagged personalization payload of a line item:
// "engraving"/"text", "fingerprint", "image" or "combined". The tag is not
// enforced at the storage layer; unknown shapes pass through.
type Customization struct {
	Type  string `dynamodbav:"type" json:"type"`
	Text  string `dynamodbav:"text,omitempty" json:"text,omitempty"`
	Font  string `dynamodbav:"font,omitempty" json:"font,omitempty"`
	Image string `dynamodbav:"image,omitempty" json:"image,omitempty"`
	File  string `dynamodbav:"file,omitempty" json:"file,omitempty"`
	Notes string `dynamodbav:"notes,omitempty" json:"notes,omitempty"`
}

// LineItem is one purchased product entry within an order.
type LineItem struct {
	ProductName   string         `dynamodbav:"product_name" json:"name"`
	Price         float64        `dynamodbav:"price" json:"price"`
	Quantity      int            `dynamodbav:"quantity" json:"quantity"`
	Size          string         `dynamodbav:"size,omitempty" json:"size,omitempty"`
	Total         float64        `dynamodbav:"total" json:"total"`
	Image         string         `dynamodbav:"image,omitempty" json:"image,omitempty"`
	Customization *Customization `dynamodbav:"customization,omitempty" json:"customization,omitempty"`
}

// Customer is the snapshot captured at order time. Never re-synced to a
// user account.
type Customer struct {
	Name    string `dynamodbav:"name" json:"name"`
	Email   string `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Phone   string `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	Address string `dynamodbav:"address,omitempty" json:"address,omitempty"`
	City    string `dynamodbav:"city,omitempty" json:"city,omitempty"`
	State   string `dynamodbav:"state,omitempty" json:"state,omitempty"`
	ZipCode string `dynamodbav:"zip_code,omitempty" json:"zipCode,omitempty"`
	Country string `dynamodbav:"country,omitempty" json:"country,omitempty"`
}

// Payment is the embedded gateway record.
type Payment struct {
	PaymentID string `dynamodbav:"payment_id" json:"paymentId"`
	Method    string `dynamodbav:"method" json:"method"`
	Status    string `dynamodbav:"status" json:"status"`
}

// Order is the item stored in the orders table. order_code is a denormalized
// copy of the "Order ID" summary entry feeding the code index; the summary
// list stays the source of truth.
type Order struct {
	OrderID     string         `dynamodbav:"order_id"`             // PK, 24-char hex
	OrderCode   string         `dynamodbav:"order_code,omitempty"` // GSI order_code-index
	Summary     []SummaryEntry `dynamodbav:"summary,omitempty"`
	Items       []LineItem     `dynamodbav:"items,omitempty"`
	LegacyItems []LegacyItem   `dynamodbav:"legacy_items,omitempty"` // dashboard-generation records
	Customer    Customer       `dynamodbav:"customer"`
	Payment     *Payment       `dynamodbav:"payment,omitempty"`
	Status      string         `dynamodbav:"status"`
	TotalAmount float64        `dynamodbav:"total_amount"`
	Version     int64          `dynamodbav:"version,omitempty"` // optimistic concurrency; 0 on pre-versioning records
	CreatedAt   time.Time      `dynamodbav:"created_at"`
	UpdatedAt   time.Time      `dynamodbav:"updated_at"`
}

// Code returns the human order code: the "Order ID" summary entry when
// present, otherwise ORD-<system id>.
func (o *Order) Code() string {
	for _, entry := range o.Summary {
		if entry.Label == SummaryLabelOrderID && entry.Value != "" {
			return entry.Value
		}
	}
	return OrderCodePrefix + o.OrderID
}

// NormalizeStatus upper-cases the first character and lower-cases the rest,
// so "shipped", "Shipped" and "SHIPPED" all become "Shipped".
func NormalizeStatus(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func isValidStatus(s string, valid []string) bool {
	for _, v := range valid {
		if s == v {
			return true
		}
	}
	return false
}
