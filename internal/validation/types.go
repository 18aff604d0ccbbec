package validation

// OrderItemRequest is one line item of a checkout request. Price arrives as
// the storefront renders it, possibly currency-formatted ("₹1,999.00"); it
// is sanitized before any arithmetic.
type OrderItemRequest struct {
	ProductName   string                `json:"productName" validate:"required"`
	Price         string                `json:"price" validate:"required"`
	Quantity      int                   `json:"quantity" validate:"required,min=1"`
	Size          string                `json:"size,omitempty"`
	Image         string                `json:"image,omitempty"`
	Customization *CustomizationRequest `json:"customization,omitempty"`
}

// CustomizationRequest carries the personalization payload. Type is free-form
// at this layer; unknown shapes pass through unchanged.
type CustomizationRequest struct {
	Type  string `json:"type,omitempty"`
	Text  string `json:"text,omitempty"`
	Font  string `json:"font,omitempty"`
	Image string `json:"image,omitempty"`
	File  string `json:"file,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// SummaryEntryRequest is one label/value summary pair.
type SummaryEntryRequest struct {
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// CustomerRequest is the customer snapshot captured at order time.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// PaymentRequest declares how the order was paid. Razorpay-method requests
// must carry the three gateway fields; checkout enforces that.
type PaymentRequest struct {
	Method            string `json:"method" validate:"required"`
	PaymentID         string `json:"paymentId,omitempty"`
	RazorpayOrderID   string `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"razorpay_signature,omitempty"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	Items       []OrderItemRequest    `json:"orderData" validate:"required,min=1,dive"`
	Summary     []SummaryEntryRequest `json:"orderSummary,omitempty" validate:"omitempty,dive"`
	Customer    CustomerRequest       `json:"customerDetails" validate:"required"`
	Payment     *PaymentRequest       `json:"paymentDetails,omitempty"`
	TotalAmount float64               `json:"totalAmount,omitempty"` // optional client claim, cross-checked against items
}

// StatusUpdateRequest is the payload for the two transition endpoints.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateGatewayOrderRequest is the payload for POST /api/payment/order.
type CreateGatewayOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency,omitempty"`
	Receipt  string  `json:"receipt,omitempty"`
}

// VerifyPaymentRequest is the payload for POST /api/payment/verify.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyEmailRequest is the payload for POST /api/auth/verify.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Audience    string  `json:"audience" validate:"required,oneof=kids women men unisex couples"`
	Category    string  `json:"category,omitempty"`
	Metal       string  `json:"metal,omitempty"`
	Image       string  `json:"image,omitempty"`
	InStock     bool    `json:"inStock"`
}
