package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ornamenta/storefront/internal/checkout"
	"github.com/ornamenta/storefront/internal/orders"
	"github.com/ornamenta/storefront/internal/payments"
)

// writeOrderError maps order-layer errors to HTTP responses. Not-found and
// storage-down are kept distinct: a failed lookup must never read as a
// missing order.
func writeOrderError(c *gin.Context, err error) {
	var invalid *orders.InvalidStatusError
	switch {
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "invalid_status",
			"requested":     invalid.Requested,
			"validStatuses": invalid.Valid,
		})
	case errors.Is(err, orders.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "version_conflict"})
	case errors.Is(err, orders.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "detail": err.Error()})
	}
}

// writeCheckoutError maps checkout failures. Payment gating failures are
// client errors: the order was rejected before anything was written.
func writeCheckoutError(c *gin.Context, err error) {
	var notCaptured *checkout.PaymentNotCapturedError
	switch {
	case errors.Is(err, checkout.ErrIncompleteGatewayDetails):
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete_payment_details"})
	case errors.Is(err, payments.ErrSignatureMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_verification_failed"})
	case errors.As(err, &notCaptured):
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_not_captured", "gatewayStatus": notCaptured.Status})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order_creation_failed", "detail": err.Error()})
	}
}
