package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ornamenta/storefront/internal/validation"
)

// registerPaymentRoutes wires the gateway-facing endpoints the storefront
// checkout widget calls before an order is submitted.
func registerPaymentRoutes(api *gin.RouterGroup, v *validatorv10.Validate, gateway PaymentGateway) {
	api.GET("/payment/key", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"keyId": gateway.KeyID()})
	})

	api.POST("/payment/order", func(c *gin.Context) {
		var req validation.CreateGatewayOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		order, err := gateway.CreateOrder(c.Request.Context(), req.Amount, req.Currency, req.Receipt)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "gateway_order_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, order)
	})

	api.POST("/payment/verify", func(c *gin.Context) {
		var req validation.VerifyPaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if !gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_verification_failed", "verified": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"verified": true})
	})
}
