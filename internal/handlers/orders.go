package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ornamenta/storefront/internal/aws"
	"github.com/ornamenta/storefront/internal/checkout"
	"github.com/ornamenta/storefront/internal/orders"
	"github.com/ornamenta/storefront/internal/validation"
)

type orderDeps struct {
	validate  *validatorv10.Validate
	checkout  *checkout.Service
	store     *orders.Store
	resolver  *orders.Resolver
	engine    *orders.Engine
	publisher *aws.Publisher
	metrics   *aws.Metrics
	log       *zap.Logger
}

// registerOrderRoutes wires checkout, tracking and the admin order surface.
// The :id parameter on every route accepts either identifier generation; the
// resolver sorts it out.
func registerOrderRoutes(api, admin *gin.RouterGroup, d orderDeps) {
	api.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
			return
		}

		result, err := d.checkout.CreateOrder(ctx, &req)
		if err != nil {
			writeCheckoutError(c, err)
			return
		}

		c.Header("Location", "/api/orders/"+result.OrderID)
		c.JSON(http.StatusCreated, result)
	})

	api.GET("/track/:id", func(c *gin.Context) {
		order, err := d.resolver.Resolve(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, trackingView(order))
	})

	admin.GET("/orders", func(c *gin.Context) {
		all, err := d.store.List(c.Request.Context())
		if err != nil {
			writeOrderError(c, err)
			return
		}
		views := make([]gin.H, 0, len(all))
		for i := range all {
			views = append(views, orderView(&all[i]))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views, "count": len(views)})
	})

	admin.GET("/orders/:id", func(c *gin.Context) {
		order, err := d.resolver.Resolve(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, orderView(order))
	})

	admin.PUT("/orders/:id/status", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.StatusUpdateRequest
		if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
			return
		}

		order, err := d.resolver.Resolve(ctx, c.Param("id"))
		if err != nil {
			writeOrderError(c, err)
			return
		}

		result, err := d.engine.ApplyStatusChange(ctx, order, req.Status)
		if err != nil {
			writeOrderError(c, err)
			return
		}

		d.afterTransition(ctx, order, aws.EventOrderStatusChanged)
		c.JSON(http.StatusOK, result)
	})

	admin.PUT("/orders/:id/payment", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.StatusUpdateRequest
		if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
			return
		}

		order, err := d.resolver.Resolve(ctx, c.Param("id"))
		if err != nil {
			writeOrderError(c, err)
			return
		}

		result, err := d.engine.ApplyPaymentStatusChange(ctx, order, req.Status)
		if err != nil {
			writeOrderError(c, err)
			return
		}

		d.afterTransition(ctx, order, aws.EventPaymentStatusChanged)
		c.JSON(http.StatusOK, result)
	})

	admin.DELETE("/orders/:id", func(c *gin.Context) {
		ctx := c.Request.Context()

		order, err := d.resolver.Resolve(ctx, c.Param("id"))
		if err != nil {
			writeOrderError(c, err)
			return
		}
		if err := d.store.Delete(ctx, order.OrderID); err != nil {
			writeOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": order.OrderID})
	})
}

// afterTransition publishes the transition event and bumps the status
// counter. Best-effort: the applied transition stands even when these fail.
func (d orderDeps) afterTransition(ctx context.Context, order *orders.Order, kind string) {
	ev := aws.OrderEvent{
		Kind:          kind,
		OrderID:       order.OrderID,
		OrderCode:     order.Code(),
		Status:        order.Status,
		CustomerEmail: order.Customer.Email,
	}
	if order.Payment != nil {
		ev.PaymentStatus = order.Payment.Status
	}
	if err := d.publisher.PublishOrderEvent(ctx, ev); err != nil {
		d.log.Warn("transition event publish failed",
			zap.String("order_id", order.OrderID), zap.Error(err))
	}
	if err := d.metrics.StatusChanged(ctx, order.Status); err != nil {
		d.log.Warn("transition metric emit failed",
			zap.String("order_id", order.OrderID), zap.Error(err))
	}
}

// orderView is the admin projection: resolved code, adapted legacy items.
func orderView(order *orders.Order) gin.H {
	return gin.H{
		"orderId":     order.OrderID,
		"orderCode":   order.Code(),
		"summary":     order.Summary,
		"items":       order.CanonicalItems(),
		"customer":    order.Customer,
		"payment":     order.Payment,
		"status":      order.Status,
		"totalAmount": order.TotalAmount,
		"version":     order.Version,
		"createdAt":   order.CreatedAt,
		"updatedAt":   order.UpdatedAt,
	}
}

// trackingView is the public, customer-facing projection of an order.
func trackingView(order *orders.Order) gin.H {
	paymentStatus := orders.UnknownSentinel
	if order.Payment != nil {
		paymentStatus = order.Payment.Status
	}
	return gin.H{
		"orderCode":     order.Code(),
		"status":        order.Status,
		"paymentStatus": paymentStatus,
		"items":         order.CanonicalItems(),
		"totalAmount":   order.TotalAmount,
		"createdAt":     order.CreatedAt,
		"updatedAt":     order.UpdatedAt,
	}
}
