package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ornamenta/storefront/internal/auth"
	"github.com/ornamenta/storefront/internal/aws"
	"github.com/ornamenta/storefront/internal/catalog"
	"github.com/ornamenta/storefront/internal/checkout"
	"github.com/ornamenta/storefront/internal/dashboard"
	"github.com/ornamenta/storefront/internal/orders"
	"github.com/ornamenta/storefront/internal/payments"
	"github.com/ornamenta/storefront/internal/validation"
)

// PaymentGateway is the gateway surface the HTTP layer needs.
type PaymentGateway interface {
	KeyID() string
	VerifySignature(orderID, paymentID, signature string) bool
	CreateOrder(ctx context.Context, amount float64, currency, receipt string) (*payments.GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*payments.GatewayPayment, error)
}

// HandlerConfig groups dependencies for the API routes.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI
	OrdersTable      string
	UsersTable       string
	ProductsTable    string
	QueueURL         string
	Gateway          PaymentGateway
	Codes            auth.CodeStore
	Tokens           *auth.TokenIssuer
	Logger           *zap.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(cfg.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v := validation.New()
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	resolver := orders.NewResolver(ordersStore)
	engine := orders.NewEngine(ordersStore)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
	metrics := aws.NewMetrics(cfg.CloudWatchClient)
	checkoutSvc := checkout.NewService(ordersStore, cfg.Gateway, publisher, metrics, cfg.Logger)
	authSvc := auth.NewService(auth.NewStore(cfg.DynamoDBClient, cfg.UsersTable), cfg.Codes, cfg.Tokens, cfg.Logger)
	products := catalog.NewStore(cfg.DynamoDBClient, cfg.ProductsTable)
	dashboardSvc := dashboard.NewService(ordersStore)

	api := r.Group("/api")
	admin := api.Group("", RequireAuth(cfg.Tokens))

	registerOrderRoutes(api, admin, orderDeps{
		validate:  v,
		checkout:  checkoutSvc,
		store:     ordersStore,
		resolver:  resolver,
		engine:    engine,
		publisher: publisher,
		metrics:   metrics,
		log:       cfg.Logger,
	})
	registerPaymentRoutes(api, v, cfg.Gateway)
	registerAuthRoutes(api, v, authSvc)
	registerProductRoutes(api, admin, v, products)
	registerDashboardRoutes(admin, dashboardSvc)

	return r
}

// requestLogger logs one line per request.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
