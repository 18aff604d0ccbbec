package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"go.uber.org/zap"

	"github.com/ornamenta/storefront/internal/auth"
	"github.com/ornamenta/storefront/internal/aws"
	"github.com/ornamenta/storefront/internal/config"
	"github.com/ornamenta/storefront/internal/handlers"
	"github.com/ornamenta/storefront/internal/logging"
	"github.com/ornamenta/storefront/internal/payments"
)

func main() {
	log := logging.Must()
	defer log.Sync()

	cfg := config.Load()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatal("init aws clients", zap.Error(err))
	}

	codes, err := auth.NewRedisCodeStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("init redis code store", zap.Error(err))
	}
	defer codes.Close()

	r := handlers.NewRouter(handlers.HandlerConfig{
		DynamoDBClient:   clients.DynamoDB,
		SQSClient:        clients.SQS,
		CloudWatchClient: clients.CloudWatch,
		OrdersTable:      cfg.OrdersTable,
		UsersTable:       cfg.UsersTable,
		ProductsTable:    cfg.ProductsTable,
		QueueURL:         cfg.QueueURL,
		Gateway:          payments.NewGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.BaseURL),
		Codes:            codes,
		Tokens:           auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExp),
		Logger:           log,
	})

	// RUN_LOCAL=true runs a plain HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":" + cfg.Port
		log.Info("running local server", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			log.Fatal("local server", zap.Error(err))
		}
		return
	}

	adapter := ginadapter.New(r)
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
