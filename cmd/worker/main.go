package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/ornamenta/storefront/internal/aws"
	"github.com/ornamenta/storefront/internal/config"
	"github.com/ornamenta/storefront/internal/logging"
)

func main() {
	log := logging.Must()
	defer log.Sync()

	cfg := config.Load()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatal("init aws clients", zap.Error(err))
	}

	p := NewProcessor(clients.DynamoDB, cfg.OrdersTable, nil, log)

	// RUN_LOCAL=true feeds one simulated SQS record for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"kind":"order.created","order_id":"000000000000000000000000"}`
		}
		ev := events.SQSEvent{Records: []events.SQSMessage{{Body: body}}}
		if err := p.Handle(context.Background(), ev); err != nil {
			log.Fatal("local handler", zap.Error(err))
		}
		return
	}

	lambda.Start(p.Handle)
}
