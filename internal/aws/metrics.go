package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricNamespace groups all storefront metrics in CloudWatch.
const MetricNamespace = "Storefront/Orders"

// Metrics emits counters to CloudWatch. Emission is best-effort: callers
// log failures but never fail the request because of them.
type Metrics struct {
	client  CloudWatchAPI
	nowFunc func() time.Time
}

// NewMetrics returns a Metrics emitter.
func NewMetrics(client CloudWatchAPI) *Metrics {
	return &Metrics{
		client:  client,
		nowFunc: time.Now,
	}
}

// Count emits a single count datapoint with optional dimensions.
func (m *Metrics) Count(ctx context.Context, name string, value float64, dims map[string]string) error {
	now := m.nowFunc()

	dimensions := make([]cwtypes.Dimension, 0, len(dims))
	for k, v := range dims {
		k, v := k, v
		dimensions = append(dimensions, cwtypes.Dimension{Name: &k, Value: &v})
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: awsString(MetricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: &name,
				Value:      &value,
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: dimensions,
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

// OrderCreated emits the order-created counter tagged by payment method.
func (m *Metrics) OrderCreated(ctx context.Context, paymentMethod string) error {
	return m.Count(ctx, "OrderCreated", 1, map[string]string{"PaymentMethod": paymentMethod})
}

// StatusChanged emits the status-transition counter tagged by new status.
func (m *Metrics) StatusChanged(ctx context.Context, status string) error {
	return m.Count(ctx, "OrderStatusChanged", 1, map[string]string{"Status": status})
}
