package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersCreated metric.Int64Counter
	orderErrors   metric.Int64Counter
}

func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("orderflow/orders")

	ordersCreated, err := meter.Int64Counter("orders.created",
		metric.WithUnit("{order}"),
		metric.WithDescription("Total number of orders created"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating orders.created counter: %w", err)
	}

	orderErrors, err := meter.Int64Counter("orders.errors",
		metric.WithUnit("{error}"),
		metric.WithDescription("Total number of order creation errors"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating orders.errors counter: %w", err)
	}

	return &Metrics{
		ordersCreated: ordersCreated,
		orderErrors:   orderErrors,
	}, nil
}

func (m *Metrics) RecordOrderCreated(ctx context.Context, product string, quantity int) {
	m.ordersCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("product", product),
		attribute.Int("quantity", quantity),
	))
}

func (m *Metrics) RecordOrderError(ctx context.Context, product, errorType string) {
	if product == "" {
		product = "unknown"
	}
	m.orderErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("product", product),
		attribute.String("error.type", errorType),
	))
}
