package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"orderflow/internal/domain"
	"orderflow/internal/dto"
	apperrors "orderflow/internal/errors"
	"orderflow/internal/messaging"
)

const validationMessage = "CustomerName, Product, and Quantity (> 0) are required."

// faultProduct is the reserved product name that forces a failure after
// validation, used to exercise the error-observability paths end to end.
const faultProduct = "error"

var tracer = otel.Tracer("orderflow/orders")

type OrderRepository interface {
	Create(ctx context.Context, req dto.CreateOrderRequest, price *float64, enrichmentData json.RawMessage) (*domain.Order, error)
}

type Enricher interface {
	Enrich(ctx context.Context, product string, quantity int) (*float64, json.RawMessage)
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event messaging.OrderCreatedEvent) error
}

type CreateOrderUseCase struct {
	orderRepo OrderRepository
	enricher  Enricher
	publisher EventPublisher
	metrics   *Metrics
	logger    *zap.Logger
}

func NewCreateOrderUseCase(
	orderRepo OrderRepository,
	enricher Enricher,
	publisher EventPublisher,
	metrics *Metrics,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		enricher:  enricher,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateOrder runs validation, fault-check, enrichment, persistence and
// publish, strictly in that order. Enrichment failures degrade the order to
// an absent price; persistence and publish failures are fatal. An order that
// persisted but failed to publish stays persisted, there is no compensation.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "create_order")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.product", req.Product),
		attribute.Int("order.quantity", req.Quantity),
	)

	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Product) == "" || req.Quantity <= 0 {
		uc.metrics.RecordOrderError(ctx, req.Product, "validation_error")
		return nil, apperrors.NewValidationError(validationMessage)
	}

	if strings.EqualFold(req.Product, faultProduct) {
		span.SetStatus(codes.Error, "Simulated error for product 'error'")
		span.AddEvent("error.simulated")
		uc.metrics.RecordOrderError(ctx, req.Product, "simulated_error")
		return nil, apperrors.NewSimulatedError("Simulated error: product 'error' triggers failure")
	}

	price, enrichmentData := uc.enricher.Enrich(ctx, req.Product, req.Quantity)

	order, err := uc.orderRepo.Create(ctx, req, price, enrichmentData)
	if err != nil {
		span.SetStatus(codes.Error, "persisting order failed")
		uc.logger.Error("persisting order failed", zap.String("product", req.Product), zap.Error(err))
		return nil, err
	}

	event := messaging.OrderCreatedEvent{
		ID:       order.ID,
		Product:  order.Product,
		Quantity: order.Quantity,
		Price:    order.Price,
	}
	if err := uc.publisher.PublishOrderCreated(ctx, event); err != nil {
		span.SetStatus(codes.Error, "publishing order failed")
		uc.logger.Error("publishing order failed", zap.String("orderId", order.ID.String()), zap.Error(err))
		return nil, err
	}

	uc.metrics.RecordOrderCreated(ctx, order.Product, order.Quantity)
	uc.logger.Info("order created",
		zap.String("orderId", order.ID.String()),
		zap.String("product", order.Product),
		zap.Int("quantity", order.Quantity),
	)

	return order, nil
}
