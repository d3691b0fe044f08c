package order

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"orderflow/internal/config"
	"orderflow/internal/enrichment"
	"orderflow/internal/messaging"
	"orderflow/internal/order/controller"
	"orderflow/internal/order/repository"
	"orderflow/internal/order/usecase"
)

func NewModule(pool *pgxpool.Pool, publisher *messaging.Publisher, cfg *config.Config, logger *zap.Logger) (*controller.OrderController, error) {
	orderRepo := repository.NewPostgresOrderRepository(pool)
	enricher := enrichment.NewClient(cfg.Enrichment, logger)

	metrics, err := usecase.NewMetrics()
	if err != nil {
		return nil, err
	}

	createOrder := usecase.NewCreateOrderUseCase(orderRepo, enricher, publisher, metrics, logger)

	return controller.NewOrderController(createOrder, orderRepo, logger), nil
}
