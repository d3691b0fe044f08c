package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"orderflow/internal/domain"
	"orderflow/internal/dto"
	"orderflow/internal/errors"
)

const orderColumns = `id, customer_name, product, quantity, price, status, enrichment_data, created_at, updated_at`

type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

// Create inserts an order and returns it as persisted; id, status and
// timestamps come from the database defaults.
func (r *PostgresOrderRepository) Create(ctx context.Context, req dto.CreateOrderRequest, price *float64, enrichmentData json.RawMessage) (*domain.Order, error) {
	query := `
		INSERT INTO orders (customer_name, product, quantity, price, enrichment_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns

	row := r.pool.QueryRow(ctx, query, req.CustomerName, req.Product, req.Quantity, price, []byte(enrichmentData))
	order, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	return order, nil
}

func (r *PostgresOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return order, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var enrichment []byte

	err := row.Scan(
		&order.ID, &order.CustomerName, &order.Product, &order.Quantity,
		&order.Price, &order.Status, &enrichment,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.EnrichmentData = enrichment
	return &order, nil
}
