package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderflow/internal/domain"
	"orderflow/internal/dto"
	apperrors "orderflow/internal/errors"
)

// GenericErrorMessage is the fixed body for every unexpected failure; the
// detail is only visible through traces and logs, never the response.
const GenericErrorMessage = "An unexpected error occurred."

type OrderCreator interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*domain.Order, error)
}

type OrderReader interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type OrderController struct {
	creator OrderCreator
	reader  OrderReader
	logger  *zap.Logger
}

func NewOrderController(creator OrderCreator, reader OrderReader, logger *zap.Logger) *OrderController {
	return &OrderController{
		creator: creator,
		reader:  reader,
		logger:  logger,
	}
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	order, err := c.creator.CreateOrder(r.Context(), req)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			c.writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		// Simulated, persistence and publish failures all collapse to the
		// same opaque response.
		c.logger.Error("create order failed", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, GenericErrorMessage)
		return
	}

	w.Header().Set("Location", "/orders/"+order.ID.String())
	c.writeJSON(w, http.StatusCreated, order)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.reader.ListAll(r.Context())
	if err != nil {
		c.logger.Error("listing orders failed", zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, GenericErrorMessage)
		return
	}

	c.writeJSON(w, http.StatusOK, orders)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// Not a UUID means the resource cannot exist.
		w.WriteHeader(http.StatusNotFound)
		return
	}

	order, err := c.reader.GetByID(r.Context(), id)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		c.logger.Error("getting order failed", zap.String("orderId", id.String()), zap.Error(err))
		c.writeError(w, http.StatusInternalServerError, GenericErrorMessage)
		return
	}

	c.writeJSON(w, http.StatusOK, order)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, errorResponse{Error: message})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
