package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatusPending is the only status any order ever carries; the schema
// writes it by default and nothing in this service transitions it.
const StatusPending = "pending"

type Order struct {
	ID             uuid.UUID       `json:"id"`
	CustomerName   string          `json:"customerName"`
	Product        string          `json:"product"`
	Quantity       int             `json:"quantity"`
	Price          *float64        `json:"price"`
	Status         string          `json:"status"`
	EnrichmentData json.RawMessage `json:"enrichmentData"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
