package dto

type CreateOrderRequest struct {
	CustomerName string `json:"customerName"`
	Product      string `json:"product"`
	Quantity     int    `json:"quantity"`
}
