package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido tal como llega de la tienda.
type OrderItemRequest struct {
	Product  string          `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// PlaceOrderRequest entrada para colocar un pedido.
type PlaceOrderRequest struct {
	Items        []OrderItemRequest `json:"items"`
	Note         string             `json:"note"`
	DeliveryDate string             `json:"deliveryDate"`
}

// ChangeOrderStatusRequest entrada para transicionar el estado de un pedido.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	Product  string          `json:"product"`
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            int64               `json:"id"`
	ClientID      int64               `json:"clientId"`
	ClientName    string              `json:"clientName"`
	ClientCompany string              `json:"clientCompany"`
	ClientEmail   string              `json:"clientEmail"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Note          string              `json:"note,omitempty"`
	DeliveryDate  string              `json:"deliveryDate,omitempty"`
	Estado        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
