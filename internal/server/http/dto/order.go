package dto

import "time"

// OrderItemRequest is a cart line sent at checkout.
type OrderItemRequest struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}

// CreateOrderRequest describes a checkout.
type CreateOrderRequest struct {
	CanteenID   string             `json:"canteen_id"`
	Items       []OrderItemRequest `json:"items"`
	TotalAmount float64            `json:"total_amount"`
}

// CreateOrderResponse tells the client what to pay and which token to collect with.
type CreateOrderResponse struct {
	OrderID     string    `json:"order_id"`
	TokenNumber int       `json:"token_number"`
	Amount      float64   `json:"amount"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// VerifyPaymentRequest carries the gateway reference.
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// StatusRequest asks for a status change.
type StatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse reports the status after a change.
type StatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// OrderResponse represents an order in listings.
type OrderResponse struct {
	OrderID     string             `json:"order_id"`
	StudentID   string             `json:"student_id"`
	CanteenID   string             `json:"canteen_id"`
	Items       []OrderItemRequest `json:"items"`
	TokenNumber int                `json:"token_number"`
	Status      string             `json:"status"`
	PaymentID   *string            `json:"payment_id,omitempty"`
	TotalAmount float64            `json:"total_amount"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	ExpiresAt   time.Time          `json:"expires_at"`
	AllowedNext []string           `json:"allowed_next,omitempty"`
}
