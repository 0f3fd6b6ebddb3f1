package model

import "time"

// OrderStatus describes the pickup order lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusRequested      OrderStatus = "REQUESTED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusReady          OrderStatus = "READY"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// ParseOrderStatus converts raw value into a known status.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(raw)
	return status, status.IsValid()
}

// IsValid reports whether status is one of the declared values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusRequested, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderItem is a line of an order with the price captured at checkout.
type OrderItem struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"price_at_order"`
}

// Order is a student's pickup order in a single canteen.
type Order struct {
	OrderID     string      `json:"order_id"`
	StudentID   string      `json:"student_id"`
	CanteenID   string      `json:"canteen_id"`
	Items       []OrderItem `json:"items"`
	TokenNumber int         `json:"token_number"`
	Status      OrderStatus `json:"status"`
	PaymentID   *string     `json:"payment_id,omitempty"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Age returns how long ago the order was created relative to now.
func (o Order) Age(now time.Time) time.Duration {
	return now.Sub(o.CreatedAt)
}
