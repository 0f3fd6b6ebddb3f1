package model

// StatusEvent is delivered to notification subscribers when an order changes.
type StatusEvent struct {
	OrderID     string      `json:"order_id"`
	Status      OrderStatus `json:"status"`
	CanteenID   string      `json:"canteen_id"`
	StudentID   string      `json:"student_id,omitempty"`
	TokenNumber int         `json:"token_number,omitempty"`
}

// EventFor builds the status event for order.
func EventFor(o Order) StatusEvent {
	return StatusEvent{
		OrderID:     o.OrderID,
		Status:      o.Status,
		CanteenID:   o.CanteenID,
		StudentID:   o.StudentID,
		TokenNumber: o.TokenNumber,
	}
}
