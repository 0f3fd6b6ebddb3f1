package dto

// CreateMenuItemRequest adds an item to a canteen's catalog.
type CreateMenuItemRequest struct {
	Name      string  `json:"name"`
	CanteenID string  `json:"canteen_id"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Protein   float64 `json:"protein"`
	StockQty  int     `json:"stock_qty"`
}

// UpdateMenuItemRequest changes only the fields that are present.
type UpdateMenuItemRequest struct {
	Price     *float64 `json:"price"`
	StockQty  *int     `json:"stock_qty"`
	Available *bool    `json:"available"`
}
