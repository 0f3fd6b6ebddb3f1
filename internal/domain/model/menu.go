package model

// Canteen is a campus outlet that owns a menu.
type Canteen struct {
	CanteenID      string `json:"canteen_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	OperatingHours string `json:"operating_hours"`
}

// MenuItem is a catalog entry served by a canteen.
type MenuItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	CanteenID string  `json:"canteen_id"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Protein   float64 `json:"protein"`
	StockQty  int     `json:"stock_qty"`
	Available bool    `json:"available"`
}

// MenuItemUpdate carries the fields kitchen staff may change. Nil fields are left untouched.
type MenuItemUpdate struct {
	Price     *float64
	StockQty  *int
	Available *bool
}

// IsEmpty reports whether the update changes nothing.
func (u MenuItemUpdate) IsEmpty() bool {
	return u.Price == nil && u.StockQty == nil && u.Available == nil
}
