package dto

// ProteinPlanRequest asks for a meal reaching a protein target.
type ProteinPlanRequest struct {
	TargetProtein int      `json:"target_protein"`
	ExcludedItems []string `json:"excluded_items"`
	CanteenID     string   `json:"canteen_id"`
}

// PlannedItem is one selected menu entry.
type PlannedItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	CanteenID string  `json:"canteen_id"`
	Price     float64 `json:"price"`
	Protein   float64 `json:"protein"`
}

// ProteinPlanResponse is the chosen subset.
type ProteinPlanResponse struct {
	SelectedItems []PlannedItem `json:"selected_items"`
	AchievedGrams int           `json:"achieved_grams"`
}
