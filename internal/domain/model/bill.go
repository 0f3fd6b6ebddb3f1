package model

import "time"

// Bill is an immutable receipt written when payment is confirmed.
type Bill struct {
	BillID    string      `json:"bill_id"`
	OrderID   string      `json:"order_id"`
	StudentID string      `json:"student_id"`
	Amount    float64     `json:"amount"`
	Items     []OrderItem `json:"items"`
	Timestamp time.Time   `json:"timestamp"`
}

// SpendingSummary aggregates a student's confirmed payments per period.
type SpendingSummary struct {
	StudentID    string    `json:"student_id"`
	DailyTotal   float64   `json:"daily_total"`
	WeeklyTotal  float64   `json:"weekly_total"`
	MonthlyTotal float64   `json:"monthly_total"`
	LastUpdated  time.Time `json:"last_updated"`
}

// AsOf zeroes the totals whose period has ended by now.
func (s SpendingSummary) AsOf(now time.Time) SpendingSummary {
	if s.LastUpdated.IsZero() {
		return s
	}
	last, cur := s.LastUpdated.UTC(), now.UTC()
	lastYear, lastWeek := last.ISOWeek()
	curYear, curWeek := cur.ISOWeek()
	if last.Year() != cur.Year() || last.Month() != cur.Month() {
		s.MonthlyTotal = 0
	}
	if lastYear != curYear || lastWeek != curWeek {
		s.WeeklyTotal = 0
	}
	if last.Year() != cur.Year() || last.YearDay() != cur.YearDay() {
		s.DailyTotal = 0
	}
	return s
}

// RevenueSummary aggregates completed orders for management dashboards.
type RevenueSummary struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalOrders       int64   `json:"total_orders"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// ItemSales describes sales of a single menu item across completed orders.
type ItemSales struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}
