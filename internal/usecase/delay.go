package usecase

import (
	"context"
	"time"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
)

const defaultPriorityThreshold = 15 * time.Minute

var delayedStatuses = []model.OrderStatus{
	model.OrderStatusRequested,
	model.OrderStatusPreparing,
}

// DelayMonitor flags orders that have waited too long in the kitchen.
type DelayMonitor struct {
	orders    repository.OrderRepository
	threshold time.Duration
}

// NewDelayMonitor constructs DelayMonitor.
func NewDelayMonitor(orders repository.OrderRepository, cfg *config.Config) *DelayMonitor {
	threshold := cfg.PriorityThreshold
	if threshold <= 0 {
		threshold = defaultPriorityThreshold
	}
	return &DelayMonitor{orders: orders, threshold: threshold}
}

// PriorityOrders returns REQUESTED and PREPARING orders of canteenID created
// strictly before now-threshold. A non-positive threshold uses the default.
func (m *DelayMonitor) PriorityOrders(ctx context.Context, canteenID string, now time.Time, threshold time.Duration) ([]model.Order, error) {
	if threshold <= 0 {
		threshold = m.threshold
	}
	orders, err := m.orders.ListByCanteen(ctx, canteenID, delayedStatuses)
	if err != nil {
		return nil, err
	}

	result := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Age(now) > threshold {
			result = append(result, o)
		}
	}
	return result, nil
}
