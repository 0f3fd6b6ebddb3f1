package usecase

import (
	"strings"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// CreateOrderInput is what a student submits at checkout.
type CreateOrderInput struct {
	StudentID   string
	CanteenID   string
	Items       []model.OrderItem
	TotalAmount float64
}

// ValidateOrderInput rejects orders that cannot be priced or fulfilled.
func ValidateOrderInput(in CreateOrderInput) error {
	if strings.TrimSpace(in.StudentID) == "" || strings.TrimSpace(in.CanteenID) == "" {
		return domainErrors.ErrInvalidOrder
	}
	if len(in.Items) == 0 || in.TotalAmount < 0 {
		return domainErrors.ErrInvalidOrder
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.ItemID) == "" || it.Quantity <= 0 || it.PriceAtOrder < 0 {
			return domainErrors.ErrInvalidOrder
		}
	}
	return nil
}

// AuthorizeCanteen allows management everywhere and crew only in their own canteen.
func AuthorizeCanteen(actor model.Actor, canteenID string) error {
	switch actor.Role {
	case model.RoleManagement:
		return nil
	case model.RoleCrew:
		if actor.CanteenID != "" && actor.CanteenID == canteenID {
			return nil
		}
	}
	return domainErrors.ErrUnauthorized
}
