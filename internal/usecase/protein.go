package usecase

import (
	"context"
	"math"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/repository"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/pkg/knapsack"
)

// Executor runs CPU-bound work off the calling goroutine.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}

// ProteinRequest asks for the menu subset closest to a protein target.
type ProteinRequest struct {
	TargetGrams     int
	ExcludedItemIDs []string
	CanteenID       string
}

// ProteinPlan is the chosen subset and the protein it adds up to.
type ProteinPlan struct {
	Selected      []model.MenuItem
	AchievedGrams int
}

// ProteinUseCase plans meals that reach a protein target without exceeding it.
type ProteinUseCase struct {
	menu      repository.MenuRepository
	exec      Executor
	maxTarget int
}

// NewProteinUseCase constructs ProteinUseCase.
func NewProteinUseCase(menu repository.MenuRepository, exec Executor, cfg *config.Config) *ProteinUseCase {
	maxTarget := cfg.MaxProteinTarget
	if maxTarget <= 0 || maxTarget > knapsack.MaxTarget {
		maxTarget = knapsack.MaxTarget
	}
	return &ProteinUseCase{menu: menu, exec: exec, maxTarget: maxTarget}
}

// Optimize selects available items whose protein sum is the largest not above the target.
func (u *ProteinUseCase) Optimize(ctx context.Context, req ProteinRequest) (*ProteinPlan, error) {
	if req.TargetGrams < 0 {
		return nil, domainErrors.ErrInvalidTarget
	}
	if req.TargetGrams > u.maxTarget {
		return nil, domainErrors.ErrCapacityExceeded
	}

	catalog, err := u.menu.ListAvailable(ctx, req.CanteenID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(req.ExcludedItemIDs))
	for _, id := range req.ExcludedItemIDs {
		excluded[id] = struct{}{}
	}
	byID := make(map[string]model.MenuItem, len(catalog))
	items := make([]knapsack.Item, 0, len(catalog))
	for _, it := range catalog {
		if _, skip := excluded[it.ItemID]; skip {
			continue
		}
		byID[it.ItemID] = it
		items = append(items, knapsack.Item{ID: it.ItemID, Weight: int(math.Round(it.Protein))})
	}

	var result knapsack.Result
	if err := u.exec.Do(ctx, func() {
		result = knapsack.Solve(items, req.TargetGrams)
	}); err != nil {
		return nil, err
	}

	plan := &ProteinPlan{
		Selected:      make([]model.MenuItem, 0, len(result.Selected)),
		AchievedGrams: result.Total,
	}
	for _, it := range result.Selected {
		plan.Selected = append(plan.Selected, byID[it.ID])
	}
	return plan, nil
}
