package usecase

import (
	"go.uber.org/fx"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newTransitionPolicy,
	NewTokenRegistry,
	NewAuthUseCase,
	NewOrderUseCase,
	NewDelayMonitor,
	NewProteinUseCase,
	NewSpendingUseCase,
	NewAnalyticsUseCase,
	NewMenuUseCase,
)

func newTransitionPolicy(cfg *config.Config) model.TransitionPolicy {
	if cfg.LegacyTransitions {
		return model.LegacyTransitions{}
	}
	return model.StrictTransitions{}
}
