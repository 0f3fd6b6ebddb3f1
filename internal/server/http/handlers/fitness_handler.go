package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/dto"
)

// FitnessHandler serves the protein planner.
type FitnessHandler struct {
	facade FitnessFacade
}

// NewFitnessHandler constructs FitnessHandler.
func NewFitnessHandler(facade FitnessFacade) *FitnessHandler {
	return &FitnessHandler{facade: facade}
}

// ProteinPlan handles POST /api/fitness/protein-plan.
func (h *FitnessHandler) ProteinPlan(c *gin.Context) {
	var req dto.ProteinPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	items, achieved, err := h.facade.PlanProtein(c.Request.Context(), req.TargetProtein, req.ExcludedItems, req.CanteenID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.ProteinPlanResponse{
		SelectedItems: make([]dto.PlannedItem, 0, len(items)),
		AchievedGrams: achieved,
	}
	for _, it := range items {
		resp.SelectedItems = append(resp.SelectedItems, dto.PlannedItem{
			ItemID:    it.ItemID,
			Name:      it.Name,
			CanteenID: it.CanteenID,
			Price:     it.Price,
			Protein:   it.Protein,
		})
	}
	c.JSON(http.StatusOK, resp)
}
