package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
)

// SpendingHandler serves a student's spending history.
type SpendingHandler struct {
	facade SpendingFacade
}

// NewSpendingHandler constructs SpendingHandler.
func NewSpendingHandler(facade SpendingFacade) *SpendingHandler {
	return &SpendingHandler{facade: facade}
}

// Analytics handles GET /api/spending/analytics.
func (h *SpendingHandler) Analytics(c *gin.Context) {
	summary, err := h.facade.Spending(c.Request.Context(), CurrentActor(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Bills handles GET /api/spending/bills.
func (h *SpendingHandler) Bills(c *gin.Context) {
	bills, err := h.facade.Bills(c.Request.Context(), CurrentActor(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	if bills == nil {
		bills = []model.Bill{}
	}
	c.JSON(http.StatusOK, bills)
}

// AnalyticsHandler serves management reports. The optional canteen_id query
// narrows a report to one canteen.
type AnalyticsHandler struct {
	facade AnalyticsFacade
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(facade AnalyticsFacade) *AnalyticsHandler {
	return &AnalyticsHandler{facade: facade}
}

// Revenue handles GET /api/management/analytics/revenue.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	summary, err := h.facade.Revenue(c.Request.Context(), c.Query("canteen_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TopItems handles GET /api/management/analytics/top-items.
func (h *AnalyticsHandler) TopItems(c *gin.Context) {
	items, err := h.facade.TopItems(c.Request.Context(), c.Query("canteen_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []model.ItemSales{}
	}
	c.JSON(http.StatusOK, items)
}
