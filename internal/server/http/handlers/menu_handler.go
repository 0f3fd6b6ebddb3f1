package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/dto"
)

// MenuHandler serves canteens and their catalogs.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler creates MenuHandler instance.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// Canteens handles GET /api/canteens.
func (h *MenuHandler) Canteens(c *gin.Context) {
	canteens, err := h.facade.Canteens(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if canteens == nil {
		canteens = []model.Canteen{}
	}
	c.JSON(http.StatusOK, canteens)
}

// Menu handles GET /api/menu/:canteen_id.
func (h *MenuHandler) Menu(c *gin.Context) {
	items, err := h.facade.Menu(c.Request.Context(), c.Param("canteen_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	c.JSON(http.StatusOK, items)
}

// Item handles GET /api/menu/item/:item_id.
func (h *MenuHandler) Item(c *gin.Context) {
	item, err := h.facade.MenuItem(c.Request.Context(), c.Param("item_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	item, err := h.facade.CreateMenuItem(c.Request.Context(), model.MenuItem{
		Name:      req.Name,
		CanteenID: req.CanteenID,
		Category:  req.Category,
		Price:     req.Price,
		Protein:   req.Protein,
		StockQty:  req.StockQty,
	}, CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PATCH /api/menu/:item_id.
func (h *MenuHandler) Update(c *gin.Context) {
	var req dto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	update := model.MenuItemUpdate{Price: req.Price, StockQty: req.StockQty, Available: req.Available}
	item, err := h.facade.UpdateMenuItem(c.Request.Context(), c.Param("item_id"), update, CurrentActor(c))
	if err != nil {
		// Nothing to change is a malformed request rather than a bad item.
		if update.IsEmpty() && errors.Is(err, domainErrors.ErrInvalidMenuItem) {
			badRequest(c, "no update data provided")
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}
