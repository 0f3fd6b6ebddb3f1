package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/model"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}

	actor := CurrentActor(c)
	order, err := h.facade.CreateOrder(c.Request.Context(), actor.UserID, req.CanteenID, items, req.TotalAmount)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		OrderID:     order.OrderID,
		TokenNumber: order.TokenNumber,
		Amount:      order.TotalAmount,
		ExpiresAt:   order.ExpiresAt,
	})
}

// VerifyPayment handles POST /api/orders/:id/verify-payment.
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	order, err := h.facade.ConfirmPayment(c.Request.Context(), c.Param("id"), req.PaymentID, req.Signature, CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{OrderID: order.OrderID, Status: string(order.Status)})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor := CurrentActor(c)
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.forActor(actor, *order)[0])
}

// Mine handles GET /api/orders/my.
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.facade.StudentOrders(c.Request.Context(), CurrentActor(c).UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// SetStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) SetStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	status, ok := model.ParseOrderStatus(req.Status)
	if !ok {
		badRequest(c, "unknown status")
		return
	}

	order, err := h.facade.SetStatus(c.Request.Context(), c.Param("id"), status, CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{OrderID: order.OrderID, Status: string(order.Status)})
}

// Pending handles GET /api/orders/pending/:canteen_id.
func (h *OrderHandler) Pending(c *gin.Context) {
	actor := CurrentActor(c)
	orders, err := h.facade.PendingOrders(c.Request.Context(), c.Param("canteen_id"), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.forActor(actor, orders...))
}

// Priority handles GET /api/orders/priority/:canteen_id.
func (h *OrderHandler) Priority(c *gin.Context) {
	var threshold time.Duration
	if raw := c.Query("threshold_minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			badRequest(c, "threshold_minutes must be a positive integer")
			return
		}
		threshold = time.Duration(minutes) * time.Minute
	}

	actor := CurrentActor(c)
	orders, err := h.facade.PriorityOrders(c.Request.Context(), c.Param("canteen_id"), threshold, actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.forActor(actor, orders...))
}

// ResolveToken handles GET /api/orders/token/:token.
func (h *OrderHandler) ResolveToken(c *gin.Context) {
	token, err := strconv.Atoi(c.Param("token"))
	if err != nil {
		badRequest(c, "token must be numeric")
		return
	}

	actor := CurrentActor(c)
	order, err := h.facade.ResolveToken(c.Request.Context(), token, actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.forActor(actor, *order)[0])
}

// forActor renders orders and, for staff, the statuses each may be moved to next.
func (h *OrderHandler) forActor(actor model.Actor, orders ...model.Order) []dto.OrderResponse {
	response := toOrderResponses(orders)
	if !actor.Role.IsStaff() {
		return response
	}
	for i, o := range orders {
		next := h.facade.AllowedNext(o.Status)
		response[i].AllowedNext = make([]string, 0, len(next))
		for _, s := range next {
			response[i].AllowedNext = append(response[i].AllowedNext, string(s))
		}
	}
	return response
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemRequest, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, dto.OrderItemRequest{
			ItemID:       it.ItemID,
			ItemName:     it.ItemName,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}
	return dto.OrderResponse{
		OrderID:     order.OrderID,
		StudentID:   order.StudentID,
		CanteenID:   order.CanteenID,
		Items:       items,
		TokenNumber: order.TokenNumber,
		Status:      string(order.Status),
		PaymentID:   order.PaymentID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		ExpiresAt:   order.ExpiresAt,
	}
}
