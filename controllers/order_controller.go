package controllers

import (
	"net/http"

	"github.com/Mathdino/cardapio-backend/middleware"
	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for checkout, order history, and
// the dashboard order flow.
type OrderController struct {
	orderService    services.OrderService
	scheduleService services.ScheduleService
	storeService    services.StoreService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService, scheduleService services.ScheduleService, storeService services.StoreService) *OrderController {
	return &OrderController{
		orderService:    orderService,
		scheduleService: scheduleService,
		storeService:    storeService,
	}
}

// GetSlots handles GET /stores/:slug/slots: the bookable pickup/delivery
// times for the caller's current cart.
func (oc *OrderController) GetSlots(ctx *gin.Context) {
	store, svcErr := oc.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	sessionID := ctx.GetHeader(SessionHeader)
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return
	}

	slots, svcErr := oc.scheduleService.AvailableSlots(ctx.Request.Context(), store.ID, sessionID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"days": slots})
}

// Checkout handles POST /stores/:slug/orders.
func (oc *OrderController) Checkout(ctx *gin.Context) {
	store, svcErr := oc.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	var req models.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.PlaceOrder(ctx.Request.Context(), store.ID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrder handles GET /orders/:code (customer tracking view).
func (oc *OrderController) GetOrder(ctx *gin.Context) {
	order, svcErr := oc.orderService.GetOrderByCode(ctx.Request.Context(), ctx.Param("code"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// ListCustomerOrders handles GET /stores/:slug/orders?phone= (customer
// history view).
func (oc *OrderController) ListCustomerOrders(ctx *gin.Context) {
	store, svcErr := oc.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	phone := ctx.Query("phone")
	if phone == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Phone is required"})
		return
	}

	page, limit := parsePaginationParams(ctx)
	orders, total, svcErr := oc.orderService.ListCustomerOrders(ctx.Request.Context(), store.ID, phone, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta":   paginationMeta(page, limit, total),
	})
}

// ListStoreOrders handles GET /dashboard/orders (owner). The dashboard
// polls this endpoint on a fixed interval and diffs ids to spot new
// orders.
func (oc *OrderController) ListStoreOrders(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status := models.OrderStatus(ctx.Query("status"))
	page, limit := parsePaginationParams(ctx)

	orders, total, svcErr := oc.orderService.ListStoreOrders(ctx.Request.Context(), storeID, status, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"meta":   paginationMeta(page, limit, total),
	})
}

// UpdateOrderStatus handles PATCH /dashboard/orders/:id/status (owner).
func (oc *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	orderID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := oc.orderService.UpdateStatus(ctx.Request.Context(), storeID, orderID, req.Status); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
