package controllers

import (
	"net/http"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the customer's anonymous session id; the cart
// is owned exclusively by that session.
const SessionHeader = "X-Session-ID"

// CartController handles HTTP requests for session carts.
type CartController struct {
	cartService  services.CartService
	storeService services.StoreService
}

// NewCartController creates a new CartController.
func NewCartController(cartService services.CartService, storeService services.StoreService) *CartController {
	return &CartController{cartService: cartService, storeService: storeService}
}

func (cc *CartController) session(ctx *gin.Context) (storeID, sessionID string, ok bool) {
	store, svcErr := cc.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return "", "", false
	}
	sessionID = ctx.GetHeader(SessionHeader)
	if sessionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return "", "", false
	}
	return store.ID.String(), sessionID, true
}

func cartPayload(cart *models.Cart) gin.H {
	return gin.H{
		"cart":       cart,
		"subtotal":   cart.Subtotal(),
		"discount":   cart.Discount(),
		"total":      cart.Total(),
		"item_count": cart.ItemCount(),
	}
}

// GetCart handles GET /stores/:slug/cart.
func (cc *CartController) GetCart(ctx *gin.Context) {
	storeID, sessionID, ok := cc.session(ctx)
	if !ok {
		return
	}

	cart, svcErr := cc.cartService.GetCart(ctx.Request.Context(), storeID, sessionID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cartPayload(cart))
}

// AddItem handles POST /stores/:slug/cart/items.
func (cc *CartController) AddItem(ctx *gin.Context) {
	storeID, sessionID, ok := cc.session(ctx)
	if !ok {
		return
	}

	var req models.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.AddItem(ctx.Request.Context(), storeID, sessionID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cartPayload(cart))
}

// UpdateItem handles PUT /stores/:slug/cart/items/:itemID.
func (cc *CartController) UpdateItem(ctx *gin.Context) {
	storeID, sessionID, ok := cc.session(ctx)
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.UpdateItemQuantity(ctx.Request.Context(), storeID, sessionID, ctx.Param("itemID"), req.Quantity)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cartPayload(cart))
}

// RemoveItem handles DELETE /stores/:slug/cart/items/:itemID.
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	storeID, sessionID, ok := cc.session(ctx)
	if !ok {
		return
	}

	cart, svcErr := cc.cartService.RemoveItem(ctx.Request.Context(), storeID, sessionID, ctx.Param("itemID"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cartPayload(cart))
}

// ApplyCoupon handles POST /stores/:slug/cart/coupon.
func (cc *CartController) ApplyCoupon(ctx *gin.Context) {
	storeID, sessionID, ok := cc.session(ctx)
	if !ok {
		return
	}

	var req models.ApplyCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, svcErr := cc.cartService.ApplyCoupon(ctx.Request.Context(), storeID, sessionID, req.Code)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cartPayload(cart))
}

// RemoveCoupon handles DELETE /stores/:slug/cart/coupon.
func (cc *CartController) RemoveCoupon(ctx *gin.Context) {
	storeID, sessionID, ok := cc.session(ctx)
	if !ok {
		return
	}

	cart, svcErr := cc.cartService.RemoveCoupon(ctx.Request.Context(), storeID, sessionID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, cartPayload(cart))
}
