package controllers

import (
	"net/http"
	"strconv"

	"github.com/Mathdino/cardapio-backend/middleware"
	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-gonic/gin"
)

// CouponController handles HTTP requests for coupon operations.
type CouponController struct {
	couponService services.CouponService
	storeService  services.StoreService
}

// NewCouponController creates a new CouponController.
func NewCouponController(couponService services.CouponService, storeService services.StoreService) *CouponController {
	return &CouponController{couponService: couponService, storeService: storeService}
}

// ValidateCoupon handles POST /stores/:slug/coupons/validate (public,
// called by the storefront before checkout).
func (cc *CouponController) ValidateCoupon(ctx *gin.Context) {
	store, svcErr := cc.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	var req models.ValidateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, svcErr := cc.couponService.ValidateCoupon(ctx.Request.Context(), store.ID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// CreateCoupon handles POST /dashboard/coupons (owner).
func (cc *CouponController) CreateCoupon(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	coupon, svcErr := cc.couponService.CreateCoupon(ctx.Request.Context(), storeID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

// UpdateCoupon handles PUT /dashboard/coupons/:id (owner).
func (cc *CouponController) UpdateCoupon(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	couponID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	var req models.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	coupon, svcErr := cc.couponService.UpdateCoupon(ctx.Request.Context(), storeID, couponID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"coupon": coupon})
}

// ToggleCoupon handles PATCH /dashboard/coupons/:id/toggle (owner).
func (cc *CouponController) ToggleCoupon(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	couponID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	active, err := strconv.ParseBool(ctx.DefaultQuery("active", "true"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active flag"})
		return
	}

	if svcErr := cc.couponService.ToggleCoupon(ctx.Request.Context(), storeID, couponID, active); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon updated"})
}

// DeleteCoupon handles DELETE /dashboard/coupons/:id (owner).
func (cc *CouponController) DeleteCoupon(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	couponID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon ID"})
		return
	}

	if svcErr := cc.couponService.DeleteCoupon(ctx.Request.Context(), storeID, couponID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}

// ListCoupons handles GET /dashboard/coupons (owner).
func (cc *CouponController) ListCoupons(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, limit := parsePaginationParams(ctx)
	coupons, total, svcErr := cc.couponService.ListCoupons(ctx.Request.Context(), storeID, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"coupons": coupons,
		"meta":    paginationMeta(page, limit, total),
	})
}
