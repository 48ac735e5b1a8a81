package controllers

import (
	"net/http"

	"github.com/Mathdino/cardapio-backend/middleware"
	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-gonic/gin"
)

// StoreController handles HTTP requests for store operations.
type StoreController struct {
	storeService services.StoreService
}

// NewStoreController creates a new StoreController.
func NewStoreController(storeService services.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

// GetStoreBySlug handles GET /stores/:slug (public storefront).
func (sc *StoreController) GetStoreBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")
	if slug == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Store slug is required"})
		return
	}

	store, svcErr := sc.storeService.GetBySlug(ctx.Request.Context(), slug)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"store": store})
}

// GetMyStore handles GET /dashboard/store (owner).
func (sc *StoreController) GetMyStore(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	store, svcErr := sc.storeService.GetByID(ctx.Request.Context(), storeID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"store": store})
}

// UpdateStore handles PUT /dashboard/store (owner).
func (sc *StoreController) UpdateStore(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	store, svcErr := sc.storeService.UpdateStore(ctx.Request.Context(), storeID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"store": store})
}

// SetBusinessHours handles PUT /dashboard/store/hours (owner).
func (sc *StoreController) SetBusinessHours(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BusinessHoursRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := sc.storeService.SetBusinessHours(ctx.Request.Context(), storeID, &req); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Business hours updated"})
}
