package controllers

import (
	"net/http"

	"github.com/Mathdino/cardapio-backend/middleware"
	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for catalog operations.
type ProductController struct {
	productService services.ProductService
	storeService   services.StoreService
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService, storeService services.StoreService) *ProductController {
	return &ProductController{productService: productService, storeService: storeService}
}

// GetMenu handles GET /stores/:slug/menu (public storefront).
func (pc *ProductController) GetMenu(ctx *gin.Context) {
	store, svcErr := pc.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	menu, svcErr := pc.productService.GetMenu(ctx.Request.Context(), store.ID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"menu": menu})
}

// CreateProduct handles POST /dashboard/products (owner).
func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.CreateProduct(ctx.Request.Context(), storeID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /dashboard/products/:id (owner).
func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	productID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, svcErr := pc.productService.UpdateProduct(ctx.Request.Context(), storeID, productID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /dashboard/products/:id (owner).
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	productID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if svcErr := pc.productService.DeleteProduct(ctx.Request.Context(), storeID, productID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// CreateCategory handles POST /dashboard/categories (owner).
func (pc *ProductController) CreateCategory(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, svcErr := pc.productService.CreateCategory(ctx.Request.Context(), storeID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory handles PUT /dashboard/categories/:id (owner).
func (pc *ProductController) UpdateCategory(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	categoryID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req models.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, svcErr := pc.productService.UpdateCategory(ctx.Request.Context(), storeID, categoryID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory handles DELETE /dashboard/categories/:id (owner).
func (pc *ProductController) DeleteCategory(ctx *gin.Context) {
	storeID, err := middleware.GetStoreID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	categoryID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if svcErr := pc.productService.DeleteCategory(ctx.Request.Context(), storeID, categoryID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
