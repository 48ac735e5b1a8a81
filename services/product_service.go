package services

import (
	"context"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MenuCategory is one category with its products, annotated with the
// menu display price.
type MenuCategory struct {
	Category models.Category `json:"category"`
	Products []MenuProduct   `json:"products"`
}

// MenuProduct decorates a product with its current "from" price and
// whether a promotion is active right now.
type MenuProduct struct {
	models.Product
	DisplayPrice float64 `json:"display_price"`
	PromoNow     bool    `json:"promo_now"`
}

// ProductService defines the interface for catalog business logic.
type ProductService interface {
	CreateProduct(ctx context.Context, storeID uuid.UUID, req *models.CreateProductRequest) (*models.Product, *ServiceError)
	UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError)
	DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) *ServiceError
	GetMenu(ctx context.Context, storeID uuid.UUID) ([]MenuCategory, *ServiceError)

	CreateCategory(ctx context.Context, storeID uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError)
	UpdateCategory(ctx context.Context, storeID, categoryID uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, storeID, categoryID uuid.UUID) *ServiceError
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, logger: logger}
}

// CreateProduct validates the type-specific payload and stores the product.
func (s *productServiceImpl) CreateProduct(ctx context.Context, storeID uuid.UUID, req *models.CreateProductRequest) (*models.Product, *ServiceError) {
	if svcErr := validateProductRequest(req); svcErr != nil {
		return nil, svcErr
	}

	category, err := s.repo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil || category.StoreID != storeID {
		return nil, &ServiceError{StatusCode: 404, Message: "Category not found"}
	}

	product := productFromRequest(storeID, req)
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}

	s.logger.Info("Product created",
		zap.String("store_id", storeID.String()),
		zap.String("name", product.Name),
		zap.String("type", string(product.Type)),
	)
	return product, nil
}

// UpdateProduct replaces a product's settings and type payload.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	if svcErr := validateProductRequest(req); svcErr != nil {
		return nil, svcErr
	}

	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil || existing.StoreID != storeID {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}

	category, err := s.repo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil || category.StoreID != storeID {
		return nil, &ServiceError{StatusCode: 404, Message: "Category not found"}
	}

	product := productFromRequest(storeID, req)
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}
	return product, nil
}

// DeleteProduct removes a product from the store's catalog.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, storeID, productID uuid.UUID) *ServiceError {
	if err := s.repo.Delete(ctx, storeID, productID); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to delete product", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete product"}
	}
	return nil
}

// GetMenu returns the store's categories and products in menu order,
// each product annotated with its display price.
func (s *productServiceImpl) GetMenu(ctx context.Context, storeID uuid.UUID) ([]MenuCategory, *ServiceError) {
	categories, err := s.repo.FindCategoriesByStore(ctx, storeID)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load menu"}
	}
	products, err := s.repo.FindByStore(ctx, storeID)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load menu"}
	}

	now := time.Now()
	byCategory := make(map[uuid.UUID][]MenuProduct)
	for i := range products {
		p := products[i]
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], MenuProduct{
			Product:      p,
			DisplayPrice: DisplayPrice(&p, now),
			PromoNow:     p.Type != models.ProductTypeCombo && p.PromoActive(now),
		})
	}

	menu := make([]MenuCategory, 0, len(categories))
	for _, category := range categories {
		menu = append(menu, MenuCategory{
			Category: category,
			Products: byCategory[category.ID],
		})
	}
	return menu, nil
}

// CreateCategory adds a menu category.
func (s *productServiceImpl) CreateCategory(ctx context.Context, storeID uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	category := &models.Category{
		StoreID:  storeID,
		Name:     req.Name,
		Position: req.Position,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create category"}
	}
	return category, nil
}

// UpdateCategory renames or repositions a category.
func (s *productServiceImpl) UpdateCategory(ctx context.Context, storeID, categoryID uuid.UUID, req *models.CategoryRequest) (*models.Category, *ServiceError) {
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	if err != nil || category.StoreID != storeID {
		return nil, &ServiceError{StatusCode: 404, Message: "Category not found"}
	}
	category.Name = req.Name
	category.Position = req.Position
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		s.logger.Error("Failed to update category", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update category"}
	}
	return category, nil
}

// DeleteCategory removes a category.
func (s *productServiceImpl) DeleteCategory(ctx context.Context, storeID, categoryID uuid.UUID) *ServiceError {
	if err := s.repo.DeleteCategory(ctx, storeID, categoryID); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Category not found"}
		}
		s.logger.Error("Failed to delete category", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete category"}
	}
	return nil
}

// validateProductRequest enforces that exactly the payload matching the
// product type is present.
func validateProductRequest(req *models.CreateProductRequest) *ServiceError {
	hasFlavors := req.Flavors != nil
	hasCombo := req.Combo != nil
	hasComplements := len(req.Complements) > 0
	hasWholesale := req.WholesaleMinQuantity > 0 || req.WholesalePrice > 0

	switch req.Type {
	case models.ProductTypeSimple:
		if hasFlavors || hasCombo || hasComplements || hasWholesale {
			return &ServiceError{StatusCode: 400, Message: "A simple product carries no type configuration"}
		}
	case models.ProductTypeFlavors:
		if !hasFlavors || len(req.Flavors.Options) == 0 {
			return &ServiceError{StatusCode: 400, Message: "A flavors product requires flavor options"}
		}
		if hasCombo || hasComplements || hasWholesale {
			return &ServiceError{StatusCode: 400, Message: "A flavors product carries only the flavors configuration"}
		}
		if req.Flavors.Max > 0 && req.Flavors.Min > req.Flavors.Max {
			return &ServiceError{StatusCode: 400, Message: "Flavor minimum cannot exceed maximum"}
		}
	case models.ProductTypeCombo:
		if !hasCombo || (len(req.Combo.Groups) == 0 && len(req.Combo.Options) == 0) {
			return &ServiceError{StatusCode: 400, Message: "A combo product requires groups or options"}
		}
		if hasFlavors || hasComplements || hasWholesale {
			return &ServiceError{StatusCode: 400, Message: "A combo product carries only the combo configuration"}
		}
		for _, group := range req.Combo.Groups {
			if group.Max > 0 && group.Min > group.Max {
				return &ServiceError{StatusCode: 400, Message: "Combo group minimum cannot exceed maximum"}
			}
		}
	case models.ProductTypeWholesale:
		if req.WholesaleMinQuantity <= 0 || req.WholesalePrice <= 0 {
			return &ServiceError{StatusCode: 400, Message: "A wholesale product requires a threshold and a wholesale price"}
		}
		if hasFlavors || hasCombo || hasComplements {
			return &ServiceError{StatusCode: 400, Message: "A wholesale product carries only the wholesale configuration"}
		}
	case models.ProductTypeComplements:
		if !hasComplements {
			return &ServiceError{StatusCode: 400, Message: "A complements product requires complement groups"}
		}
		if hasFlavors || hasCombo || hasWholesale {
			return &ServiceError{StatusCode: 400, Message: "A complements product carries only the complement configuration"}
		}
		for _, group := range req.Complements {
			if group.Max > 0 && group.Min > group.Max {
				return &ServiceError{StatusCode: 400, Message: "Complement group minimum cannot exceed maximum"}
			}
		}
	}

	if req.PromoPrice != nil {
		if req.Type == models.ProductTypeCombo {
			return &ServiceError{StatusCode: 400, Message: "Combo products do not support promotional pricing"}
		}
		if req.PromoStartsAt != nil && req.PromoEndsAt != nil && req.PromoEndsAt.Before(*req.PromoStartsAt) {
			return &ServiceError{StatusCode: 400, Message: "Promotion end must be after its start"}
		}
	}
	return nil
}

func productFromRequest(storeID uuid.UUID, req *models.CreateProductRequest) *models.Product {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	unit := req.PreparationUnit
	if unit == "" {
		unit = models.PrepUnitMinutes
	}
	return &models.Product{
		StoreID:              storeID,
		CategoryID:           req.CategoryID,
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 req.Type,
		Price:                req.Price,
		Available:            available,
		Ingredients:          models.StringList(req.Ingredients),
		PromoPrice:           req.PromoPrice,
		PromoStartsAt:        req.PromoStartsAt,
		PromoEndsAt:          req.PromoEndsAt,
		Flavors:              req.Flavors,
		Combo:                req.Combo,
		Complements:          req.Complements,
		WholesaleMinQuantity: req.WholesaleMinQuantity,
		WholesalePrice:       req.WholesalePrice,
		PreparationTime:      req.PreparationTime,
		PreparationUnit:      unit,
	}
}
