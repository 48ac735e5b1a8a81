package services

import (
	"context"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartService defines the interface for session-cart business logic.
type CartService interface {
	GetCart(ctx context.Context, storeID, sessionID string) (*models.Cart, *ServiceError)
	AddItem(ctx context.Context, storeID, sessionID string, req *models.AddItemRequest) (*models.Cart, *ServiceError)
	UpdateItemQuantity(ctx context.Context, storeID, sessionID, itemID string, quantity int) (*models.Cart, *ServiceError)
	RemoveItem(ctx context.Context, storeID, sessionID, itemID string) (*models.Cart, *ServiceError)
	ApplyCoupon(ctx context.Context, storeID, sessionID, code string) (*models.Cart, *ServiceError)
	RemoveCoupon(ctx context.Context, storeID, sessionID string) (*models.Cart, *ServiceError)
	Clear(ctx context.Context, storeID, sessionID string) *ServiceError
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	logger *zap.Logger,
) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		logger:      logger,
	}
}

// GetCart returns the session cart, creating an empty one when none exists.
func (s *cartServiceImpl) GetCart(ctx context.Context, storeID, sessionID string) (*models.Cart, *ServiceError) {
	cart, err := s.cartRepo.Get(ctx, storeID, sessionID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil {
		cart = &models.Cart{StoreID: storeID, SessionID: sessionID}
	}
	return cart, nil
}

// AddItem prices the selection and merges it into the cart. A new
// addition merges into an existing line only when it is the same product
// with an identical flavor set and neither side carries combo selections,
// complements, or removed ingredients; those make the line a custom
// micro-order that always stays distinct.
func (s *cartServiceImpl) AddItem(ctx context.Context, storeID, sessionID string, req *models.AddItemRequest) (*models.Cart, *ServiceError) {
	cart, svcErr := s.GetCart(ctx, storeID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid product ID"}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}
	if product.StoreID.String() != storeID {
		return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
	}
	if !product.Available {
		return nil, &ServiceError{StatusCode: 400, Message: "Product is not available"}
	}

	now := time.Now()
	refs, svcErr := s.comboRefs(ctx, product)
	if svcErr != nil {
		return nil, svcErr
	}

	delta, descriptions, err := ResolveModifiers(product, &req.Selections, refs, now)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
	}

	if line := findMergeLine(cart, product.ID.String(), &req.Selections); line != nil {
		line.Quantity += req.Quantity
		s.repriceLine(line, product, delta, now)
	} else {
		line := models.CartItem{
			ID:           uuid.NewString(),
			ProductID:    product.ID.String(),
			ProductName:  product.Name,
			Quantity:     req.Quantity,
			Selections:   req.Selections,
			Descriptions: descriptions,
		}
		s.repriceLine(&line, product, delta, now)
		cart.Items = append(cart.Items, line)
	}

	return s.finish(ctx, cart)
}

// UpdateItemQuantity recomputes the line subtotal with current modifier
// deltas; a quantity at or below zero removes the line.
func (s *cartServiceImpl) UpdateItemQuantity(ctx context.Context, storeID, sessionID, itemID string, quantity int) (*models.Cart, *ServiceError) {
	cart, svcErr := s.GetCart(ctx, storeID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &ServiceError{StatusCode: 404, Message: "Cart item not found"}
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return s.finish(ctx, cart)
	}

	line := &cart.Items[idx]
	productID, err := uuid.Parse(line.ProductID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 500, Message: "Corrupt cart line"}
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Product no longer exists"}
	}

	now := time.Now()
	refs, svcErr := s.comboRefs(ctx, product)
	if svcErr != nil {
		return nil, svcErr
	}
	delta, descriptions, err := ResolveModifiers(product, &line.Selections, refs, now)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
	}

	line.Quantity = quantity
	line.Descriptions = descriptions
	s.repriceLine(line, product, delta, now)

	return s.finish(ctx, cart)
}

// RemoveItem drops a line from the cart.
func (s *cartServiceImpl) RemoveItem(ctx context.Context, storeID, sessionID, itemID string) (*models.Cart, *ServiceError) {
	return s.UpdateItemQuantity(ctx, storeID, sessionID, itemID, 0)
}

// ApplyCoupon validates the code against the current subtotal and
// attaches it; a newly applied coupon fully replaces the prior one.
func (s *cartServiceImpl) ApplyCoupon(ctx context.Context, storeID, sessionID, code string) (*models.Cart, *ServiceError) {
	cart, svcErr := s.GetCart(ctx, storeID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	if len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cannot apply a coupon to an empty cart"}
	}

	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid store ID"}
	}

	coupon, err := s.couponRepo.FindByCode(ctx, storeUUID, code)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Coupon not found or inactive"}
	}

	discount, reason := EvaluateCoupon(coupon, cart.Subtotal(), time.Now())
	if reason != "" {
		return nil, &ServiceError{StatusCode: 400, Message: reason}
	}

	cart.Coupon = &models.AppliedCoupon{Code: coupon.Code, Discount: discount}
	return s.finish(ctx, cart)
}

// RemoveCoupon detaches the applied coupon.
func (s *cartServiceImpl) RemoveCoupon(ctx context.Context, storeID, sessionID string) (*models.Cart, *ServiceError) {
	cart, svcErr := s.GetCart(ctx, storeID, sessionID)
	if svcErr != nil {
		return nil, svcErr
	}
	cart.Coupon = nil
	return s.finish(ctx, cart)
}

// Clear deletes the session cart.
func (s *cartServiceImpl) Clear(ctx context.Context, storeID, sessionID string) *ServiceError {
	if err := s.cartRepo.Delete(ctx, storeID, sessionID); err != nil {
		s.logger.Error("Failed to clear cart", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to clear cart"}
	}
	return nil
}

// finish re-derives coupon state and persists the cart. An empty cart
// always drops its coupon so a stale discount can never survive against
// an empty order; a percentage discount is re-evaluated because it tracks
// the subtotal.
func (s *cartServiceImpl) finish(ctx context.Context, cart *models.Cart) (*models.Cart, *ServiceError) {
	if len(cart.Items) == 0 {
		cart.Coupon = nil
	} else if cart.Coupon != nil {
		storeUUID, err := uuid.Parse(cart.StoreID)
		if err != nil {
			cart.Coupon = nil
		} else if coupon, err := s.couponRepo.FindByCode(ctx, storeUUID, cart.Coupon.Code); err != nil {
			cart.Coupon = nil
		} else if discount, reason := EvaluateCoupon(coupon, cart.Subtotal(), time.Now()); reason != "" {
			cart.Coupon = nil
		} else {
			cart.Coupon.Discount = discount
		}
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.logger.Error("Failed to save cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save cart"}
	}
	return cart, nil
}

func (s *cartServiceImpl) repriceLine(line *models.CartItem, product *models.Product, modifierDelta float64, now time.Time) {
	line.UnitPrice = BaseUnitPrice(product, line.Quantity, now) + modifierDelta
	line.Subtotal = line.UnitPrice * float64(line.Quantity)
}

// comboRefs loads the catalog products referenced by the combo's
// "products" groups.
func (s *cartServiceImpl) comboRefs(ctx context.Context, product *models.Product) (ProductLookup, *ServiceError) {
	refs := ProductLookup{}
	if product.Combo == nil {
		return refs, nil
	}

	var ids []uuid.UUID
	for _, group := range product.Combo.Groups {
		if group.Type != models.ComboGroupProducts {
			continue
		}
		for _, item := range group.Items {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				ids = append(ids, id)
			}
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load combo products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to price combo"}
	}
	for i := range products {
		refs[products[i].ID.String()] = &products[i]
	}
	return refs, nil
}

// findMergeLine returns the line the addition merges into, or nil.
func findMergeLine(cart *models.Cart, productID string, sel *models.ItemSelections) *models.CartItem {
	if sel.HasCombo() || sel.HasComplements() || len(sel.RemovedIngredients) > 0 {
		return nil
	}
	for i := range cart.Items {
		line := &cart.Items[i]
		if line.ProductID != productID {
			continue
		}
		if line.Selections.HasCombo() || line.Selections.HasComplements() || len(line.Selections.RemovedIngredients) > 0 {
			continue
		}
		if line.Selections.SameFlavors(sel) {
			return line
		}
	}
	return nil
}
