package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/notifier"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const orderCodeAttempts = 3

// OrderService defines the interface for order business logic.
type OrderService interface {
	PlaceOrder(ctx context.Context, storeID uuid.UUID, req *models.CheckoutRequest) (*models.Order, *ServiceError)
	GetOrderByCode(ctx context.Context, code string) (*models.Order, *ServiceError)
	ListStoreOrders(ctx context.Context, storeID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, *ServiceError)
	ListCustomerOrders(ctx context.Context, storeID uuid.UUID, phone string, page, limit int) ([]models.Order, int64, *ServiceError)
	UpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, next models.OrderStatus) *ServiceError
}

type orderServiceImpl struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	storeRepo  repository.StoreRepository
	couponRepo repository.CouponRepository
	notifier   notifier.OrderNotifier
	logger     *zap.Logger
}

// NewOrderService creates a new OrderService. The notifier may be nil,
// in which case checkout skips the WhatsApp dispatch.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	storeRepo repository.StoreRepository,
	couponRepo repository.CouponRepository,
	orderNotifier notifier.OrderNotifier,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		storeRepo:  storeRepo,
		couponRepo: couponRepo,
		notifier:   orderNotifier,
		logger:     logger,
	}
}

// PlaceOrder turns the session cart into an immutable order: it validates
// the checkout, freezes line-item snapshots, allocates a short code with
// bounded retry against the uniqueness constraint, increments the coupon
// usage counter exactly once on success, clears the cart, and notifies
// the store best-effort.
func (s *orderServiceImpl) PlaceOrder(ctx context.Context, storeID uuid.UUID, req *models.CheckoutRequest) (*models.Order, *ServiceError) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Store not found"}
	}
	if !store.IsOpen {
		return nil, &ServiceError{StatusCode: 400, Message: "Store is currently closed"}
	}

	cart, err := s.cartRepo.Get(ctx, storeID.String(), req.SessionID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Cart is empty"}
	}

	if req.DeliveryType == models.DeliveryTypeDelivery && strings.TrimSpace(req.Address) == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Delivery address is required"}
	}
	if req.ScheduledFor == nil {
		return nil, &ServiceError{StatusCode: 400, Message: "A schedule slot must be chosen"}
	}
	if req.ScheduledFor.Before(time.Now()) {
		return nil, &ServiceError{StatusCode: 400, Message: "Scheduled time is in the past"}
	}

	subtotal := cart.Subtotal()
	if subtotal < store.MinimumOrderValue {
		return nil, &ServiceError{
			StatusCode: 400,
			Message:    fmt.Sprintf("Minimum order value is %.2f", store.MinimumOrderValue),
		}
	}

	var discount float64
	var coupon *models.Coupon
	if cart.Coupon != nil {
		coupon, err = s.couponRepo.FindByCode(ctx, storeID, cart.Coupon.Code)
		if err != nil {
			return nil, &ServiceError{StatusCode: 400, Message: "Applied coupon is no longer valid"}
		}
		var reason string
		discount, reason = EvaluateCoupon(coupon, subtotal, time.Now())
		if reason != "" {
			return nil, &ServiceError{StatusCode: 400, Message: reason}
		}
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	order := &models.Order{
		StoreID:       storeID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DeliveryType:  req.DeliveryType,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		ScheduledFor:  req.ScheduledFor,
		Notes:         req.Notes,
		Items:         freezeItems(cart),
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
		order.CouponCode = coupon.Code
	}

	if svcErr := s.createWithRetry(ctx, order); svcErr != nil {
		return nil, svcErr
	}

	if coupon != nil {
		if err := s.couponRepo.IncrementUsedCount(ctx, coupon.ID); err != nil {
			// The order exists; a missed increment only loosens the
			// usage limit, so log and carry on.
			s.logger.Error("Failed to increment coupon usage",
				zap.String("coupon", coupon.Code), zap.Error(err))
		}
	}

	if err := s.cartRepo.Delete(ctx, storeID.String(), req.SessionID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.Error(err))
	}

	s.notify(ctx, store, order)

	s.logger.Info("Order placed",
		zap.String("code", order.Code),
		zap.String("store_id", storeID.String()),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// createWithRetry allocates a fresh short code per attempt and retries
// only on the storage uniqueness constraint, at most orderCodeAttempts
// times.
func (s *orderServiceImpl) createWithRetry(ctx context.Context, order *models.Order) *ServiceError {
	var lastErr error
	for attempt := 0; attempt < orderCodeAttempts; attempt++ {
		order.Code = generateOrderCode()
		err := s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		lastErr = err
		if !strings.Contains(err.Error(), "duplicate") && !strings.Contains(err.Error(), "unique") {
			s.logger.Error("Failed to create order", zap.Error(err))
			return &ServiceError{StatusCode: 500, Message: "Failed to create order"}
		}
		s.logger.Warn("Order code collision, retrying",
			zap.String("code", order.Code),
			zap.Int("attempt", attempt+1),
		)
	}
	s.logger.Error("Order code generation exhausted", zap.Error(lastErr))
	return &ServiceError{StatusCode: 500, Message: "Failed to allocate an order code"}
}

// GetOrderByCode retrieves one order by its short code.
func (s *orderServiceImpl) GetOrderByCode(ctx context.Context, code string) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
	}
	return order, nil
}

// ListStoreOrders returns paginated orders for the dashboard.
func (s *orderServiceImpl) ListStoreOrders(ctx context.Context, storeID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, *ServiceError) {
	orders, total, err := s.orderRepo.FindByStore(ctx, storeID, status, page, limit)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list orders"}
	}
	return orders, total, nil
}

// ListCustomerOrders returns a customer's history within a store.
func (s *orderServiceImpl) ListCustomerOrders(ctx context.Context, storeID uuid.UUID, phone string, page, limit int) ([]models.Order, int64, *ServiceError) {
	orders, total, err := s.orderRepo.FindByCustomerPhone(ctx, storeID, phone, page, limit)
	if err != nil {
		s.logger.Error("Failed to list customer orders", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list orders"}
	}
	return orders, total, nil
}

// UpdateStatus moves an order through the status machine. Delivered and
// cancelled are terminal; the write is scoped to the owning store.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, next models.OrderStatus) *ServiceError {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return &ServiceError{StatusCode: 404, Message: "Order not found"}
	}
	if order.StoreID != storeID {
		return &ServiceError{StatusCode: 404, Message: "Order not found"}
	}
	if !order.Status.CanTransitionTo(next) {
		return &ServiceError{
			StatusCode: 400,
			Message:    fmt.Sprintf("Cannot change status from %s to %s", order.Status, next),
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, storeID, orderID, next); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to update order status", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to update order status"}
	}

	s.logger.Info("Order status updated",
		zap.String("code", order.Code),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
	)
	return nil
}

func (s *orderServiceImpl) notify(ctx context.Context, store *models.Store, order *models.Order) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.NotifyOrderCreated(ctx, store, order); err != nil {
		s.logger.Error("WhatsApp notification failed",
			zap.String("code", order.Code), zap.Error(err))
		return
	}
	s.logger.Info("WhatsApp notification sent", zap.String("code", order.Code))
}

// freezeItems snapshots cart lines so later catalog edits never alter
// order history.
func freezeItems(cart *models.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID:    productID,
			ProductName:  line.ProductName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Subtotal:     line.Subtotal,
			Descriptions: models.StringList(line.Descriptions),
		})
	}
	return items
}

const (
	codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeDigits  = "0123456789"
)

// generateOrderCode produces a short human-readable order identifier:
// 4 random uppercase letters followed by 4 random digits.
func generateOrderCode() string {
	var b strings.Builder
	b.Grow(8)
	for i := 0; i < 4; i++ {
		b.WriteByte(codeLetters[rand.Intn(len(codeLetters))])
	}
	for i := 0; i < 4; i++ {
		b.WriteByte(codeDigits[rand.Intn(len(codeDigits))])
	}
	return b.String()
}
