package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CouponService defines the interface for coupon business logic.
type CouponService interface {
	CreateCoupon(ctx context.Context, storeID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError)
	UpdateCoupon(ctx context.Context, storeID, couponID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError)
	DeleteCoupon(ctx context.Context, storeID, couponID uuid.UUID) *ServiceError
	ToggleCoupon(ctx context.Context, storeID, couponID uuid.UUID, active bool) *ServiceError
	ValidateCoupon(ctx context.Context, storeID uuid.UUID, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, *ServiceError)
	ListCoupons(ctx context.Context, storeID uuid.UUID, page, limit int) ([]models.Coupon, int64, *ServiceError)
}

type couponServiceImpl struct {
	repo   repository.CouponRepository
	logger *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(repo repository.CouponRepository, logger *zap.Logger) CouponService {
	return &couponServiceImpl{repo: repo, logger: logger}
}

// EvaluateCoupon checks a coupon against a subtotal and computes the
// discount. It is a pure function: the usage counter only moves at order
// creation. A non-empty reason means the coupon does not apply.
func EvaluateCoupon(coupon *models.Coupon, subtotal float64, now time.Time) (discount float64, reason string) {
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return 0, "Coupon is not yet active"
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return 0, "Coupon has expired"
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return 0, "Coupon usage limit reached"
	}
	if coupon.MinOrderValue != nil && subtotal < *coupon.MinOrderValue {
		return 0, fmt.Sprintf("Minimum order value of %.2f required", *coupon.MinOrderValue)
	}

	switch coupon.Type {
	case models.CouponTypePercentage:
		discount = subtotal * (coupon.Value / 100)
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case models.CouponTypeFixed:
		discount = coupon.Value
	default:
		return 0, "Unknown coupon type"
	}

	// A coupon can never produce a negative total.
	if discount > subtotal {
		discount = subtotal
	}
	return discount, ""
}

// CreateCoupon creates a new coupon for the store.
func (s *couponServiceImpl) CreateCoupon(ctx context.Context, storeID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	if svcErr := validateCouponRequest(req); svcErr != nil {
		return nil, svcErr
	}

	coupon := &models.Coupon{
		StoreID:       storeID,
		Code:          strings.ToUpper(req.Code),
		Type:          req.Type,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		MaxDiscount:   req.MaxDiscount,
		StartsAt:      req.StartsAt,
		ExpiresAt:     req.ExpiresAt,
		UsageLimit:    req.UsageLimit,
		Active:        true,
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "A coupon with this code already exists"}
		}
		s.logger.Error("Failed to create coupon", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create coupon"}
	}

	s.logger.Info("Coupon created",
		zap.String("store_id", storeID.String()),
		zap.String("code", coupon.Code),
		zap.String("type", string(coupon.Type)),
	)
	return coupon, nil
}

// UpdateCoupon replaces a coupon's settings, keeping its usage counter.
func (s *couponServiceImpl) UpdateCoupon(ctx context.Context, storeID, couponID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	if svcErr := validateCouponRequest(req); svcErr != nil {
		return nil, svcErr
	}

	coupon, err := s.repo.FindByID(ctx, storeID, couponID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Coupon not found"}
	}

	coupon.Code = strings.ToUpper(req.Code)
	coupon.Type = req.Type
	coupon.Value = req.Value
	coupon.MinOrderValue = req.MinOrderValue
	coupon.MaxDiscount = req.MaxDiscount
	coupon.StartsAt = req.StartsAt
	coupon.ExpiresAt = req.ExpiresAt
	coupon.UsageLimit = req.UsageLimit

	if err := s.repo.Update(ctx, coupon); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, &ServiceError{StatusCode: 409, Message: "A coupon with this code already exists"}
		}
		s.logger.Error("Failed to update coupon", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update coupon"}
	}
	return coupon, nil
}

// DeleteCoupon removes a coupon.
func (s *couponServiceImpl) DeleteCoupon(ctx context.Context, storeID, couponID uuid.UUID) *ServiceError {
	if err := s.repo.Delete(ctx, storeID, couponID); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to delete coupon", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete coupon"}
	}
	return nil
}

// ToggleCoupon flips a coupon's active flag.
func (s *couponServiceImpl) ToggleCoupon(ctx context.Context, storeID, couponID uuid.UUID, active bool) *ServiceError {
	if err := s.repo.SetActive(ctx, storeID, couponID, active); err != nil {
		if err.Error() == "record not found" {
			return &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to toggle coupon", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to toggle coupon"}
	}
	return nil
}

// ValidateCoupon validates a code against a subtotal without side effects.
func (s *couponServiceImpl) ValidateCoupon(ctx context.Context, storeID uuid.UUID, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, *ServiceError) {
	coupon, err := s.repo.FindByCode(ctx, storeID, req.Code)
	if err != nil {
		return &models.ValidateCouponResponse{
			Valid:   false,
			Code:    req.Code,
			Message: "Coupon not found or inactive",
		}, nil
	}

	discount, reason := EvaluateCoupon(coupon, req.Subtotal, time.Now())
	if reason != "" {
		return &models.ValidateCouponResponse{
			Valid:   false,
			Code:    coupon.Code,
			Message: reason,
		}, nil
	}

	return &models.ValidateCouponResponse{
		Valid:    true,
		Code:     coupon.Code,
		Type:     coupon.Type,
		Discount: discount,
	}, nil
}

// ListCoupons returns paginated coupons for the store dashboard.
func (s *couponServiceImpl) ListCoupons(ctx context.Context, storeID uuid.UUID, page, limit int) ([]models.Coupon, int64, *ServiceError) {
	coupons, total, err := s.repo.FindByStore(ctx, storeID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, 0, &ServiceError{StatusCode: 500, Message: "Failed to list coupons"}
	}
	return coupons, total, nil
}

func validateCouponRequest(req *models.CreateCouponRequest) *ServiceError {
	if req.Type == models.CouponTypePercentage && req.Value > 100 {
		return &ServiceError{StatusCode: 400, Message: "Percentage discount cannot exceed 100"}
	}
	if req.Type == models.CouponTypeFixed && req.MaxDiscount != nil {
		return &ServiceError{StatusCode: 400, Message: "Maximum discount only applies to percentage coupons"}
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return &ServiceError{StatusCode: 400, Message: "Expiry date must be in the future"}
	}
	if req.StartsAt != nil && req.ExpiresAt != nil && req.ExpiresAt.Before(*req.StartsAt) {
		return &ServiceError{StatusCode: 400, Message: "Expiry date must be after the start date"}
	}
	return nil
}
