package repository

import (
	"context"
	"strings"

	"github.com/Mathdino/cardapio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, storeID, couponID uuid.UUID) error
	FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*models.Coupon, error)
	FindByID(ctx context.Context, storeID, couponID uuid.UUID) (*models.Coupon, error)
	IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error
	SetActive(ctx context.Context, storeID, couponID uuid.UUID, active bool) error
	FindByStore(ctx context.Context, storeID uuid.UUID, page, limit int) ([]models.Coupon, int64, error)
}

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository.
func NewGormCouponRepository(db *gorm.DB) CouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *GormCouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

func (r *GormCouponRepository) Delete(ctx context.Context, storeID, couponID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", couponID, storeID).
		Delete(&models.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByCode retrieves an active coupon by its code within a store,
// case-insensitively.
func (r *GormCouponRepository) FindByCode(ctx context.Context, storeID uuid.UUID, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND LOWER(code) = ? AND active = ?", storeID, strings.ToLower(code), true).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormCouponRepository) FindByID(ctx context.Context, storeID, couponID uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", couponID, storeID).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// IncrementUsedCount bumps used_count atomically per row. The limit check
// happens earlier during validation, so concurrent orders against a nearly
// exhausted limit can overshoot by a small margin; accepted soft constraint.
func (r *GormCouponRepository) IncrementUsedCount(ctx context.Context, couponID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", couponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).
		Error
}

// SetActive toggles a coupon on or off.
func (r *GormCouponRepository) SetActive(ctx context.Context, storeID, couponID uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ? AND store_id = ?", couponID, storeID).
		Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByStore retrieves paginated coupons for the dashboard.
func (r *GormCouponRepository) FindByStore(ctx context.Context, storeID uuid.UUID, page, limit int) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Coupon{}).Where("store_id = ?", storeID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}
