package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponType represents the type of discount a coupon provides.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

// Coupon is a store-scoped discount code. Codes are stored uppercased
// and matched case-insensitively, unique per store.
type Coupon struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_store_code" json:"store_id"`
	Code          string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_store_code" json:"code"`
	Type          CouponType `gorm:"type:varchar(20);not null" json:"type"`
	Value         float64    `gorm:"not null" json:"value"`
	MinOrderValue *float64   `json:"min_order_value,omitempty"`
	MaxDiscount   *float64   `json:"max_discount,omitempty"` // percentage type only
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	UsageLimit    int        `gorm:"not null;default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount     int        `gorm:"not null;default:0" json:"used_count"`
	Active        bool       `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateCouponRequest is the payload for creating a new coupon.
type CreateCouponRequest struct {
	Code          string     `json:"code" binding:"required,min=3,max=64"`
	Type          CouponType `json:"type" binding:"required,oneof=percentage fixed"`
	Value         float64    `json:"value" binding:"required,gt=0"`
	MinOrderValue *float64   `json:"min_order_value" binding:"omitempty,gte=0"`
	MaxDiscount   *float64   `json:"max_discount" binding:"omitempty,gt=0"`
	StartsAt      *time.Time `json:"starts_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	UsageLimit    int        `json:"usage_limit" binding:"gte=0"`
}

// ValidateCouponRequest is the payload for validating a coupon against a
// cart subtotal. Validation is side-effect free; the usage counter only
// moves at order creation.
type ValidateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

// ValidateCouponResponse is the response after validating a coupon.
type ValidateCouponResponse struct {
	Valid    bool       `json:"valid"`
	Code     string     `json:"code"`
	Type     CouponType `json:"type,omitempty"`
	Discount float64    `json:"discount"`
	Message  string     `json:"message,omitempty"`
}
