package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusTransitions lists the permitted moves; delivered and cancelled
// are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusDelivered, OrderStatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DeliveryType is how the customer receives the order.
type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// PaymentMethod is recorded on the order; settlement happens on handoff.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodPix  PaymentMethod = "pix"
)

// Order is an immutable record of a completed checkout. Item snapshots
// are frozen so later catalog edits never alter history.
type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code          string        `gorm:"type:varchar(8);uniqueIndex;not null" json:"code"`
	StoreID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"store_id"`
	UserID        *uuid.UUID    `gorm:"type:uuid;index" json:"user_id,omitempty"` // guest checkout allowed
	CustomerName  string        `gorm:"type:varchar(128);not null" json:"customer_name"`
	CustomerPhone string        `gorm:"type:varchar(20);not null;index" json:"customer_phone"`
	DeliveryType  DeliveryType  `gorm:"type:varchar(10);not null" json:"delivery_type"`
	Address       string        `gorm:"type:text" json:"address,omitempty"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Subtotal      float64       `gorm:"not null" json:"subtotal"`
	Discount      float64       `gorm:"not null;default:0" json:"discount"`
	Total         float64       `gorm:"not null" json:"total"`
	CouponID      *uuid.UUID    `gorm:"type:uuid" json:"coupon_id,omitempty"`
	CouponCode    string        `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`
	ScheduledFor  *time.Time    `json:"scheduled_for,omitempty"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a frozen line-item snapshot, decoupled from the live
// Product row.
type OrderItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID  `gorm:"type:uuid;not null" json:"product_id"`
	ProductName  string     `gorm:"type:varchar(128);not null" json:"product_name"`
	Quantity     int        `gorm:"not null" json:"quantity"`
	UnitPrice    float64    `gorm:"not null" json:"unit_price"`
	Subtotal     float64    `gorm:"not null" json:"subtotal"`
	Descriptions StringList `gorm:"type:jsonb" json:"descriptions,omitempty"`
}

// CheckoutRequest is the customer payload that turns a cart into an order.
type CheckoutRequest struct {
	SessionID     string        `json:"session_id" binding:"required"`
	CustomerName  string        `json:"customer_name" binding:"required"`
	CustomerPhone string        `json:"customer_phone" binding:"required"`
	DeliveryType  DeliveryType  `json:"delivery_type" binding:"required,oneof=pickup delivery"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=cash card pix"`
	ScheduledFor  *time.Time    `json:"scheduled_for"`
	Notes         string        `json:"notes"`
}

// UpdateOrderStatusRequest moves an order through the status machine.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=pending preparing delivered cancelled"`
}
