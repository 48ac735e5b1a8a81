package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a store owner account for the dashboard.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name         string         `gorm:"type:varchar(128);not null" json:"name"`
	Email        string         `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// LoginRequest is the dashboard login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token for subsequent owner requests.
type LoginResponse struct {
	Token   string    `json:"token"`
	StoreID uuid.UUID `json:"store_id"`
	Name    string    `json:"name"`
}
