package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store represents a single restaurant tenant.
type Store struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug              string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`
	Name              string         `gorm:"type:varchar(128);not null" json:"name"`
	Description       string         `gorm:"type:text" json:"description,omitempty"`
	WhatsAppNumber    string         `gorm:"type:varchar(20);not null" json:"whatsapp_number"`
	Address           string         `gorm:"type:text" json:"address,omitempty"`
	MinimumOrderValue float64        `gorm:"not null;default:0" json:"minimum_order_value"`
	IsOpen            bool           `gorm:"not null;default:true" json:"is_open"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessHours []BusinessHours `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"business_hours,omitempty"`
}

// BusinessHours is one weekday row of a store's weekly schedule.
// Weekday follows time.Weekday (0 = Sunday).
type BusinessHours struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_store_weekday" json:"store_id"`
	Weekday  int       `gorm:"not null;uniqueIndex:idx_store_weekday" json:"weekday"`
	Open     bool      `gorm:"not null;default:false" json:"open"`
	OpensAt  string    `gorm:"type:varchar(5)" json:"opens_at"`  // "HH:MM"
	ClosesAt string    `gorm:"type:varchar(5)" json:"closes_at"` // "HH:MM"
}

// UpdateStoreRequest is the owner payload for updating store settings.
type UpdateStoreRequest struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	WhatsAppNumber    *string  `json:"whatsapp_number,omitempty"`
	Address           *string  `json:"address,omitempty"`
	MinimumOrderValue *float64 `json:"minimum_order_value,omitempty" binding:"omitempty,gte=0"`
	IsOpen            *bool    `json:"is_open,omitempty"`
}

// BusinessHoursRequest replaces a store's weekly schedule.
type BusinessHoursRequest struct {
	Hours []BusinessHoursEntry `json:"hours" binding:"required,dive"`
}

type BusinessHoursEntry struct {
	Weekday  int    `json:"weekday" binding:"gte=0,lte=6"`
	Open     bool   `json:"open"`
	OpensAt  string `json:"opens_at" binding:"omitempty,clock"`
	ClosesAt string `json:"closes_at" binding:"omitempty,clock"`
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClock is the "clock" binding validation: a 24-hour "HH:MM" string.
// It is registered on gin's validator engine at startup.
func ValidClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}
