package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductType discriminates the configuration payload a product carries.
// Exactly one payload is meaningful per type; the others stay null.
type ProductType string

const (
	ProductTypeSimple      ProductType = "simple"
	ProductTypeFlavors     ProductType = "flavors"
	ProductTypeCombo       ProductType = "combo"
	ProductTypeWholesale   ProductType = "wholesale"
	ProductTypeComplements ProductType = "complements"
)

// PrepUnit is the unit of a product's preparation time.
type PrepUnit string

const (
	PrepUnitMinutes PrepUnit = "minutes"
	PrepUnitHours   PrepUnit = "hours"
	PrepUnitDays    PrepUnit = "days"
)

// FlavorOption is a named variant with an additive price delta.
type FlavorOption struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"` // delta added to the unit price
}

// FlavorConfig bounds how many flavors a customer picks.
type FlavorConfig struct {
	Min     int            `json:"min"`
	Max     int            `json:"max"`
	Options []FlavorOption `json:"options"`
}

// ComboGroupType discriminates how a combo group sources its items.
type ComboGroupType string

const (
	ComboGroupProducts ComboGroupType = "products"
	ComboGroupCustom   ComboGroupType = "custom"
)

// ComboGroupItem is one pickable entry inside a combo group. For a
// "products" group ProductID references the catalog and PriceOverride,
// when set, always wins over the referenced product's own price. For a
// "custom" group only Name and Price are meaningful.
type ComboGroupItem struct {
	ID            string   `json:"id"`
	ProductID     string   `json:"product_id,omitempty"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	PriceOverride *float64 `json:"price_override,omitempty"`
}

// ComboGroup is a bounded sub-selection within a combo product.
type ComboGroup struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Type  ComboGroupType   `json:"type"`
	Min   int              `json:"min"`
	Max   int              `json:"max"`
	Items []ComboGroupItem `json:"items"`
}

// ComboConfig is the combo payload. Groups is the current structure;
// Options is the legacy flat list and is only consulted when Groups is
// empty.
type ComboConfig struct {
	MaxItems int            `json:"max_items"`
	Groups   []ComboGroup   `json:"groups,omitempty"`
	Options  []FlavorOption `json:"options,omitempty"`
}

// ComplementItem is an add-on priced independently of the product.
type ComplementItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// ComplementGroup bounds a set of add-on items.
type ComplementGroup struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Min   int              `json:"min"`
	Max   int              `json:"max"`
	Items []ComplementItem `json:"items"`
}

// ComplementGroups is stored as a single jsonb column.
type ComplementGroups []ComplementGroup

// Product is a sellable catalog entry.
type Product struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string      `gorm:"type:varchar(128);not null" json:"name"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Type        ProductType `gorm:"type:varchar(20);not null;default:'simple'" json:"type"`
	Price       float64     `gorm:"not null;default:0" json:"price"`
	Available   bool        `gorm:"not null;default:true" json:"available"`
	Ingredients StringList  `gorm:"type:jsonb" json:"ingredients,omitempty"`

	// Promotional pricing, active only inside the window.
	PromoPrice    *float64   `json:"promo_price,omitempty"`
	PromoStartsAt *time.Time `json:"promo_starts_at,omitempty"`
	PromoEndsAt   *time.Time `json:"promo_ends_at,omitempty"`

	// Type-specific payloads; exactly one is non-null per Type.
	Flavors     *FlavorConfig    `gorm:"type:jsonb" json:"flavors,omitempty"`
	Combo       *ComboConfig     `gorm:"type:jsonb" json:"combo,omitempty"`
	Complements ComplementGroups `gorm:"type:jsonb" json:"complements,omitempty"`

	// Wholesale price break.
	WholesaleMinQuantity int     `gorm:"not null;default:0" json:"wholesale_min_quantity,omitempty"`
	WholesalePrice       float64 `gorm:"not null;default:0" json:"wholesale_price,omitempty"`

	PreparationTime int      `gorm:"not null;default:0" json:"preparation_time"`
	PreparationUnit PrepUnit `gorm:"type:varchar(10);not null;default:'minutes'" json:"preparation_unit"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PromoActive reports whether the promotional price applies at t.
func (p *Product) PromoActive(t time.Time) bool {
	if p.PromoPrice == nil {
		return false
	}
	if p.PromoStartsAt != nil && t.Before(*p.PromoStartsAt) {
		return false
	}
	if p.PromoEndsAt != nil && t.After(*p.PromoEndsAt) {
		return false
	}
	return true
}

// PrepMinutes normalizes the preparation time to minutes.
func (p *Product) PrepMinutes() int {
	switch p.PreparationUnit {
	case PrepUnitHours:
		return p.PreparationTime * 60
	case PrepUnitDays:
		return p.PreparationTime * 1440
	default:
		return p.PreparationTime
	}
}

// StringList is a jsonb-backed string slice.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func (c FlavorConfig) Value() (driver.Value, error)  { return json.Marshal(c) }
func (c *FlavorConfig) Scan(value interface{}) error { return scanJSON(value, c) }

func (c ComboConfig) Value() (driver.Value, error)  { return json.Marshal(c) }
func (c *ComboConfig) Scan(value interface{}) error { return scanJSON(value, c) }

func (g ComplementGroups) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	return json.Marshal(g)
}
func (g *ComplementGroups) Scan(value interface{}) error { return scanJSON(value, g) }

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// CreateProductRequest is the owner payload for creating a product.
type CreateProductRequest struct {
	CategoryID  uuid.UUID  `json:"category_id" binding:"required"`
	Name        string     `json:"name" binding:"required,min=1,max=128"`
	Description string     `json:"description"`
	Type        ProductType `json:"type" binding:"required,oneof=simple flavors combo wholesale complements"`
	Price       float64    `json:"price" binding:"gte=0"`
	Available   *bool      `json:"available"`
	Ingredients []string   `json:"ingredients"`

	PromoPrice    *float64   `json:"promo_price" binding:"omitempty,gte=0"`
	PromoStartsAt *time.Time `json:"promo_starts_at"`
	PromoEndsAt   *time.Time `json:"promo_ends_at"`

	Flavors     *FlavorConfig    `json:"flavors"`
	Combo       *ComboConfig     `json:"combo"`
	Complements ComplementGroups `json:"complements"`

	WholesaleMinQuantity int     `json:"wholesale_min_quantity" binding:"gte=0"`
	WholesalePrice       float64 `json:"wholesale_price" binding:"gte=0"`

	PreparationTime int      `json:"preparation_time" binding:"gte=0"`
	PreparationUnit PrepUnit `json:"preparation_unit" binding:"omitempty,oneof=minutes hours days"`
}

// UpdateProductRequest carries the same fields as create; nil pointers
// leave the stored value untouched only for scalar settings, while the
// type payloads are replaced wholesale.
type UpdateProductRequest = CreateProductRequest
