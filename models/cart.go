package models

import (
	"sort"
	"time"
)

// ItemSelections is everything a customer configured on one product.
// Combo and Complements map group id -> item id -> quantity.
type ItemSelections struct {
	FlavorIDs          []string                  `json:"flavor_ids,omitempty"`
	Combo              map[string]map[string]int `json:"combo,omitempty"`
	Complements        map[string]map[string]int `json:"complements,omitempty"`
	RemovedIngredients []string                  `json:"removed_ingredients,omitempty"`
}

// HasCombo reports whether any combo selection carries a quantity.
func (s *ItemSelections) HasCombo() bool {
	for _, items := range s.Combo {
		for _, qty := range items {
			if qty > 0 {
				return true
			}
		}
	}
	return false
}

// HasComplements reports whether any complement selection carries a quantity.
func (s *ItemSelections) HasComplements() bool {
	for _, items := range s.Complements {
		for _, qty := range items {
			if qty > 0 {
				return true
			}
		}
	}
	return false
}

// SameFlavors compares flavor selections order-independently.
func (s *ItemSelections) SameFlavors(other *ItemSelections) bool {
	if len(s.FlavorIDs) != len(other.FlavorIDs) {
		return false
	}
	a := append([]string(nil), s.FlavorIDs...)
	b := append([]string(nil), other.FlavorIDs...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CartItem is one line in a session cart. UnitPrice and Subtotal are
// recomputed on every quantity or selection change, never stored stale.
type CartItem struct {
	ID           string         `json:"id"`
	ProductID    string         `json:"product_id"`
	ProductName  string         `json:"product_name"`
	Quantity     int            `json:"quantity"`
	Selections   ItemSelections `json:"selections"`
	UnitPrice    float64        `json:"unit_price"`
	Subtotal     float64        `json:"subtotal"`
	Descriptions []string       `json:"descriptions,omitempty"` // resolved modifier labels for the order summary
}

// AppliedCoupon is the single coupon attached to a cart.
type AppliedCoupon struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// Cart is a session-scoped aggregate, owned exclusively by one browsing
// session and persisted in redis between requests.
type Cart struct {
	StoreID   string         `json:"store_id"`
	SessionID string         `json:"session_id"`
	Items     []CartItem     `json:"items"`
	Coupon    *AppliedCoupon `json:"coupon,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Subtotal is the sum of line subtotals.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal
	}
	return total
}

// Discount is the applied coupon's discount, 0 when none.
func (c *Cart) Discount() float64 {
	if c.Coupon == nil {
		return 0
	}
	return c.Coupon.Discount
}

// Total never goes negative.
func (c *Cart) Total() float64 {
	total := c.Subtotal() - c.Discount()
	if total < 0 {
		return 0
	}
	return total
}

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// AddItemRequest is the customer payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID  string         `json:"product_id" binding:"required"`
	Quantity   int            `json:"quantity" binding:"required,gt=0"`
	Selections ItemSelections `json:"selections"`
}

// UpdateItemRequest changes a line's quantity; zero or below removes it.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest attaches a coupon code to the cart.
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
