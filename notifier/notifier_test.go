package notifier

import (
	"testing"
	"time"

	"github.com/Mathdino/cardapio-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderMessage(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	order := &models.Order{
		Code:          "ABCD1234",
		CustomerName:  "Maria",
		CustomerPhone: "+5511988887777",
		DeliveryType:  models.DeliveryTypeDelivery,
		Address:       "Rua das Flores 10",
		PaymentMethod: models.PaymentMethodPix,
		Subtotal:      50.00,
		Discount:      5.00,
		Total:         45.00,
		CouponCode:    "SAVE10",
		ScheduledFor:  &scheduled,
		Notes:         "No doorbell",
		Items: []models.OrderItem{
			{ProductName: "Pizza", Quantity: 1, Subtotal: 40.00, Descriptions: models.StringList{"Flavor: Margherita"}},
			{ProductName: "Soda", Quantity: 2, Subtotal: 10.00},
		},
	}

	msg := FormatOrderMessage(order)
	assert.Contains(t, msg, "*New order ABCD1234*")
	assert.Contains(t, msg, "Delivery: Rua das Flores 10")
	assert.Contains(t, msg, "1x Pizza - 40.00")
	assert.Contains(t, msg, "  - Flavor: Margherita")
	assert.Contains(t, msg, "Discount (SAVE10): -5.00")
	assert.Contains(t, msg, "*Total: 45.00*")
	assert.Contains(t, msg, "Notes: No doorbell")
}

func TestFormatOrderMessage_Pickup(t *testing.T) {
	order := &models.Order{
		Code:          "WXYZ0001",
		CustomerName:  "Joao",
		DeliveryType:  models.DeliveryTypePickup,
		PaymentMethod: models.PaymentMethodCash,
		Subtotal:      20.00,
		Total:         20.00,
	}

	msg := FormatOrderMessage(order)
	assert.Contains(t, msg, "Pickup")
	assert.NotContains(t, msg, "Discount")
	assert.NotContains(t, msg, "Notes:")
}

func TestWhatsAppAddress(t *testing.T) {
	assert.Equal(t, "whatsapp:+5511999990000", whatsappAddress("+5511999990000"))
	assert.Equal(t, "whatsapp:+5511999990000", whatsappAddress("whatsapp:+5511999990000"))
}
