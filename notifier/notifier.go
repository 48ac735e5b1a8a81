package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
)

// SendResult reports a dispatched message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// OrderNotifier delivers a finished order to the store's WhatsApp number.
// Delivery is best-effort: callers log failures and never fail checkout
// on them.
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, store *models.Store, order *models.Order) (SendResult, error)
}

// FormatOrderMessage renders the plain-text order summary sent to the
// store.
func FormatOrderMessage(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New order %s*\n", order.Code)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", order.CustomerName, order.CustomerPhone)
	if order.DeliveryType == models.DeliveryTypeDelivery {
		fmt.Fprintf(&b, "Delivery: %s\n", order.Address)
	} else {
		b.WriteString("Pickup\n")
	}
	if order.ScheduledFor != nil {
		fmt.Fprintf(&b, "Scheduled for: %s\n", order.ScheduledFor.Format("02/01 15:04"))
	}
	b.WriteString("\n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - %.2f\n", item.Quantity, item.ProductName, item.Subtotal)
		for _, desc := range item.Descriptions {
			fmt.Fprintf(&b, "  - %s\n", desc)
		}
	}

	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", order.Subtotal)
	if order.Discount > 0 {
		fmt.Fprintf(&b, "Discount (%s): -%.2f\n", order.CouponCode, order.Discount)
	}
	fmt.Fprintf(&b, "*Total: %.2f*\n", order.Total)
	fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	if order.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", order.Notes)
	}

	return b.String()
}
