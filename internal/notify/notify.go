// Package notify tells the shop's admins about order status changes.
// Delivery is best effort: failures are logged and never reach the caller.
package notify

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"
)

type Notifier interface {
	OrderStatusChanged(ctx context.Context, order *models.Order)
}

type Nop struct{}

func (Nop) OrderStatusChanged(context.Context, *models.Order) {}

var statusLines = map[models.OrderStatus]string{
	models.OrderStatusCreated:    "has been received",
	models.OrderStatusProcessing: "is being processed",
	models.OrderStatusCancelled:  "was cancelled",
	models.OrderStatusCompleted:  "is complete and on its way",
}

// StatusMessage renders the notification text for an order's current status.
func StatusMessage(order *models.Order) string {
	var b strings.Builder
	line, ok := statusLines[order.Status]
	if !ok {
		line = "changed status"
	}
	fmt.Fprintf(&b, "Order #%d %s.\n", order.ID, line)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Total: $%s", order.Price.StringFixed(2))
	if order.ShippingInfo != nil && order.ShippingInfo.Email != "" {
		fmt.Fprintf(&b, "\nCustomer: %s", order.ShippingInfo.Email)
	}
	return b.String()
}
