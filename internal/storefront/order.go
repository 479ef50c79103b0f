package storefront

import (
	"context"
	"fmt"
	"log"

	"storefront/internal/models"
)

// StatusOption is one entry of the order status selector. The placeholder has
// an empty Value.
type StatusOption struct {
	Label string
	Value string
}

const placeholderLabel = "---"

// StatusOptions is the placeholder followed by every order status.
func StatusOptions() []StatusOption {
	options := []StatusOption{{Label: placeholderLabel}}
	for _, status := range models.OrderStatuses {
		options = append(options, StatusOption{Label: string(status), Value: string(status)})
	}
	return options
}

// LoadOrder fetches the order and the full product list used to name its items.
// Whatever was loaded before is dropped first, so a failed fetch leaves the
// page empty rather than showing another order.
func (s *Store) LoadOrder(ctx context.Context, id int) error {
	s.mu.Lock()
	s.order = nil
	s.orderProduct = nil
	api := s.api
	s.mu.Unlock()

	order, err := api.Order(ctx, id)
	if err != nil {
		return err
	}
	products, err := api.Products(ctx, 0)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = order
	s.orderProduct = products
	return nil
}

func (s *Store) Order() *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// Ready reports whether the order page has everything it renders: the order,
// its shipping info and the product list.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order != nil && s.order.ShippingInfo != nil && s.orderProduct != nil
}

// CanChangeStatus gates the status selector. The API checks admin again on write.
func (s *Store) CanChangeStatus() bool {
	return s.IsAdmin()
}

// SelectStatus handles a choice in the status selector. The placeholder does
// nothing; any status is sent at once as {status, id}. A failed write leaves
// the displayed order as it was.
func (s *Store) SelectStatus(ctx context.Context, value string) error {
	if value == "" || value == placeholderLabel {
		return nil
	}
	status := models.OrderStatus(value)
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", value)
	}

	s.mu.Lock()
	order, api := s.order, s.api
	s.mu.Unlock()
	if order == nil {
		return nil
	}

	updated, err := api.UpdateStatus(ctx, order.ID, status)
	if err != nil {
		log.Printf("Status update of order %d to %s failed: %v", order.ID, status, err)
		return err
	}
	if updated == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order != nil && s.order.ID == updated.ID {
		// keep what the page already shows if the answer omits it
		if updated.ShippingInfo == nil {
			updated.ShippingInfo = s.order.ShippingInfo
		}
		s.order = updated
	}
	return nil
}

// ProductName resolves an order item's product against the loaded product list.
func (s *Store) ProductName(productID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.orderProduct {
		if p.ID == productID {
			return p.Name
		}
	}
	return ""
}
