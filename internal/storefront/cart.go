package storefront

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

var ErrEmptyCart = errors.New("cart is empty")

type CartItem struct {
	Product  models.Product
	Quantity int
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddToCart adds quantity of a product; a product already in the cart has
// its quantity increased instead.
func (s *Store) AddToCart(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].Product.ID == product.ID {
			s.cart[i].Quantity += quantity
			return
		}
	}
	s.cart = append(s.cart, CartItem{Product: product, Quantity: quantity})
}

// AddProductToCart adds a product of the displayed catalog by id.
func (s *Store) AddProductToCart(productID, quantity int) bool {
	s.mu.Lock()
	var found *models.Product
	for i := range s.products {
		if s.products[i].ID == productID {
			p := s.products[i]
			found = &p
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return false
	}
	s.AddToCart(*found, quantity)
	return true
}

func (s *Store) Cart() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartItem(nil), s.cart...)
}

func (s *Store) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Checkout places the cart as an order with the given shipping info. Once
// the order is placed the ordered quantities leave the cart; anything added
// while the order was in flight stays.
func (s *Store) Checkout(ctx context.Context, shipping models.ShippingInfo) (*models.Order, error) {
	s.mu.Lock()
	api := s.api
	req := models.CheckoutRequest{ShippingInfo: shipping}
	for _, item := range s.cart {
		req.Items = append(req.Items, models.OrderItemRequest{ProductID: item.Product.ID, Quantity: item.Quantity})
	}
	s.mu.Unlock()

	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := api.Checkout(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeFromCart(req.Items)
	return order, nil
}

func (s *Store) removeFromCart(ordered []models.OrderItemRequest) {
	left := make(map[int]int, len(ordered))
	for _, item := range ordered {
		left[item.ProductID] += item.Quantity
	}

	kept := s.cart[:0]
	for _, item := range s.cart {
		item.Quantity -= left[item.Product.ID]
		delete(left, item.Product.ID)
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	s.cart = kept
}
