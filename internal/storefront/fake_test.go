package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// fakeAPI records every dispatch the store makes.
type fakeAPI struct {
	mu           sync.Mutex
	orders       map[int]*models.Order
	products     []models.Product
	categories   []models.Category
	statusCalls  []models.OrderStatus
	productCalls []int
	checkouts    []models.CheckoutRequest
	deleted      []int
	failStatus   error
	failCheckout error
	failOrder    error
	// checkoutHook runs while Checkout is in flight.
	checkoutHook func()
}

func newFakeAPI() *fakeAPI {
	api := &fakeAPI{orders: map[int]*models.Order{}}
	for i := 1; i <= 14; i++ {
		categoryID := 1 + i%2
		api.products = append(api.products, models.Product{
			ID: i, Name: fmt.Sprintf("Shoe %02d", i), Price: decimal.NewFromInt(int64(10 * i)), CategoryID: &categoryID,
		})
	}
	api.products[0].Name = "Air Jordans"
	api.products[1].Name = "Christian Louboutin"
	api.categories = []models.Category{{ID: 1, Name: "mens"}, {ID: 2, Name: "womens"}}
	return api
}

func (f *fakeAPI) Order(_ context.Context, id int) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOrder != nil {
		return nil, f.failOrder
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeAPI) Products(_ context.Context, categoryID int) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls = append(f.productCalls, categoryID)
	products := []models.Product{}
	for _, p := range f.products {
		if categoryID == 0 || (p.CategoryID != nil && *p.CategoryID == categoryID) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (f *fakeAPI) Categories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeAPI) UpdateStatus(_ context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, status)
	if f.failStatus != nil {
		return nil, f.failStatus
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (f *fakeAPI) Checkout(_ context.Context, req models.CheckoutRequest) (*models.Order, error) {
	if f.checkoutHook != nil {
		f.checkoutHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCheckout != nil {
		return nil, f.failCheckout
	}
	f.checkouts = append(f.checkouts, req)
	info := req.ShippingInfo
	o := &models.Order{ID: 500 + len(f.checkouts), Status: models.OrderStatusCreated, ShippingInfo: &info}
	f.orders[o.ID] = o
	cp := *o
	return &cp, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.products[:0]
	for _, p := range f.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.products = kept
	return nil
}

var errUnavailable = errors.New("api unavailable")
