package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repo"
)

// memStore is an in-memory stand-in for the repo layer.
type memStore struct {
	mu         sync.Mutex
	nextID     int
	orders     map[int]*models.Order
	products   map[int]*models.Product
	categories map[int]*models.Category
	shipping   map[int]*models.ShippingInfo
	users      map[int]*models.User
	failWith   error
}

func newMemStore() *memStore {
	return &memStore{
		nextID:     100,
		orders:     map[int]*models.Order{},
		products:   map[int]*models.Product{},
		categories: map[int]*models.Category{},
		shipping:   map[int]*models.ShippingInfo{},
		users:      map[int]*models.User{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) AllOrders(context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	orders := []models.Order{}
	for id := 0; id <= m.nextID; id++ {
		if o, ok := m.orders[id]; ok {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *memStore) OrderByID(_ context.Context, id int) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) CreateOrder(_ context.Context, req models.OrderRequest) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := &models.Order{
		ID: m.id(), Price: req.Price, Quantity: req.Quantity, TimeOrdered: req.TimeOrdered,
		Status: models.OrderStatusCreated, OrderItems: []models.OrderItem{},
	}
	m.orders[o.ID] = o
	cp := *o
	return &cp, nil
}

func (m *memStore) UpdateOrder(_ context.Context, id int, req models.OrderRequest) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return []models.Order{}, nil
	}
	o.Price, o.Quantity, o.TimeOrdered = req.Price, req.Quantity, req.TimeOrdered
	return []models.Order{*o}, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

func (m *memStore) DeleteOrder(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *memStore) AddItem(_ context.Context, orderID int, req models.OrderItemRequest) (*models.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if _, ok := m.products[req.ProductID]; !ok {
		return nil, repo.ErrUnknownProduct
	}
	item := models.OrderItem{ID: m.id(), OrderID: orderID, ProductID: req.ProductID, Quantity: req.Quantity}
	o.OrderItems = append(o.OrderItems, item)
	return &item, nil
}

func (m *memStore) Checkout(_ context.Context, userID *int, req models.CheckoutRequest) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	o := &models.Order{ID: m.id(), Status: models.OrderStatusCreated, TimeOrdered: &now, UserID: userID}
	for _, item := range req.Items {
		p, ok := m.products[item.ProductID]
		if !ok {
			return nil, repo.ErrUnknownProduct
		}
		o.Price = o.Price.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		o.Quantity += item.Quantity
		o.OrderItems = append(o.OrderItems, models.OrderItem{
			ID: m.id(), OrderID: o.ID, ProductID: item.ProductID, Quantity: item.Quantity,
		})
	}
	info := req.ShippingInfo
	info.ID = m.id()
	info.OrderID = &o.ID
	o.ShippingInfo = &info
	m.orders[o.ID] = o
	cp := *o
	return &cp, nil
}

func (m *memStore) AllProducts(context.Context) ([]models.Product, error) {
	return m.filterProducts(func(*models.Product) bool { return true }), nil
}

func (m *memStore) ProductsByCategory(_ context.Context, categoryID int) ([]models.Product, error) {
	return m.filterProducts(func(p *models.Product) bool {
		return p.CategoryID != nil && *p.CategoryID == categoryID
	}), nil
}

func (m *memStore) filterProducts(keep func(*models.Product) bool) []models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	products := []models.Product{}
	for id := 0; id <= m.nextID; id++ {
		if p, ok := m.products[id]; ok && keep(p) {
			products = append(products, *p)
		}
	}
	return products
}

func (m *memStore) ProductByID(_ context.Context, id int) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) CreateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.id()
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *memStore) UpdateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *memStore) DeleteProduct(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) AllCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	categories := []models.Category{}
	for id := 0; id <= m.nextID; id++ {
		if c, ok := m.categories[id]; ok {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

func (m *memStore) CreateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = m.id()
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *memStore) UpdateCategory(_ context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[category.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *category
	m.categories[category.ID] = &cp
	return nil
}

func (m *memStore) DeleteCategory(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// orderRefOK mirrors the order_id foreign key and unique constraint of shipping_infos.
func (m *memStore) orderRefOK(info *models.ShippingInfo) bool {
	if info.OrderID == nil {
		return true
	}
	if _, ok := m.orders[*info.OrderID]; !ok {
		return false
	}
	for _, other := range m.shipping {
		if other.ID != info.ID && other.OrderID != nil && *other.OrderID == *info.OrderID {
			return false
		}
	}
	return true
}

func (m *memStore) CreateShippingInfo(_ context.Context, info *models.ShippingInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.orderRefOK(info) {
		return repo.ErrOrderRef
	}
	info.ID = m.id()
	cp := *info
	m.shipping[info.ID] = &cp
	return nil
}

func (m *memStore) ShippingInfoByID(_ context.Context, id int) (*models.ShippingInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.shipping[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *info
	return &cp, nil
}

func (m *memStore) UpdateShippingInfo(_ context.Context, info *models.ShippingInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shipping[info.ID]; !ok {
		return repo.ErrNotFound
	}
	if !m.orderRefOK(info) {
		return repo.ErrOrderRef
	}
	cp := *info
	m.shipping[info.ID] = &cp
	return nil
}

func (m *memStore) UserByID(_ context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memStore) SessionUser(_ context.Context, sessionID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.SessionID == sessionID {
			return u, nil
		}
	}
	u := &models.User{ID: m.id(), SessionID: sessionID}
	m.users[u.ID] = u
	return u, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []models.Order
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, order *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, *order)
}
