// Package storefront holds the per-session shopping state behind the HTML
// views: the catalog being browsed, the cart, the order being viewed and the
// signed-in user. A Store never talks to the database; every fetch and write
// is dispatched through API.
package storefront

import (
	"context"
	"sync"

	"storefront/internal/models"
)

// API is the subset of the JSON API the storefront dispatches to.
type API interface {
	Order(ctx context.Context, id int) (*models.Order, error)
	Products(ctx context.Context, categoryID int) ([]models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error)
	Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Order, error)
	DeleteProduct(ctx context.Context, id int) error
}

// Store is one session's state. Its methods are safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	api API

	user *models.User

	categories []models.Category
	categoryID int
	products   []models.Product
	page       int
	searchHit  *models.Product
	query      string

	cart []CartItem

	order        *models.Order
	orderProduct []models.Product
}

func NewStore(api API) *Store {
	return &Store{api: api, page: 1}
}

// SetAPI rebinds the store to an API acting with the current request's credentials.
func (s *Store) SetAPI(api API) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = api
}

func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.IsAdmin
}

func (s *Store) client() API {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.api
}
