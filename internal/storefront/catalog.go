package storefront

import (
	"context"
	"log"
	"strings"

	"github.com/sahilm/fuzzy"

	"storefront/internal/models"
)

const PageSize = 6

type productNames []models.Product

func (p productNames) String(i int) string { return p[i].Name }
func (p productNames) Len() int            { return len(p) }

// LoadCatalog fetches the categories and the products of the current
// category. The page and any search stay as they were, applied to the fresh list.
func (s *Store) LoadCatalog(ctx context.Context) error {
	api := s.client()

	categories, err := api.Categories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	categoryID := s.categoryID
	s.mu.Unlock()

	products, err := api.Products(ctx, categoryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	if s.categoryID != categoryID {
		// a category change raced this fetch and already has its own list
		return nil
	}
	s.products = products
	if s.query != "" {
		s.search(s.query)
	}
	s.page = clamp(s.page, 1, pageCount(len(s.visible())))
	return nil
}

// SelectCategory re-fetches the products of a category (0 is every category)
// and goes back to the first page.
func (s *Store) SelectCategory(ctx context.Context, categoryID int) error {
	products, err := s.client().Products(ctx, categoryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryID = categoryID
	s.products = products
	s.page = 1
	s.searchHit = nil
	s.query = ""
	return nil
}

func (s *Store) CategoryID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryID
}

func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories
}

// SetPage moves to page n, clamped to the existing pages.
func (s *Store) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = clamp(n, 1, pageCount(len(s.visible())))
}

func (s *Store) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

func (s *Store) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pageCount(len(s.visible()))
}

// PageProducts is the slice of the displayed list on the current page.
func (s *Store) PageProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.visible()
	start := (s.page - 1) * PageSize
	if start >= len(list) {
		return nil
	}
	end := min(start+PageSize, len(list))
	return list[start:end]
}

// Search replaces the displayed list with the single best fuzzy match for
// query. An empty query or no match restores the full list.
func (s *Store) Search(query string) *models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = strings.TrimSpace(query)
	s.page = 1
	return s.search(s.query)
}

func (s *Store) search(query string) *models.Product {
	s.searchHit = nil
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, productNames(s.products))
	if len(matches) == 0 {
		return nil
	}
	hit := s.products[matches[0].Index]
	s.searchHit = &hit
	return s.searchHit
}

func (s *Store) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Searching reports whether the displayed list is a search result.
func (s *Store) Searching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchHit != nil
}

// Back leaves search results for the full list.
func (s *Store) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchHit = nil
	s.query = ""
	s.page = 1
}

// DeleteProduct removes a product from the shop, then re-fetches the current
// category and goes back to the first page. The product also leaves the cart.
func (s *Store) DeleteProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	api, categoryID := s.api, s.categoryID
	s.mu.Unlock()

	if err := api.DeleteProduct(ctx, productID); err != nil {
		log.Printf("Deleting product %d failed: %v", productID, err)
		return err
	}

	s.mu.Lock()
	kept := s.cart[:0]
	for _, item := range s.cart {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	s.cart = kept
	s.mu.Unlock()

	return s.SelectCategory(ctx, categoryID)
}

func (s *Store) visible() []models.Product {
	if s.searchHit != nil {
		return []models.Product{*s.searchHit}
	}
	return s.products
}

func pageCount(n int) int {
	return (n + PageSize - 1) / PageSize
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(n, hi))
}
