package storefront

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestCatalogPaging(t *testing.T) {
	api := newFakeAPI()
	s := NewStore(api)
	require.NoError(t, s.LoadCatalog(context.Background()))

	assert.Len(t, s.Categories(), 2)
	assert.Equal(t, 3, s.PageCount())
	assert.Len(t, s.PageProducts(), 6)

	s.SetPage(3)
	assert.Equal(t, 3, s.Page())
	assert.Len(t, s.PageProducts(), 2)

	s.SetPage(9)
	assert.Equal(t, 3, s.Page())
	s.SetPage(0)
	assert.Equal(t, 1, s.Page())
}

func TestCategoryChangeResetsPage(t *testing.T) {
	api := newFakeAPI()
	s := NewStore(api)
	require.NoError(t, s.LoadCatalog(context.Background()))
	s.SetPage(2)

	require.NoError(t, s.SelectCategory(context.Background(), 2))
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 2, s.CategoryID())
	assert.Equal(t, 2, s.PageCount())
	assert.Equal(t, []int{0, 2}, api.productCalls)

	require.NoError(t, s.LoadCatalog(context.Background()))
	assert.Equal(t, []int{0, 2, 2}, api.productCalls)
	assert.Equal(t, 2, s.CategoryID())
}

func TestLoadCatalogRefetchesKeepingPage(t *testing.T) {
	api := newFakeAPI()
	s := NewStore(api)
	require.NoError(t, s.LoadCatalog(context.Background()))
	s.SetPage(2)

	api.products[6].Name = "Prada"
	api.products = append(api.products, models.Product{ID: 15, Name: "Gucci Loafers", Price: decimal.NewFromInt(900)})
	require.NoError(t, s.LoadCatalog(context.Background()))

	assert.Equal(t, 2, s.Page())
	assert.Equal(t, 3, s.PageCount())
	assert.Equal(t, "Prada", s.PageProducts()[0].Name)

	s.Search("jordan")
	api.products[0].Price = decimal.NewFromInt(1200)
	require.NoError(t, s.LoadCatalog(context.Background()))
	require.True(t, s.Searching())
	require.Len(t, s.PageProducts(), 1)
	assert.True(t, s.PageProducts()[0].Price.Equal(decimal.NewFromInt(1200)))

	api.products = api.products[2:4]
	require.NoError(t, s.LoadCatalog(context.Background()))
	assert.False(t, s.Searching())
	s.Back()
	s.SetPage(3)
	assert.Equal(t, 1, s.Page())
}

func TestDeleteProductRefetchesFromFirstPage(t *testing.T) {
	api := newFakeAPI()
	s := NewStore(api)
	require.NoError(t, s.LoadCatalog(context.Background()))
	s.AddProductToCart(1, 1)
	s.AddProductToCart(2, 1)
	s.Search("jordan")

	require.NoError(t, s.DeleteProduct(context.Background(), 1))

	assert.Equal(t, []int{1}, api.deleted)
	assert.Equal(t, 1, s.Page())
	assert.False(t, s.Searching())
	assert.Equal(t, 3, s.PageCount())
	assert.NotEqual(t, 1, s.PageProducts()[0].ID)
	require.Len(t, s.Cart(), 1)
	assert.Equal(t, 2, s.Cart()[0].Product.ID)
}

func TestSearchShowsBestMatchOnly(t *testing.T) {
	s := NewStore(newFakeAPI())
	require.NoError(t, s.LoadCatalog(context.Background()))
	s.SetPage(2)

	hit := s.Search("jordan")
	require.NotNil(t, hit)
	assert.Equal(t, "Air Jordans", hit.Name)
	assert.True(t, s.Searching())
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 1, s.PageCount())
	require.Len(t, s.PageProducts(), 1)

	s.Back()
	assert.False(t, s.Searching())
	assert.Len(t, s.PageProducts(), 6)
	assert.Equal(t, 3, s.PageCount())

	assert.Nil(t, s.Search("zzzzqqq"))
	assert.False(t, s.Searching())
	assert.Nil(t, s.Search("  "))
}
