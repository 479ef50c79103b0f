package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/repo"
)

type ProductHandler struct {
	products ProductStore
}

// GET /api/products?categoryId= ; an empty category lists everything.
func (h *ProductHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []models.Product
		err      error
	)
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, convErr := strconv.Atoi(raw)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}
		products, err = h.products.ProductsByCategory(ctx, categoryID)
	} else {
		products, err = h.products.AllProducts(ctx)
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id answers null for an unknown id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := h.products.ProductByID(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}
	if product.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	if err := h.products.CreateProduct(c.Request.Context(), &product); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var product models.Product
	if !bindJSON(c, &product) {
		return
	}
	if product.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	product.ID = id

	if err := h.products.UpdateProduct(c.Request.Context(), &product); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
