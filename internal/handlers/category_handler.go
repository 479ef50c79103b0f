package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

type CategoryHandler struct {
	categories CategoryStore
}

// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.AllCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var category models.Category
	if !bindJSON(c, &category) {
		return
	}

	if err := h.categories.CreateCategory(c.Request.Context(), &category); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var category models.Category
	if !bindJSON(c, &category) {
		return
	}
	category.ID = id

	if err := h.categories.UpdateCategory(c.Request.Context(), &category); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
