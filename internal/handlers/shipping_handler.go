package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/repo"
)

type ShippingHandler struct {
	shipping ShippingStore
}

// POST /api/shippingInfo
func (h *ShippingHandler) Create(c *gin.Context) {
	var info models.ShippingInfo
	if !bindJSON(c, &info) {
		return
	}

	if err := h.shipping.CreateShippingInfo(c.Request.Context(), &info); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// GET /api/shippingInfo/:id
func (h *ShippingHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	info, err := h.shipping.ShippingInfoByID(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// PUT /api/shippingInfo/:id
func (h *ShippingHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var info models.ShippingInfo
	if !bindJSON(c, &info) {
		return
	}
	info.ID = id

	if err := h.shipping.UpdateShippingInfo(c.Request.Context(), &info); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, info)
}
