package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repo"
)

type OrderHandler struct {
	orders   OrderStore
	users    UserStore
	notifier notify.Notifier
}

// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.AllOrders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:orderId answers null for an unknown id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.OrderByID(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req models.OrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /api/orders/:orderId overwrites price, quantity and time ordered.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req models.OrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}

	orders, err := h.orders.UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// DELETE /api/orders/:orderId
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/orders/:orderId/status changes only the status. Every status may
// follow every other one.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req models.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status " + string(req.Status)})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	h.notifier.OrderStatusChanged(c.Request.Context(), order)
	c.JSON(http.StatusOK, order)
}

// POST /api/orders/:orderId/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := paramID(c, "orderId")
	if !ok {
		return
	}
	var req models.OrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.orders.AddItem(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// POST /api/orders/checkout places an order with its items and shipping info
// in one write. The order belongs to the signed-in user, or to the session's
// guest user.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	user := auth.CurrentUser(c)
	if user == nil {
		guest, err := h.users.SessionUser(c.Request.Context(), auth.SessionID(c))
		if err != nil {
			c.Error(err)
			return
		}
		user = guest
	}

	order, err := h.orders.Checkout(c.Request.Context(), &user.ID, req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, order)
}
