// Package handlers is the storefront's JSON API. Every handler performs one
// store operation and hands store failures to ErrorResponder.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repo"
)

type OrderStore interface {
	AllOrders(ctx context.Context) ([]models.Order, error)
	OrderByID(ctx context.Context, id int) (*models.Order, error)
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	UpdateOrder(ctx context.Context, id int, req models.OrderRequest) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int) error
	AddItem(ctx context.Context, orderID int, req models.OrderItemRequest) (*models.OrderItem, error)
	Checkout(ctx context.Context, userID *int, req models.CheckoutRequest) (*models.Order, error)
}

type ProductStore interface {
	AllProducts(ctx context.Context) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	ProductByID(ctx context.Context, id int) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type CategoryStore interface {
	AllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id int) error
}

type ShippingStore interface {
	CreateShippingInfo(ctx context.Context, info *models.ShippingInfo) error
	ShippingInfoByID(ctx context.Context, id int) (*models.ShippingInfo, error)
	UpdateShippingInfo(ctx context.Context, info *models.ShippingInfo) error
}

type UserStore interface {
	UserByID(ctx context.Context, id int) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	SessionUser(ctx context.Context, sessionID string) (*models.User, error)
}

// API bundles the JSON handlers and mounts them under one router group.
type API struct {
	Orders     *OrderHandler
	Products   *ProductHandler
	Categories *CategoryHandler
	Shipping   *ShippingHandler
	Auth       *AuthHandler
}

func (a *API) Register(api *gin.RouterGroup) {
	admin := auth.RequireAdmin()

	orders := api.Group("/orders")
	{
		orders.GET("", a.Orders.List)
		orders.POST("", a.Orders.Create)
		orders.POST("/checkout", a.Orders.Checkout)
		orders.GET("/:orderId", a.Orders.Get)
		orders.PUT("/:orderId", admin, a.Orders.Update)
		orders.DELETE("/:orderId", admin, a.Orders.Delete)
		orders.PUT("/:orderId/status", admin, a.Orders.UpdateStatus)
		orders.POST("/:orderId/items", a.Orders.AddItem)
	}

	products := api.Group("/products")
	{
		products.GET("", a.Products.List)
		products.POST("", admin, a.Products.Create)
		products.GET("/:id", a.Products.Get)
		products.PUT("/:id", admin, a.Products.Update)
		products.DELETE("/:id", admin, a.Products.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", a.Categories.List)
		categories.POST("", admin, a.Categories.Create)
		categories.PUT("/:id", admin, a.Categories.Update)
		categories.DELETE("/:id", admin, a.Categories.Delete)
	}

	shipping := api.Group("/shippingInfo")
	{
		shipping.POST("", a.Shipping.Create)
		shipping.GET("/:id", a.Shipping.Get)
		shipping.PUT("/:id", a.Shipping.Update)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", a.Auth.Login)
		authGroup.POST("/logout", a.Auth.Logout)
		authGroup.GET("/me", a.Auth.Me)
	}

	api.GET("/health", Health)
}

// NewAPI wires the handlers to their stores.
func NewAPI(orders OrderStore, products ProductStore, categories CategoryStore,
	shipping ShippingStore, users UserStore, tokens *auth.Tokens, notifier notify.Notifier) *API {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &API{
		Orders:     &OrderHandler{orders: orders, users: users, notifier: notifier},
		Products:   &ProductHandler{products: products},
		Categories: &CategoryHandler{categories: categories},
		Shipping:   &ShippingHandler{shipping: shipping},
		Auth:       &AuthHandler{users: users, tokens: tokens},
	}
}

// ErrorResponder is the generic error middleware: handlers record store
// failures with c.Error and it writes the response.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, repo.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, repo.ErrUnknownProduct), errors.Is(err, repo.ErrOrderRef):
			status = http.StatusBadRequest
		default:
			log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
