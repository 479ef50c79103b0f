// Package web serves the storefront's HTML pages. Pages render a session's
// storefront.Store and turn form posts into store dispatches.
package web

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/storefront"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"seq": func(n int) []int {
			pages := make([]int, n)
			for i := range pages {
				pages[i] = i + 1
			}
			return pages
		},
	}).ParseFS(templateFS, "templates/*.html")
}

type Handler struct {
	sessions *storefront.Sessions
}

func NewHandler(sessions *storefront.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// Register mounts the pages. The engine must already carry auth.Middleware.
func (h *Handler) Register(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.Catalog)
	r.POST("/cart/items", h.AddToCart)
	r.GET("/cart", h.Cart)
	r.POST("/checkout", h.Checkout)
	r.GET("/orders/:id", h.Order)
	r.POST("/orders/:id/status", h.SelectStatus)
	r.POST("/products/:id/delete", h.DeleteProduct)
	return nil
}

// store returns the caller's session store, acting with the caller's credentials.
func (h *Handler) store(c *gin.Context) *storefront.Store {
	store := h.sessions.Get(auth.SessionID(c), auth.TokenFromRequest(c))
	store.SetUser(auth.CurrentUser(c))
	return store
}

// GET /?categoryId=&page=&q=&back=
func (h *Handler) Catalog(c *gin.Context) {
	store := h.store(c)
	ctx := c.Request.Context()

	if err := store.LoadCatalog(ctx); err != nil {
		h.fail(c, err)
		return
	}
	if raw, ok := c.GetQuery("categoryId"); ok {
		categoryID, _ := strconv.Atoi(raw)
		if categoryID != store.CategoryID() {
			if err := store.SelectCategory(ctx, categoryID); err != nil {
				h.fail(c, err)
				return
			}
		}
	}

	switch {
	case c.Query("back") != "":
		store.Back()
	case c.Query("q") != "":
		store.Search(c.Query("q"))
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		store.SetPage(page)
	}

	c.HTML(http.StatusOK, "catalog.html", gin.H{
		"User":       store.User(),
		"Categories": store.Categories(),
		"CategoryID": store.CategoryID(),
		"Products":   store.PageProducts(),
		"Page":       store.Page(),
		"PageCount":  store.PageCount(),
		"Searching":  store.Searching(),
		"Query":      store.Query(),
		"CartCount":  len(store.Cart()),
		"IsAdmin":    store.IsAdmin(),
	})
}

type cartForm struct {
	ProductID int `form:"productId" binding:"required"`
	Quantity  int `form:"quantity"`
}

// POST /cart/items
func (h *Handler) AddToCart(c *gin.Context) {
	var form cartForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	if !h.store(c).AddProductToCart(form.ProductID, form.Quantity) {
		c.String(http.StatusBadRequest, "Unknown product")
		return
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// GET /cart
func (h *Handler) Cart(c *gin.Context) {
	store := h.store(c)
	c.HTML(http.StatusOK, "cart.html", gin.H{
		"User":  store.User(),
		"Items": store.Cart(),
		"Total": store.CartTotal(),
	})
}

type shippingForm struct {
	FirstName     string `form:"firstName"`
	LastName      string `form:"lastName"`
	StreetAddress string `form:"streetAddress"`
	City          string `form:"city"`
	Region        string `form:"region"`
	PostalCode    string `form:"postalCode"`
	Country       string `form:"country"`
	Email         string `form:"email" binding:"required,email"`
	PhoneNumber   string `form:"phoneNumber"`
}

// POST /checkout
func (h *Handler) Checkout(c *gin.Context) {
	var form shippingForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.store(c).Checkout(c.Request.Context(), models.ShippingInfo{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		StreetAddress: form.StreetAddress,
		City:          form.City,
		Region:        form.Region,
		PostalCode:    form.PostalCode,
		Country:       form.Country,
		Email:         form.Email,
		PhoneNumber:   form.PhoneNumber,
	})
	if errors.Is(err, storefront.ErrEmptyCart) {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/orders/"+strconv.Itoa(order.ID))
}

// GET /orders/:id renders nothing until the order, its shipping info and the
// product list are all loaded.
func (h *Handler) Order(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid order id")
		return
	}

	store := h.store(c)
	if err := store.LoadOrder(c.Request.Context(), id); err != nil {
		log.Printf("Loading order %d: %v", id, err)
	}
	if !store.Ready() {
		c.Status(http.StatusOK)
		return
	}

	c.HTML(http.StatusOK, "order.html", gin.H{
		"User":          store.User(),
		"Order":         store.Order(),
		"Store":         store,
		"ShowSelector":  store.CanChangeStatus(),
		"StatusOptions": storefront.StatusOptions(),
	})
}

// POST /orders/:id/status dispatches the selected status and shows the order
// again. A failed update is only logged.
func (h *Handler) SelectStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid order id")
		return
	}

	store := h.store(c)
	if order := store.Order(); order == nil || order.ID != id {
		if err := store.LoadOrder(c.Request.Context(), id); err != nil {
			log.Printf("Loading order %d: %v", id, err)
		}
	}
	if order := store.Order(); order != nil && order.ID == id {
		_ = store.SelectStatus(c.Request.Context(), c.PostForm("status"))
	}

	c.Redirect(http.StatusSeeOther, "/orders/"+strconv.Itoa(id))
}

// POST /products/:id/delete is offered to admins only; the API checks admin
// again. A failed delete is logged and the catalog shown as it was.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid product id")
		return
	}

	_ = h.store(c).DeleteProduct(c.Request.Context(), id)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) fail(c *gin.Context, err error) {
	log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.String(http.StatusBadGateway, "The shop is unavailable, try again later.")
}
