// Package client talks to the storefront JSON API over HTTP. The HTML views
// use it so that every write goes through the same handlers and the same
// server-side admin checks as any other API caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/models"
)

const DefaultTimeout = 10 * time.Second

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Code, e.Message)
}

type Client struct {
	baseURL   string
	http      *http.Client
	sessionID string
	token     string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithCredentials returns a copy that calls the API as the given session and,
// when token is non-empty, as the signed-in user the token belongs to.
func (c *Client) WithCredentials(sessionID, token string) *Client {
	cp := *c
	cp.sessionID = sessionID
	cp.token = token
	return &cp
}

func (c *Client) Order(ctx context.Context, id int) (*models.Order, error) {
	var order *models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+strconv.Itoa(id), nil, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// Products lists one category, or everything when categoryID is 0.
func (c *Client) Products(ctx context.Context, categoryID int) ([]models.Product, error) {
	path := "/api/products"
	if categoryID != 0 {
		path += "?" + url.Values{"categoryId": {strconv.Itoa(categoryID)}}.Encode()
	}

	products := []models.Product{}
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateStatus sends only the status. A nil order means the id is unknown.
func (c *Client) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	var order *models.Order
	body := models.StatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+strconv.Itoa(id)+"/status", body, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *Client) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	var order *models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/checkout", req, &order); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionID != "" {
		req.Header.Set(auth.SessionHeader, c.sessionID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(raw))
		}
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
