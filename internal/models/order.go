package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "Created"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusCompleted  OrderStatus = "Completed"
)

// OrderStatuses lists every legal status. Any status may follow any other.
var OrderStatuses = []OrderStatus{
	OrderStatusCreated,
	OrderStatusProcessing,
	OrderStatusCancelled,
	OrderStatusCompleted,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID          int             `db:"id" json:"id"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	TimeOrdered *time.Time      `db:"time_ordered" json:"timeOrdered"`
	Status      OrderStatus     `db:"status" json:"status"`
	UserID      *int            `db:"user_id" json:"userId"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`

	OrderItems   []OrderItem   `db:"-" json:"orderItems"`
	ShippingInfo *ShippingInfo `db:"-" json:"shippingInfo"`
}

type OrderItem struct {
	ID        int       `db:"id" json:"id"`
	OrderID   int       `db:"order_id" json:"orderId"`
	ProductID int       `db:"product_id" json:"productId"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// OrderRequest carries the three fields an order is created or overwritten with.
type OrderRequest struct {
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" binding:"gte=0"`
	TimeOrdered *time.Time      `json:"timeOrdered"`
}

type StatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type OrderItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingInfo ShippingInfo       `json:"shippingInfo"`
}
