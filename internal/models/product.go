package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name" binding:"required"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	PhotoURL    string          `db:"photo_url" json:"photoUrl"`
	CategoryID  *int            `db:"category_id" json:"categoryId"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

type Category struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" binding:"required"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
