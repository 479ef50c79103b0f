package models

import "time"

type ShippingInfo struct {
	ID            int       `db:"id" json:"id"`
	OrderID       *int      `db:"order_id" json:"orderId"`
	FirstName     string    `db:"first_name" json:"firstName"`
	LastName      string    `db:"last_name" json:"lastName"`
	StreetAddress string    `db:"street_address" json:"streetAddress"`
	City          string    `db:"city" json:"city"`
	Region        string    `db:"region" json:"region"`
	PostalCode    string    `db:"postal_code" json:"postalCode"`
	Country       string    `db:"country" json:"country"`
	Email         string    `db:"email" json:"email"`
	PhoneNumber   string    `db:"phone_number" json:"phoneNumber"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
