package repo

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"storefront/internal/models"
)

const shippingColumns = `id, order_id, first_name, last_name, street_address, city,
	region, postal_code, country, email, phone_number, created_at`

type ShippingRepo struct {
	db *sqlx.DB
}

func NewShippingRepo(db *sqlx.DB) *ShippingRepo {
	return &ShippingRepo{db: db}
}

func (r *ShippingRepo) CreateShippingInfo(ctx context.Context, info *models.ShippingInfo) error {
	if err := insertShipping(ctx, r.db, info); err != nil {
		err = orderRef(err)
		log.Printf("Error creating shipping info: %v", err)
		return err
	}
	return nil
}

func (r *ShippingRepo) ShippingInfoByID(ctx context.Context, id int) (*models.ShippingInfo, error) {
	var info models.ShippingInfo
	query := `SELECT ` + shippingColumns + ` FROM shipping_infos WHERE id = $1`
	if err := r.db.GetContext(ctx, &info, query, id); err != nil {
		return nil, notFound(err)
	}
	return &info, nil
}

func (r *ShippingRepo) UpdateShippingInfo(ctx context.Context, info *models.ShippingInfo) error {
	query := `
		UPDATE shipping_infos
		SET order_id = $2, first_name = $3, last_name = $4, street_address = $5, city = $6,
			region = $7, postal_code = $8, country = $9, email = $10, phone_number = $11
		WHERE id = $1
		RETURNING ` + shippingColumns
	err := r.db.GetContext(ctx, info, query,
		info.ID, info.OrderID, info.FirstName, info.LastName, info.StreetAddress, info.City,
		info.Region, info.PostalCode, info.Country, info.Email, info.PhoneNumber,
	)
	if err != nil {
		err = orderRef(notFound(err))
		log.Printf("Error updating shipping info %d: %v", info.ID, err)
		return err
	}
	return nil
}

func insertShipping(ctx context.Context, q sqlx.QueryerContext, info *models.ShippingInfo) error {
	query := `
		INSERT INTO shipping_infos (order_id, first_name, last_name, street_address, city,
			region, postal_code, country, email, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	return q.QueryRowxContext(ctx, query,
		info.OrderID, info.FirstName, info.LastName, info.StreetAddress, info.City,
		info.Region, info.PostalCode, info.Country, info.Email, info.PhoneNumber,
	).Scan(&info.ID, &info.CreatedAt)
}
