package repo

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"storefront/internal/models"
)

const productColumns = `id, name, description, price, photo_url, category_id, created_at, updated_at`

type ProductRepo struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, photo_url, category_id)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), 'defaultShoe.png'), $5)
		RETURNING id, photo_url, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		product.Name, product.Description, product.Price,
		product.PhotoURL, product.CategoryID,
	).Scan(&product.ID, &product.PhotoURL, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return err
	}
	return nil
}

func (r *ProductRepo) AllProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		log.Printf("Error listing products: %v", err)
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY id`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, categoryID); err != nil {
		log.Printf("Error listing products of category %d: %v", categoryID, err)
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4,
			photo_url = COALESCE(NULLIF($5, ''), photo_url), category_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns
	err := r.db.GetContext(ctx, product, query,
		product.ID, product.Name, product.Description,
		product.Price, product.PhotoURL, product.CategoryID,
	)
	if err != nil {
		err = notFound(err)
		log.Printf("Error updating product %d: %v", product.ID, err)
		return err
	}
	return nil
}

// DeleteProduct removes the product; its order items go with it by cascade.
func (r *ProductRepo) DeleteProduct(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}
