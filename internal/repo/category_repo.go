package repo

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"storefront/internal/models"
)

type CategoryRepo struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, category.Name).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return err
	}
	return nil
}

func (r *CategoryRepo) AllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM categories ORDER BY id`

	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		log.Printf("Error listing categories: %v", err)
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepo) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`
	if err := r.db.GetContext(ctx, category, query, category.ID, category.Name); err != nil {
		err = notFound(err)
		log.Printf("Error updating category %d: %v", category.ID, err)
		return err
	}
	return nil
}

// DeleteCategory removes the category; its products keep existing uncategorized.
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting category %d: %v", id, err)
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}
