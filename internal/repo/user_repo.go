package repo

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"storefront/internal/models"
)

const userColumns = `id, session_id, email, password_hash, is_admin, created_at, updated_at`

type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (session_id, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query,
		user.SessionID, user.Email, user.PasswordHash, user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return err
	}
	return nil
}

func (r *UserRepo) UserByID(ctx context.Context, id int) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// SessionUser returns the user bound to a browser session, creating a guest
// user on first sight.
func (r *UserRepo) SessionUser(ctx context.Context, sessionID string) (*models.User, error) {
	query := `
		INSERT INTO users (session_id)
		VALUES ($1)
		ON CONFLICT (session_id) DO UPDATE SET updated_at = NOW()
		RETURNING ` + userColumns

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, sessionID); err != nil {
		log.Printf("Error resolving session user: %v", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) one(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}
