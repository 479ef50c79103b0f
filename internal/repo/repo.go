// Package repo is the storefront's PostgreSQL data access layer.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a single required row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownProduct is returned when an order references a product that does not exist.
	ErrUnknownProduct = errors.New("unknown product")

	// ErrOrderRef is returned when shipping info names an order that does not
	// exist or already has shipping info.
	ErrOrderRef = errors.New("order does not exist or already has shipping info")
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// withTx runs fn inside a transaction, committing when fn returns nil.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Rollback failed: %v", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// orderRef maps the constraint errors of shipping_infos.order_id to ErrOrderRef.
func orderRef(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case foreignKeyViolation, uniqueViolation:
			return ErrOrderRef
		}
	}
	return err
}
