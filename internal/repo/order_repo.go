package repo

import (
	"context"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

const orderColumns = `id, price, quantity, time_ordered, status, user_id, created_at, updated_at`

type OrderRepo struct {
	db *sqlx.DB
}

func NewOrderRepo(db *sqlx.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) AllOrders(ctx context.Context) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id`

	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		log.Printf("Error listing orders: %v", err)
		return nil, err
	}
	if err := r.attach(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) OrderByID(ctx context.Context, id int) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, notFound(err)
	}

	orders := []models.Order{order}
	if err := r.attach(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// attach loads order items and shipping info for every order in two queries.
func (r *OrderRepo) attach(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, len(orders))
	index := make(map[int]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].OrderItems = []models.OrderItem{}
	}

	query, args, err := sqlx.In(`
		SELECT id, order_id, product_id, quantity, created_at
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY id`, ids)
	if err != nil {
		return err
	}
	var items []models.OrderItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		log.Printf("Error loading order items: %v", err)
		return err
	}
	for _, item := range items {
		i := index[item.OrderID]
		orders[i].OrderItems = append(orders[i].OrderItems, item)
	}

	query, args, err = sqlx.In(`SELECT `+shippingColumns+` FROM shipping_infos WHERE order_id IN (?)`, ids)
	if err != nil {
		return err
	}
	var infos []models.ShippingInfo
	if err := r.db.SelectContext(ctx, &infos, r.db.Rebind(query), args...); err != nil {
		log.Printf("Error loading shipping info: %v", err)
		return err
	}
	for k := range infos {
		info := infos[k]
		if info.OrderID != nil {
			orders[index[*info.OrderID]].ShippingInfo = &info
		}
	}
	return nil
}

// CreateOrder inserts an order with exactly the requested price, quantity and time.
func (r *OrderRepo) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	query := `
		INSERT INTO orders (price, quantity, time_ordered)
		VALUES ($1, $2, $3)
		RETURNING ` + orderColumns

	var order models.Order
	err := r.db.GetContext(ctx, &order, query, req.Price, req.Quantity, req.TimeOrdered)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return nil, err
	}
	order.OrderItems = []models.OrderItem{}
	return &order, nil
}

// UpdateOrder overwrites price, quantity and time ordered. It returns the
// updated rows, which is empty when no order has the id.
func (r *OrderRepo) UpdateOrder(ctx context.Context, id int, req models.OrderRequest) ([]models.Order, error) {
	query := `
		UPDATE orders
		SET price = $2, quantity = $3, time_ordered = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns

	orders := []models.Order{}
	err := r.db.SelectContext(ctx, &orders, query, id, req.Price, req.Quantity, req.TimeOrdered)
	if err != nil {
		log.Printf("Error updating order %d: %v", id, err)
		return nil, err
	}
	for i := range orders {
		orders[i].OrderItems = []models.OrderItem{}
	}
	return orders, nil
}

// UpdateStatus sets only the status. There is no transition guard and no
// version check; concurrent writers race and the last one wins.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updated int
	if err := r.db.GetContext(ctx, &updated, query, id, status); err != nil {
		err = notFound(err)
		if !errors.Is(err, ErrNotFound) {
			log.Printf("Error updating status of order %d: %v", id, err)
		}
		return nil, err
	}
	return r.OrderByID(ctx, updated)
}

func (r *OrderRepo) DeleteOrder(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting order %d: %v", id, err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddItem attaches a product line to an existing order.
func (r *OrderRepo) AddItem(ctx context.Context, orderID int, req models.OrderItemRequest) (*models.OrderItem, error) {
	var item models.OrderItem
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := requireRow(ctx, tx, `SELECT id FROM orders WHERE id = $1`, orderID); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, `SELECT id FROM products WHERE id = $1`, req.ProductID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrUnknownProduct
			}
			return err
		}
		return insertItem(ctx, tx, orderID, req, &item)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Checkout creates the order, its items and its shipping info in one
// transaction. Price is computed from the products' current prices.
func (r *OrderRepo) Checkout(ctx context.Context, userID *int, req models.CheckoutRequest) (*models.Order, error) {
	var orderID int
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		productIDs := make([]int, 0, len(req.Items))
		for _, item := range req.Items {
			productIDs = append(productIDs, item.ProductID)
		}

		query, args, err := sqlx.In(`SELECT id, price FROM products WHERE id IN (?)`, productIDs)
		if err != nil {
			return err
		}
		var rows []struct {
			ID    int             `db:"id"`
			Price decimal.Decimal `db:"price"`
		}
		if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
			return err
		}
		prices := make(map[int]decimal.Decimal, len(rows))
		for _, row := range rows {
			prices[row.ID] = row.Price
		}

		total := decimal.Zero
		quantity := 0
		for _, item := range req.Items {
			price, ok := prices[item.ProductID]
			if !ok {
				return ErrUnknownProduct
			}
			total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			quantity += item.Quantity
		}

		err = tx.GetContext(ctx, &orderID, `
			INSERT INTO orders (price, quantity, time_ordered, user_id)
			VALUES ($1, $2, NOW(), $3)
			RETURNING id`, total, quantity, userID)
		if err != nil {
			return err
		}

		for _, item := range req.Items {
			if err := insertItem(ctx, tx, orderID, item, &models.OrderItem{}); err != nil {
				return err
			}
		}

		shipping := req.ShippingInfo
		shipping.OrderID = &orderID
		return insertShipping(ctx, tx, &shipping)
	})
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return nil, err
	}
	return r.OrderByID(ctx, orderID)
}

func insertItem(ctx context.Context, tx *sqlx.Tx, orderID int, req models.OrderItemRequest, item *models.OrderItem) error {
	return tx.GetContext(ctx, item, `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, order_id, product_id, quantity, created_at`,
		orderID, req.ProductID, req.Quantity)
}

func requireRow(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) error {
	var id int
	return notFound(sqlx.GetContext(ctx, q, &id, query, args...))
}
