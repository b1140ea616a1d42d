package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourusername/shop-backend/internal/models"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, tx *sql.Tx, order *models.Order) error {
	query := `
		INSERT INTO orders (order_number, user_id, status, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := tx.QueryRowContext(ctx, query,
		order.OrderNumber, order.UserID, order.Status, order.TotalPrice,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrOrderWriteFailed
		}
		return err
	}
	return nil
}

// SnapshotCartItems copies a cart's line items into order_items
// server-side, freezing product name and unit price. Returns the
// number of rows copied so the caller can detect items that failed to
// resolve to a product.
func (r *OrderRepo) SnapshotCartItems(ctx context.Context, tx *sql.Tx, orderID, cartID int64) (int, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity)
		SELECT $1, cp.product_id, p.name, p.price, cp.quantity
		FROM carts_products cp
		JOIN products p ON p.id = cp.product_id
		WHERE cp.cart_id = $2
	`

	res, err := tx.ExecContext(ctx, query, orderID, cartID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `
		SELECT id, order_number, user_id, status, total_price, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepo) GetByID(ctx context.Context, orderID int64) (*models.Order, error) {
	var o models.Order

	query := `
		SELECT id, order_number, user_id, status, total_price, created_at
		FROM orders
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, orderID).
		Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) listItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT product_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
