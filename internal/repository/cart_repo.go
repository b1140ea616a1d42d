package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-backend/internal/models"
)

const uniqueViolation = "23505"

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) GetByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	query := `SELECT id, user_id, total_price FROM carts WHERE user_id = $1`
	return r.scanCart(r.db.QueryRowContext(ctx, query, userID))
}

func (r *CartRepo) GetByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	query := `SELECT id, user_id, total_price FROM carts WHERE id = $1`
	return r.scanCart(r.db.QueryRowContext(ctx, query, cartID))
}

// LockByID reads the cart row and locks it for the rest of the
// transaction. Concurrent mutations of the same cart serialize here,
// which keeps read-compute-write sequences on line items free of lost
// updates.
func (r *CartRepo) LockByID(ctx context.Context, tx *sql.Tx, cartID int64) (*models.Cart, error) {
	query := `SELECT id, user_id, total_price FROM carts WHERE id = $1 FOR UPDATE`
	return r.scanCart(tx.QueryRowContext(ctx, query, cartID))
}

func (r *CartRepo) LockByUserID(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	query := `SELECT id, user_id, total_price FROM carts WHERE user_id = $1 FOR UPDATE`
	return r.scanCart(tx.QueryRowContext(ctx, query, userID))
}

func (r *CartRepo) scanCart(row *sql.Row) (*models.Cart, error) {
	var c models.Cart
	if err := row.Scan(&c.ID, &c.UserID, &c.TotalPrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCartNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts the cart and fills in its generated ID. The UNIQUE
// constraint on user_id is the single-active-cart guard; tripping it
// surfaces as ErrCartExists.
func (r *CartRepo) Create(ctx context.Context, tx *sql.Tx, cart *models.Cart) error {
	query := `
		INSERT INTO carts (user_id, total_price)
		VALUES ($1, $2)
		RETURNING id
	`

	err := tx.QueryRowContext(ctx, query, cart.UserID, cart.TotalPrice).Scan(&cart.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.ErrCartExists
		}
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrCartWriteFailed
		}
		return err
	}
	return nil
}

func (r *CartRepo) UpdateTotal(ctx context.Context, tx *sql.Tx, cartID int64, total decimal.Decimal) error {
	query := `UPDATE carts SET total_price = $2 WHERE id = $1`

	res, err := tx.ExecContext(ctx, query, cartID, total)
	if err != nil {
		return err
	}
	return requireRows(res, models.ErrCartWriteFailed)
}

func (r *CartRepo) Delete(ctx context.Context, tx *sql.Tx, cartID int64) error {
	// carts_products rows go with it (ON DELETE CASCADE).
	query := `DELETE FROM carts WHERE id = $1`

	res, err := tx.ExecContext(ctx, query, cartID)
	if err != nil {
		return err
	}
	return requireRows(res, models.ErrCartWriteFailed)
}

func (r *CartRepo) GetItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) (*models.LineItem, error) {
	var item models.LineItem

	query := `
		SELECT cart_id, product_id, quantity
		FROM carts_products
		WHERE cart_id = $1 AND product_id = $2
	`

	err := tx.QueryRowContext(ctx, query, cartID, productID).Scan(
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrLineItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepo) InsertItem(ctx context.Context, tx *sql.Tx, item *models.LineItem) error {
	query := `
		INSERT INTO carts_products (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`

	res, err := tx.ExecContext(ctx, query, item.CartID, item.ProductID, item.Quantity)
	if err != nil {
		return err
	}
	return requireRows(res, models.ErrLineItemWriteFailed)
}

func (r *CartRepo) UpdateItemQuantity(ctx context.Context, tx *sql.Tx, cartID, productID int64, quantity int) error {
	query := `
		UPDATE carts_products
		SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2
	`

	res, err := tx.ExecContext(ctx, query, cartID, productID, quantity)
	if err != nil {
		return err
	}
	return requireRows(res, models.ErrLineItemWriteFailed)
}

func (r *CartRepo) DeleteItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) error {
	query := `DELETE FROM carts_products WHERE cart_id = $1 AND product_id = $2`

	res, err := tx.ExecContext(ctx, query, cartID, productID)
	if err != nil {
		return err
	}
	return requireRows(res, models.ErrLineItemWriteFailed)
}

func (r *CartRepo) CountItems(ctx context.Context, tx *sql.Tx, cartID int64) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM carts_products WHERE cart_id = $1`
	if err := tx.QueryRowContext(ctx, query, cartID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *CartRepo) ListItems(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	query := `
		SELECT p.name, cp.quantity
		FROM carts_products cp
		JOIN products p ON p.id = cp.product_id
		WHERE cp.cart_id = $1
		ORDER BY p.name
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ProductName, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func requireRows(res sql.Result, miss error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return miss
	}
	return nil
}
