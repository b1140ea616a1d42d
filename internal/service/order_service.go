package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/shop-backend/internal/models"
)

type OrderRepo interface {
	Create(ctx context.Context, tx *sql.Tx, order *models.Order) error
	SnapshotCartItems(ctx context.Context, tx *sql.Tx, orderID, cartID int64) (int, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	GetByID(ctx context.Context, orderID int64) (*models.Order, error)
}

// OrderService turns carts into orders. Payment is settled upstream;
// orders are written directly in status "created".
type OrderService struct {
	tx     TxRunner
	carts  CartRepo
	orders OrderRepo
}

func NewOrderService(tx TxRunner, carts CartRepo, orders OrderRepo) *OrderService {
	return &OrderService{tx: tx, carts: carts, orders: orders}
}

// Checkout snapshots the user's cart into a new order and deletes the
// cart, all in one transaction. The cart row is locked first so a
// concurrent item mutation cannot slip between snapshot and delete.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		cart, err := s.carts.LockByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}

		itemCount, err := s.carts.CountItems(ctx, tx, cart.ID)
		if err != nil {
			return err
		}

		o := &models.Order{
			OrderNumber: uuid.New(),
			UserID:      userID,
			Status:      models.OrderStatusCreated,
			TotalPrice:  cart.TotalPrice,
		}
		if err := s.orders.Create(ctx, tx, o); err != nil {
			return err
		}

		copied, err := s.orders.SnapshotCartItems(ctx, tx, o.ID, cart.ID)
		if err != nil {
			return err
		}
		if copied != itemCount {
			// A line item no longer resolves to a product. Fail the
			// whole checkout rather than silently shrinking the order.
			return fmt.Errorf("checkout cart %d: %d of %d items resolved: %w",
				cart.ID, copied, itemCount, models.ErrProductNotFound)
		}

		if err := s.carts.Delete(ctx, tx, cart.ID); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetOrder hides other users' orders behind ErrOrderNotFound instead
// of admitting they exist.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, models.ErrOrderNotFound
	}
	return o, nil
}
