package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-backend/internal/models"
)

// Store dependencies required by the services (interfaces to allow mocking).

// TxRunner scopes a function to one all-or-nothing transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type CartRepo interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	GetByID(ctx context.Context, cartID int64) (*models.Cart, error)
	LockByID(ctx context.Context, tx *sql.Tx, cartID int64) (*models.Cart, error)
	LockByUserID(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error)
	Create(ctx context.Context, tx *sql.Tx, cart *models.Cart) error
	UpdateTotal(ctx context.Context, tx *sql.Tx, cartID int64, total decimal.Decimal) error
	Delete(ctx context.Context, tx *sql.Tx, cartID int64) error
	GetItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) (*models.LineItem, error)
	InsertItem(ctx context.Context, tx *sql.Tx, item *models.LineItem) error
	UpdateItemQuantity(ctx context.Context, tx *sql.Tx, cartID, productID int64, quantity int) error
	DeleteItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) error
	CountItems(ctx context.Context, tx *sql.Tx, cartID int64) (int, error)
	ListItems(ctx context.Context, cartID int64) ([]models.CartLine, error)
}

// ProductGetter is the read-only slice of the catalog the cart needs.
type ProductGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// CartService owns cart lifecycle and keeps carts.total_price equal to
// the sum of quantity * product.price over the cart's line items.
//
// Every mutation locks the cart row (FOR UPDATE) before reading line
// items, so concurrent read-compute-write sequences on the same cart
// serialize at the store instead of losing updates.
type CartService struct {
	tx       TxRunner
	carts    CartRepo
	products ProductGetter
}

func NewCartService(tx TxRunner, carts CartRepo, products ProductGetter) *CartService {
	return &CartService{tx: tx, carts: carts, products: products}
}

// GetCart returns the user's open cart. ErrCartNotFound means "no
// active cart", which callers treat as an answer rather than a fault.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	return s.carts.GetByUserID(ctx, userID)
}

func (s *CartService) GetCartByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	return s.carts.GetByID(ctx, cartID)
}

// CreateCart opens a cart for the user with one initial line item. The
// cart row and the line item are written in the same transaction; the
// caller never observes a half-created cart.
func (s *CartService) CreateCart(ctx context.Context, userID, productID int64, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, models.ValidationError("quantity must be a positive integer")
	}

	var cart *models.Cart
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		c := &models.Cart{
			UserID:     userID,
			TotalPrice: lineTotal(product.Price, quantity),
		}
		if err := s.carts.Create(ctx, tx, c); err != nil {
			return err
		}

		item := &models.LineItem{CartID: c.ID, ProductID: productID, Quantity: quantity}
		if err := s.carts.InsertItem(ctx, tx, item); err != nil {
			return fmt.Errorf("insert initial line item: %w", err)
		}

		cart = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddOrUpdateItem sets the quantity of (cartID, productID) and adjusts
// the cart total by the signed delta against the previous quantity. A
// product not yet in the cart is inserted; an unchanged quantity still
// persists (the price adjustment is simply zero).
func (s *CartService) AddOrUpdateItem(ctx context.Context, cartID, productID int64, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, models.ValidationError("quantity must be a positive integer")
	}

	var cart *models.Cart
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		c, err := s.carts.LockByID(ctx, tx, cartID)
		if err != nil {
			return err
		}

		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		existing, err := s.carts.GetItem(ctx, tx, cartID, productID)
		switch {
		case err == nil:
			delta := quantity - existing.Quantity
			if err := s.carts.UpdateItemQuantity(ctx, tx, cartID, productID, quantity); err != nil {
				return err
			}
			c.TotalPrice = c.TotalPrice.Add(lineTotal(product.Price, delta))
		case err == models.ErrLineItemNotFound:
			item := &models.LineItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			if err := s.carts.InsertItem(ctx, tx, item); err != nil {
				return err
			}
			c.TotalPrice = c.TotalPrice.Add(lineTotal(product.Price, quantity))
		default:
			return err
		}

		c.TotalPrice = c.TotalPrice.Round(2)
		if err := s.carts.UpdateTotal(ctx, tx, cartID, c.TotalPrice); err != nil {
			return err
		}

		cart = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes one line item. Removing the last item deletes the
// cart as well and returns (nil, nil); an empty zero-total cart is
// never left behind.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID int64) (*models.Cart, error) {
	var cart *models.Cart
	err := s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		c, err := s.carts.LockByID(ctx, tx, cartID)
		if err != nil {
			return err
		}

		existing, err := s.carts.GetItem(ctx, tx, cartID, productID)
		if err != nil {
			return err
		}

		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := s.carts.DeleteItem(ctx, tx, cartID, productID); err != nil {
			return err
		}

		remaining, err := s.carts.CountItems(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			cart = nil
			return s.carts.Delete(ctx, tx, cartID)
		}

		c.TotalPrice = c.TotalPrice.Sub(lineTotal(product.Price, existing.Quantity)).Round(2)
		if err := s.carts.UpdateTotal(ctx, tx, cartID, c.TotalPrice); err != nil {
			return err
		}

		cart = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ListItems returns the (product name, quantity) projection of a cart.
func (s *CartService) ListItems(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	if _, err := s.carts.GetByID(ctx, cartID); err != nil {
		return nil, err
	}
	return s.carts.ListItems(ctx, cartID)
}

// lineTotal multiplies a 2-dp price by an integer quantity. The result
// is exact, so repeated add/remove cycles cannot drift.
func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
