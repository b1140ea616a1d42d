package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-backend/internal/models"
)

// fakeStore is an in-memory stand-in for the cart tables plus the
// transaction runner. WithinTx serializes transactions and restores a
// snapshot when the body fails, so rollback behaviour is observable in
// tests without a live database.
type fakeStore struct {
	txMu sync.Mutex // serializes transactions
	mu   sync.Mutex // guards the maps

	nextCartID int64
	carts      map[int64]models.Cart     // by cart ID
	items      map[int64]map[int64]int   // cart ID -> product ID -> quantity
	names      map[int64]string          // product names for ListItems
	prices     map[int64]decimal.Decimal // product prices, shared with fakeCatalog

	failUpdateTotal bool
	failInsertItem  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:  make(map[int64]models.Cart),
		items:  make(map[int64]map[int64]int),
		names:  make(map[int64]string),
		prices: make(map[int64]decimal.Decimal),
	}
}

func (s *fakeStore) addProduct(id int64, name, price string) {
	s.names[id] = name
	s.prices[id] = decimal.RequireFromString(price)
}

// --- TxRunner ---

func (s *fakeStore) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snapCarts, snapItems := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snapCarts, snapItems)
		return err
	}
	return nil
}

func (s *fakeStore) snapshot() (map[int64]models.Cart, map[int64]map[int64]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := make(map[int64]models.Cart, len(s.carts))
	for id, c := range s.carts {
		carts[id] = c
	}
	items := make(map[int64]map[int64]int, len(s.items))
	for cartID, m := range s.items {
		cp := make(map[int64]int, len(m))
		for productID, qty := range m {
			cp[productID] = qty
		}
		items[cartID] = cp
	}
	return carts, items
}

func (s *fakeStore) restore(carts map[int64]models.Cart, items map[int64]map[int64]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = carts
	s.items = items
}

// --- CartRepo ---

func (s *fakeStore) GetByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		if c.UserID == userID {
			out := c
			return &out, nil
		}
	}
	return nil, models.ErrCartNotFound
}

func (s *fakeStore) GetByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return nil, models.ErrCartNotFound
	}
	out := c
	return &out, nil
}

func (s *fakeStore) LockByID(ctx context.Context, tx *sql.Tx, cartID int64) (*models.Cart, error) {
	return s.GetByID(ctx, cartID)
}

func (s *fakeStore) LockByUserID(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	return s.GetByUserID(ctx, userID)
}

func (s *fakeStore) Create(ctx context.Context, tx *sql.Tx, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.carts {
		if c.UserID == cart.UserID {
			return models.ErrCartExists
		}
	}
	s.nextCartID++
	cart.ID = s.nextCartID
	s.carts[cart.ID] = *cart
	s.items[cart.ID] = make(map[int64]int)
	return nil
}

func (s *fakeStore) UpdateTotal(ctx context.Context, tx *sql.Tx, cartID int64, total decimal.Decimal) error {
	if s.failUpdateTotal {
		return models.ErrCartWriteFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return models.ErrCartWriteFailed
	}
	c.TotalPrice = total
	s.carts[cartID] = c
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, tx *sql.Tx, cartID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[cartID]; !ok {
		return models.ErrCartWriteFailed
	}
	delete(s.carts, cartID)
	delete(s.items, cartID)
	return nil
}

func (s *fakeStore) GetItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) (*models.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	qty, ok := s.items[cartID][productID]
	if !ok {
		return nil, models.ErrLineItemNotFound
	}
	return &models.LineItem{CartID: cartID, ProductID: productID, Quantity: qty}, nil
}

func (s *fakeStore) InsertItem(ctx context.Context, tx *sql.Tx, item *models.LineItem) error {
	if s.failInsertItem {
		return models.ErrLineItemWriteFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[item.CartID]
	if !ok {
		return models.ErrLineItemWriteFailed
	}
	m[item.ProductID] = item.Quantity
	return nil
}

func (s *fakeStore) UpdateItemQuantity(ctx context.Context, tx *sql.Tx, cartID, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[cartID][productID]; !ok {
		return models.ErrLineItemWriteFailed
	}
	s.items[cartID][productID] = quantity
	return nil
}

func (s *fakeStore) DeleteItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[cartID][productID]; !ok {
		return models.ErrLineItemWriteFailed
	}
	delete(s.items[cartID], productID)
	return nil
}

func (s *fakeStore) CountItems(ctx context.Context, tx *sql.Tx, cartID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items[cartID]), nil
}

func (s *fakeStore) ListItems(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lines []models.CartLine
	for productID, qty := range s.items[cartID] {
		lines = append(lines, models.CartLine{ProductName: s.names[productID], Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductName < lines[j].ProductName })
	return lines, nil
}

// sumOfLines recomputes the cart total from its line items, bypassing
// the cached value.
func (s *fakeStore) sumOfLines(cartID int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for productID, qty := range s.items[cartID] {
		sum = sum.Add(s.prices[productID].Mul(decimal.NewFromInt(int64(qty))))
	}
	return sum.Round(2)
}

// --- ProductGetter ---

type fakeCatalog struct {
	store *fakeStore
}

func (c fakeCatalog) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	price, ok := c.store.prices[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &models.Product{ID: id, Name: c.store.names[id], Price: price}, nil
}
