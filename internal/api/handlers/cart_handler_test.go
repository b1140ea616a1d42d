package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-backend/internal/api/middleware"
	"github.com/yourusername/shop-backend/internal/models"
	"github.com/yourusername/shop-backend/internal/service"
)

// memStore is a single-user in-memory cart store, just enough to drive
// the handlers through a real CartService.
type memStore struct {
	cart   *models.Cart
	items  map[int64]int
	prices map[int64]decimal.Decimal
	names  map[int64]string
}

func newMemStore() *memStore {
	return &memStore{
		items:  make(map[int64]int),
		prices: map[int64]decimal.Decimal{1: decimal.RequireFromString("10.00")},
		names:  map[int64]string{1: "Espresso Beans"},
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (s *memStore) GetByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, models.ErrCartNotFound
	}
	out := *s.cart
	return &out, nil
}

func (s *memStore) GetByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	if s.cart == nil || s.cart.ID != cartID {
		return nil, models.ErrCartNotFound
	}
	out := *s.cart
	return &out, nil
}

func (s *memStore) LockByID(ctx context.Context, tx *sql.Tx, cartID int64) (*models.Cart, error) {
	return s.GetByID(ctx, cartID)
}

func (s *memStore) LockByUserID(ctx context.Context, tx *sql.Tx, userID int64) (*models.Cart, error) {
	return s.GetByUserID(ctx, userID)
}

func (s *memStore) Create(ctx context.Context, tx *sql.Tx, cart *models.Cart) error {
	if s.cart != nil && s.cart.UserID == cart.UserID {
		return models.ErrCartExists
	}
	cart.ID = 1
	c := *cart
	s.cart = &c
	return nil
}

func (s *memStore) UpdateTotal(ctx context.Context, tx *sql.Tx, cartID int64, total decimal.Decimal) error {
	s.cart.TotalPrice = total
	return nil
}

func (s *memStore) Delete(ctx context.Context, tx *sql.Tx, cartID int64) error {
	s.cart = nil
	s.items = make(map[int64]int)
	return nil
}

func (s *memStore) GetItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) (*models.LineItem, error) {
	qty, ok := s.items[productID]
	if !ok {
		return nil, models.ErrLineItemNotFound
	}
	return &models.LineItem{CartID: cartID, ProductID: productID, Quantity: qty}, nil
}

func (s *memStore) InsertItem(ctx context.Context, tx *sql.Tx, item *models.LineItem) error {
	s.items[item.ProductID] = item.Quantity
	return nil
}

func (s *memStore) UpdateItemQuantity(ctx context.Context, tx *sql.Tx, cartID, productID int64, quantity int) error {
	s.items[productID] = quantity
	return nil
}

func (s *memStore) DeleteItem(ctx context.Context, tx *sql.Tx, cartID, productID int64) error {
	delete(s.items, productID)
	return nil
}

func (s *memStore) CountItems(ctx context.Context, tx *sql.Tx, cartID int64) (int, error) {
	return len(s.items), nil
}

func (s *memStore) ListItems(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	var lines []models.CartLine
	for productID, qty := range s.items {
		lines = append(lines, models.CartLine{ProductName: s.names[productID], Quantity: qty})
	}
	return lines, nil
}

func (s *memStore) productByID(ctx context.Context, id int64) (*models.Product, error) {
	price, ok := s.prices[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &models.Product{ID: id, Name: s.names[id], Price: price}, nil
}

type productGetterFunc func(ctx context.Context, id int64) (*models.Product, error)

func (f productGetterFunc) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return f(ctx, id)
}

type stubVerifier struct{ id int64 }

func (v stubVerifier) VerifyToken(token string) (int64, error) {
	if token != "good" {
		return 0, models.ErrInvalidCredentials
	}
	return v.id, nil
}

func newTestRouter(store *memStore) http.Handler {
	svc := service.NewCartService(store, store, productGetterFunc(store.productByID))
	h := NewCartHandler(svc)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(stubVerifier{id: 1}))
		r.Get("/cart", h.GetCart)
		r.Post("/cart", h.CreateCart)
		r.Get("/cart/items", h.ListItems)
		r.Put("/cart/items/{productID}", h.SetItem)
		r.Delete("/cart/items/{productID}", h.RemoveItem)
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCartRoutes(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)

	t.Run("GET before any cart is 404", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/cart", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("create cart", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/cart", `{"product_id":1,"quantity":2}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
		}
		if !strings.Contains(rec.Body.String(), `"total_price":"20.00"`) {
			t.Errorf("body = %s", rec.Body)
		}
	})

	t.Run("duplicate cart is 409", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/cart", `{"product_id":1,"quantity":1}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("zero quantity is 400", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/cart/items/1", `{"quantity":0}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("non-integer quantity is 400", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/cart/items/1", `{"quantity":1.5}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("set quantity adjusts total", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/cart/items/1", `{"quantity":5}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
		}
		if !strings.Contains(rec.Body.String(), `"total_price":"50.00"`) {
			t.Errorf("body = %s", rec.Body)
		}
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/cart/items/99", `{"quantity":1}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("list items", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/cart/items", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"product_name":"Espresso Beans"`) {
			t.Errorf("body = %s", rec.Body)
		}
	})

	t.Run("removing a missing item is 404", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/cart/items/99", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("removing the last item is 204", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/cart/items/1", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		rec = doRequest(t, router, http.MethodGet, "/cart", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("GET after delete = %d, want 404", rec.Code)
		}
	})

	t.Run("missing bearer token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})
}
