package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-backend/internal/models"
)

type countingProductRepo struct {
	products map[int64]models.Product
	gets     int
}

func (r *countingProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.gets++
	p, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &p, nil
}

func (r *countingProductRepo) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func TestCatalogCache(t *testing.T) {
	ctx := context.Background()
	repo := &countingProductRepo{products: map[int64]models.Product{
		1: {ID: 1, Name: "Espresso Beans", Price: decimal.RequireFromString("10.00")},
	}}
	svc := NewCatalogService(repo)

	for i := 0; i < 3; i++ {
		p, err := svc.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if p.Name != "Espresso Beans" {
			t.Errorf("name = %q", p.Name)
		}
	}
	if repo.gets != 1 {
		t.Errorf("repo hit %d times, want 1 (cache miss only)", repo.gets)
	}

	// misses are not cached
	for i := 0; i < 2; i++ {
		if _, err := svc.GetByID(ctx, 99); !errors.Is(err, models.ErrProductNotFound) {
			t.Fatalf("err = %v, want ErrProductNotFound", err)
		}
	}
	if repo.gets != 3 {
		t.Errorf("repo hit %d times, want 3", repo.gets)
	}
}
