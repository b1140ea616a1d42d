package service

import (
	"context"

	"github.com/yourusername/shop-backend/internal/cache"
	"github.com/yourusername/shop-backend/internal/models"
)

type ProductRepo interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
}

// CatalogService is the read-only product surface. Lookups go through
// a read-through cache; misses (ErrProductNotFound) are not cached.
type CatalogService struct {
	products ProductRepo
	cache    *cache.ProductCache
}

func NewCatalogService(products ProductRepo) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    cache.NewProductCache(),
	}
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if p, ok := s.cache.Get(id); ok {
		return p, nil
	}

	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(p)
	return p, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}
