package cache

import (
	"sync"

	"github.com/yourusername/shop-backend/internal/models"
)

// ProductCache memoizes catalog lookups. The catalog is read-mostly
// and prices are immutable as far as the cart core is concerned, so a
// plain map behind an RWMutex is enough.
type ProductCache struct {
	mu    sync.RWMutex
	store map[int64]*models.Product
}

func NewProductCache() *ProductCache {
	return &ProductCache{
		store: make(map[int64]*models.Product),
	}
}

func (c *ProductCache) Get(id int64) (*models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[id]
	return p, ok
}

func (c *ProductCache) Set(p *models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[p.ID] = p
}
