package catalog

import (
	"sync"

	"github.com/shopverse/storefront/internal/domain"
)

// Catalog holds the product list for the lifetime of the process. It is
// populated once at startup and read-only afterwards; the mutex only guards
// against a load racing early requests.
type Catalog struct {
	mu       sync.RWMutex
	products []domain.Product
	index    map[int]domain.Product
	loaded   bool
}

// New creates an empty, unloaded catalog. Lookups against it behave like
// "product not found" until Replace is called.
func New() *Catalog {
	return &Catalog{
		index: make(map[int]domain.Product),
	}
}

// Replace installs the given products as the catalog content, preserving
// their order. Later entries win on duplicate ids.
func (c *Catalog) Replace(products []domain.Product) {
	index := make(map[int]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.index = index
	c.loaded = true
}

// Get returns the product with the given id, if present.
func (c *Catalog) Get(id int) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.index[id]
	return p, ok
}

// Products returns the full product list in catalog order. The returned
// slice is shared and must not be mutated.
func (c *Catalog) Products() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

// Featured returns the first n products in catalog order, for the home page
// grid. It returns fewer when the catalog is smaller than n.
func (c *Catalog) Featured(n int) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(c.products) {
		n = len(c.products)
	}
	return c.products[:n]
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// Loaded reports whether a load has completed. An unloaded or failed catalog
// stays empty, so product-dependent operations degrade to no-ops.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
