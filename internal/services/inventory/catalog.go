package inventory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Catalog is the in-memory owner of products and their stock counters.
type Catalog struct {
	mu       sync.RWMutex
	products []*Product
	byID     map[string]*Product
	bySKU    map[string]*Product
	now      func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID:  make(map[string]*Product),
		bySKU: make(map[string]*Product),
		now:   time.Now,
	}
}

func skuKey(sku string) string {
	return strings.ToLower(sku)
}

// Add inserts a product. Missing ids and timestamps are filled in and the
// status is derived from stock unless the product is discontinued.
func (c *Catalog) Add(p Product) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := c.byID[p.ID]; exists {
		return Product{}, fmt.Errorf("product %s: %w", p.ID, ErrDuplicateProduct)
	}
	if _, exists := c.bySKU[skuKey(p.SKU)]; exists {
		return Product{}, fmt.Errorf("sku %s: %w", p.SKU, ErrDuplicateProduct)
	}

	now := c.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Status != StatusDiscontinued {
		p.Status = DeriveStatus(p.CurrentStock, p.MinStock)
	}

	stored := p
	c.products = append(c.products, &stored)
	c.byID[stored.ID] = &stored
	c.bySKU[skuKey(stored.SKU)] = &stored

	return stored, nil
}

func (c *Catalog) FindByID(id string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return *p, nil
}

// FindBySKU matches the whole SKU, ignoring case.
func (c *Catalog) FindBySKU(sku string) (Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.bySKU[skuKey(sku)]
	if !ok {
		return Product{}, fmt.Errorf("product with SKU %s: %w", sku, ErrNotFound)
	}
	return *p, nil
}

// Search returns matching products in insertion order.
func (c *Catalog) Search(filter SearchFilter) []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	text := strings.ToLower(filter.Text)
	results := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if text != "" &&
			!strings.Contains(strings.ToLower(p.Name), text) &&
			!strings.Contains(strings.ToLower(p.SKU), text) &&
			!strings.Contains(strings.ToLower(p.Description), text) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.MinStock != nil && p.CurrentStock < *filter.MinStock {
			continue
		}
		if filter.MaxStock != nil && p.CurrentStock > *filter.MaxStock {
			continue
		}
		results = append(results, *p)
	}
	return results
}

// ApplyStockChange is the only way stock is mutated. Stock, status and
// UpdatedAt change together under the write lock; UpdatedAt is set to at.
func (c *Catalog) ApplyStockChange(id string, newStock int, at time.Time) (Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}

	p.CurrentStock = newStock
	if p.Status != StatusDiscontinued {
		p.Status = DeriveStatus(p.CurrentStock, p.MinStock)
	}
	p.UpdatedAt = at

	return *p, nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
