// Package memory provides an in-process product store. It backs the catalog
// API when no database is configured and doubles as a fake in tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository keeps products in a map keyed by ID.
type ProductRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]product.Product
}

// NewProductRepository returns a store preloaded with seed. Seed products
// keep their IDs when set; the rest are numbered after the highest ID.
func NewProductRepository(seed ...product.Product) *ProductRepository {
	r := &ProductRepository{byID: make(map[int64]product.Product, len(seed))}
	for _, p := range seed {
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	for _, p := range seed {
		if p.ID == 0 {
			r.nextID++
			p.ID = r.nextID
		}
		r.byID[p.ID] = p
	}
	return r
}

// List returns all products ordered by ID.
func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]product.Product, 0, len(r.byID))
	for _, p := range r.byID {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b product.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return products, nil
}

// GetByID returns a single product.
func (r *ProductRepository) GetByID(_ context.Context, id int64) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// Create assigns the next ID to p and stores it.
func (r *ProductRepository) Create(_ context.Context, p product.Product) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.byID[p.ID] = p
	return &p, nil
}

// Update replaces every field of the product with p.ID.
func (r *ProductRepository) Update(_ context.Context, p product.Product) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; !ok {
		return nil, product.ErrNotFound
	}
	r.byID[p.ID] = p
	return &p, nil
}

// Delete removes the product with the given ID.
func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return product.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
