package models

import (
	"errors"
	"sync"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrDuplicateID is returned when creating a product whose id is already taken.
var ErrDuplicateID = errors.New("product id already exists")

// ProductsRepository keeps products in memory, in insertion order.
type ProductsRepository struct {
	mu       sync.RWMutex
	products []Product
}

func NewProductsRepository() *ProductsRepository {
	return &ProductsRepository{}
}

// GetAllProducts returns a copy of every product in list order.
func (r *ProductsRepository) GetAllProducts() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out
}

// GetPage returns the products in [offset, offset+limit) and the total count.
func (r *ProductsRepository) GetPage(offset, limit int) ([]Product, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.products)
	start := min(max(offset, 0), total)
	end := start + min(max(limit, 0), total-start)

	out := make([]Product, end-start)
	copy(out, r.products[start:end])
	return out, total
}

func (r *ProductsRepository) GetByID(id int64) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}
	p := r.products[i]
	return &p, nil
}

// Create appends a product at the end of the list.
func (r *ProductsRepository) Create(p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(p.ID) >= 0 {
		return ErrDuplicateID
	}
	r.products = append(r.products, p)
	return nil
}

// Replace swaps the product with the same id, keeping its position.
func (r *ProductsRepository) Replace(p Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(p.ID)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products[i] = p
	return nil
}

func (r *ProductsRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *ProductsRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.products)
}

func (r *ProductsRepository) indexOf(id int64) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
