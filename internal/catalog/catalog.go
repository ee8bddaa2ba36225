package catalog

import (
	"errors"
	"strings"

	"kam-store/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Repository defines read access to the product catalog. The catalog is
// immutable: products are loaded at startup and never created or destroyed
// at runtime.
type Repository interface {
	All() []domain.Product
	FindByID(id string) (domain.Product, error)
	FilterByCategory(category domain.Category) []domain.Product
	Search(query string) []domain.Product
}

type staticRepository struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// NewStaticRepository creates a Repository backed by the built-in product
// data
func NewStaticRepository() Repository {
	return newStaticRepository(products)
}

// NewStaticRepositoryWith creates a Repository over the given products.
// Used by tests that need a controlled catalog.
func NewStaticRepositoryWith(items []domain.Product) Repository {
	return newStaticRepository(items)
}

func newStaticRepository(items []domain.Product) *staticRepository {
	byID := make(map[string]domain.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return &staticRepository{products: items, byID: byID}
}

// All returns every product in catalog order
func (r *staticRepository) All() []domain.Product {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out
}

// FindByID returns the product with the given id
func (r *staticRepository) FindByID(id string) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// FilterByCategory returns the products in the given category, preserving
// catalog order
func (r *staticRepository) FilterByCategory(category domain.Category) []domain.Product {
	var out []domain.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search returns products whose name or description contains the query,
// case-insensitive
func (r *staticRepository) Search(query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []domain.Product
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}
