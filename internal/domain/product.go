package domain

// Category is a product category in the catalog
type Category string

const (
	CategoryRunning   Category = "running"
	CategoryLifestyle Category = "lifestyle"
	CategorySport     Category = "sport"
)

// Valid reports whether the category is one of the known catalog categories
func (c Category) Valid() bool {
	switch c {
	case CategoryRunning, CategoryLifestyle, CategorySport:
		return true
	}
	return false
}

// Product represents a product in the catalog.
// Products are loaded once at startup and never mutated. Price is a whole
// naira amount (no minor units).
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
}
