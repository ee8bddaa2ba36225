package cart

import "kam-store/internal/domain"

// Intent is a user action dispatched to the cart store. The variants below
// are the only way cart state changes.
type Intent interface {
	intent()
}

// AddItem adds one unit of the product, merging into an existing line for
// the same product id
type AddItem struct {
	Product domain.Product
}

// RemoveItem deletes the line for the product id; unknown ids are a no-op
type RemoveItem struct {
	ProductID string
}

// SetQuantity sets the quantity on an existing line. Quantity <= 0 removes
// the line; unknown ids are a no-op.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

// Clear empties the cart lines, leaving the open flag alone
type Clear struct{}

// Toggle sets the open flag when Open is non-nil, otherwise flips it
type Toggle struct {
	Open *bool
}

func (AddItem) intent()     {}
func (RemoveItem) intent()  {}
func (SetQuantity) intent() {}
func (Clear) intent()       {}
func (Toggle) intent()      {}
