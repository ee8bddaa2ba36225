package domain

// CartLine is one product entry in the cart with its quantity.
// A cart holds at most one line per product id, and a stored line always has
// quantity >= 1.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns the line value (price * quantity)
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// CartState is the full state of one shopping cart: the ordered line items
// (insertion order) and the open/closed UI flag. The JSON shape is the
// persisted snapshot format for the cart slot.
type CartState struct {
	Lines  []CartLine `json:"items"`
	IsOpen bool       `json:"isOpen"`
}

// EmptyCart returns the default state used when no snapshot exists
func EmptyCart() CartState {
	return CartState{Lines: []CartLine{}, IsOpen: false}
}

// Total sums price * quantity over all lines
func (s CartState) Total() int64 {
	var total int64
	for _, line := range s.Lines {
		total += line.Subtotal()
	}
	return total
}

// Count sums the quantities over all lines
func (s CartState) Count() int {
	count := 0
	for _, line := range s.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (s CartState) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Clone returns a deep copy of the state so callers can hold snapshots
// without observing later transitions
func (s CartState) Clone() CartState {
	lines := make([]CartLine, len(s.Lines))
	copy(lines, s.Lines)
	return CartState{Lines: lines, IsOpen: s.IsOpen}
}
