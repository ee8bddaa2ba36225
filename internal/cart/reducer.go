package cart

import "kam-store/internal/domain"

// Apply is the pure cart transition function. It never mutates the input
// state; every branch returns a fresh state value so snapshots held by
// subscribers stay stable.
func Apply(state domain.CartState, intent Intent) domain.CartState {
	switch in := intent.(type) {
	case AddItem:
		return applyAdd(state, in.Product)
	case RemoveItem:
		return applyRemove(state, in.ProductID)
	case SetQuantity:
		if in.Quantity <= 0 {
			return applyRemove(state, in.ProductID)
		}
		return applySetQuantity(state, in.ProductID, in.Quantity)
	case Clear:
		next := state.Clone()
		next.Lines = []domain.CartLine{}
		return next
	case Toggle:
		next := state.Clone()
		if in.Open != nil {
			next.IsOpen = *in.Open
		} else {
			next.IsOpen = !state.IsOpen
		}
		return next
	default:
		return state
	}
}

func applyAdd(state domain.CartState, product domain.Product) domain.CartState {
	next := state.Clone()
	for i, line := range next.Lines {
		if line.Product.ID == product.ID {
			next.Lines[i].Quantity++
			return next
		}
	}
	next.Lines = append(next.Lines, domain.CartLine{Product: product, Quantity: 1})
	return next
}

func applyRemove(state domain.CartState, productID string) domain.CartState {
	next := state.Clone()
	lines := next.Lines[:0]
	for _, line := range next.Lines {
		if line.Product.ID != productID {
			lines = append(lines, line)
		}
	}
	next.Lines = lines
	return next
}

func applySetQuantity(state domain.CartState, productID string, quantity int) domain.CartState {
	next := state.Clone()
	for i, line := range next.Lines {
		if line.Product.ID == productID {
			next.Lines[i].Quantity = quantity
			break
		}
	}
	return next
}
