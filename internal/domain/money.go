package domain

import "strconv"

// FormatPrice renders a whole naira amount in the en-NG display format used
// by the storefront, e.g. 15000 -> "₦15,000.00".
func FormatPrice(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Group thousands with commas
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	out := "₦" + string(grouped) + ".00"
	if negative {
		out = "-" + out
	}
	return out
}
