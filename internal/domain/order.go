package domain

import "time"

// ShippingAddress holds the delivery address captured during checkout.
// AddressLine2 is the only optional field.
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// OrderLine is a snapshot of a cart line at the moment of purchase
type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderRecord is the immutable record produced by a successful checkout.
// It exists only for the confirmation view; orders are not persisted and
// cannot be looked up later.
type OrderRecord struct {
	OrderNumber     string          `json:"order_number"`
	Date            time.Time       `json:"date"`
	LastFourDigits  string          `json:"last_four_digits"`
	TotalAmount     int64           `json:"total_amount"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []OrderLine     `json:"items"`
}
