package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product managed by the form.
// It includes a unique id, a name, a price and a free text description.
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Description string
}

// FormattedPrice returns the price with two decimal places.
func (p Product) FormattedPrice() string {
	return p.Price.StringFixed(2)
}
