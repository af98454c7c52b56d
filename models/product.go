package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices and totals go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxPrice is the largest price the catalog stores (two decimal places).
var MaxPrice = decimal.RequireFromString("9999999999.99")

type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Quantity     int             `json:"quantity"`
	Availability bool            `json:"availability"`
	UserID       int64           `json:"user_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SetQuantity updates the stock level; availability always follows it.
func (p *Product) SetQuantity(q int) {
	p.Quantity = q
	p.Availability = Available(q)
}

// Available is the single rule deciding product availability.
func Available(quantity int) bool {
	return quantity > 0
}
