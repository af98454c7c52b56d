package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const OrderStatusPlaced OrderStatus = "placed"

// Order is an immutable snapshot of a cart taken at checkout.
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      OrderStatus     `json:"status"`
	OrderedAt   time.Time       `json:"orderedAt"`
}

// OrderItem freezes the quantity and the unit price charged when the order was placed.
type OrderItem struct {
	ProductID int64           `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

// LineTotal is UnitPrice * Quantity.
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// SetItems replaces the order lines and recomputes TotalAmount from them.
func (o *Order) SetItems(items []OrderItem) {
	o.Items = items
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	o.TotalAmount = total
}
