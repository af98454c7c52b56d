package events

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-api/models"
)

const TypeOrderPlaced = "order.placed"

type OrderPlacedEvent struct {
	EventID     string            `json:"event_id"`
	Type        string            `json:"type"`
	OrderID     int64             `json:"order_id"`
	UserID      int64             `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	RequestID   string            `json:"request_id,omitempty"`
}
