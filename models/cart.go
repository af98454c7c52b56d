package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// MaxQuantity is the largest quantity a cart line or a product's stock may hold.
const MaxQuantity = math.MaxInt32

var (
	// ErrLineNotFound is returned when a product has no line in the cart.
	ErrLineNotFound = errors.New("product not found in the cart")
	// ErrQuantityLimit is returned when a line would exceed MaxQuantity.
	ErrQuantityLimit = fmt.Errorf("quantity must not exceed %d", MaxQuantity)
)

// Cart holds one user's lines in insertion order. A persisted line never has quantity 0.
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user"`
	Items     []CartLine `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartLine struct {
	ProductID int64 `json:"product"`
	Quantity  int   `json:"quantity"`
}

// NewCart returns an empty cart owned by userID.
func NewCart(userID int64) *Cart {
	return &Cart{UserID: userID, Items: []CartLine{}}
}

func (c *Cart) indexOf(productID int64) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Line returns the line for productID, if any.
func (c *Cart) Line(productID int64) (CartLine, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.Items[i], true
}

// Add merges qty into the existing line for productID or appends a new line.
// The cart is left unchanged when the line would exceed MaxQuantity.
func (c *Cart) Add(productID int64, qty int) error {
	if qty < 1 || qty > MaxQuantity {
		return ErrQuantityLimit
	}
	if i := c.indexOf(productID); i >= 0 {
		if qty > MaxQuantity-c.Items[i].Quantity {
			return ErrQuantityLimit
		}
		c.Items[i].Quantity += qty
		return nil
	}
	c.Items = append(c.Items, CartLine{ProductID: productID, Quantity: qty})
	return nil
}

// Decrement lowers the line's quantity by one and drops the line when it reaches zero.
func (c *Cart) Decrement(productID int64) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if c.Items[i].Quantity > 0 {
		c.Items[i].Quantity--
	}
	if c.Items[i].Quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	return nil
}

// Remove deletes the line for productID regardless of its quantity.
func (c *Cart) Remove(productID int64) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return c == nil || len(c.Items) == 0
}

// ProductIDs lists the products referenced by the cart, in line order.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}
