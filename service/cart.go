package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-api/auth"
	"storefront-api/models"
	"storefront-api/store"
)

// CartView is a cart whose lines carry the current product data.
type CartView struct {
	ID        int64          `json:"id"`
	UserID    int64          `json:"user"`
	Items     []CartViewLine `json:"items"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CartViewLine struct {
	ProductID int64 `json:"product_id"`
	// nil when the product no longer exists
	Product  *models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// AddToCart merges qty units of productID into the caller's cart, creating the cart on first use.
// The product is not looked up: carts may reference anything.
func (s *Service) AddToCart(ctx context.Context, id auth.Identity, productID int64, qty int) (*models.Cart, error) {
	if productID <= 0 {
		return nil, invalid("product", "Invalid product ID")
	}
	if qty < 1 || qty > models.MaxQuantity {
		return nil, invalid("quantity", fmt.Sprintf("quantity must be between 1 and %d", models.MaxQuantity))
	}

	cart, err := s.store.UpdateCart(ctx, id.UserID, true, func(c *models.Cart) error {
		return c.Add(productID, qty)
	})
	if err != nil {
		if errors.Is(err, models.ErrQuantityLimit) {
			return nil, invalid("quantity", fmt.Sprintf("cart quantity for product %d would exceed %d", productID, models.MaxQuantity))
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) ViewCart(ctx context.Context, id auth.Identity) (*CartView, error) {
	cart, err := s.loadCart(ctx, id, "Cart not found for this user")
	if err != nil {
		return nil, err
	}

	products, err := s.store.ProductsByIDs(ctx, cart.ProductIDs())
	if err != nil {
		return nil, err
	}

	view := &CartView{ID: cart.ID, UserID: cart.UserID, UpdatedAt: cart.UpdatedAt, Items: make([]CartViewLine, 0, len(cart.Items))}
	for _, it := range cart.Items {
		line := CartViewLine{ProductID: it.ProductID, Quantity: it.Quantity}
		if p, ok := products[it.ProductID]; ok {
			line.Product = &p
		}
		view.Items = append(view.Items, line)
	}
	return view, nil
}

// DecrementCartItem lowers a line by one; a line reaching zero is removed.
func (s *Service) DecrementCartItem(ctx context.Context, id auth.Identity, productID int64) (*models.Cart, error) {
	return s.mutateCart(ctx, id, productID, (*models.Cart).Decrement)
}

// RemoveCartItem drops a line whatever its quantity.
func (s *Service) RemoveCartItem(ctx context.Context, id auth.Identity, productID int64) (*models.Cart, error) {
	return s.mutateCart(ctx, id, productID, (*models.Cart).Remove)
}

func (s *Service) mutateCart(ctx context.Context, id auth.Identity, productID int64, op func(*models.Cart, int64) error) (*models.Cart, error) {
	cart, err := s.store.UpdateCart(ctx, id.UserID, false, func(c *models.Cart) error {
		return op(c, productID)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, NewError(ErrNotFound, "Cart not found")
		case errors.Is(err, models.ErrLineNotFound):
			return nil, NewError(ErrNotFound, "Product not found in the cart")
		}
		return nil, err
	}
	return cart, nil
}

func (s *Service) loadCart(ctx context.Context, id auth.Identity, notFoundMsg string) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewError(ErrNotFound, "%s", notFoundMsg)
		}
		return nil, err
	}
	return cart, nil
}
