package store

import (
	"context"

	"storefront-api/models"
)

// POST /auth/register, /auth/login       - users
// POST /products, GET /products/...      - products
// /cart/add, /cart/view, /cart/decrement - carts, cart_items
// POST /order, GET /order/...            - orders, order_items

type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	ProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error)

	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	// UpdateCart applies fn to the locked cart and persists the result atomically.
	UpdateCart(ctx context.Context, userID int64, create bool, fn func(*models.Cart) error) (*models.Cart, error)

	PlaceOrder(ctx context.Context, o *models.Order, opts CheckoutOptions) error
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)

	Ping(ctx context.Context) error
	Close() error
}

// CheckoutOptions tunes what PlaceOrder does besides writing the order and clearing the cart.
type CheckoutOptions struct {
	DecrementStock bool
}
