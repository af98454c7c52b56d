package service

import (
	"context"

	"storefront-api/auth"
	"storefront-api/models"
)

type ServiceInterface interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)

	CreateProduct(ctx context.Context, id auth.Identity, p models.Product) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, productID int64) (*models.Product, error)

	AddToCart(ctx context.Context, id auth.Identity, productID int64, qty int) (*models.Cart, error)
	ViewCart(ctx context.Context, id auth.Identity) (*CartView, error)
	DecrementCartItem(ctx context.Context, id auth.Identity, productID int64) (*models.Cart, error)
	RemoveCartItem(ctx context.Context, id auth.Identity, productID int64) (*models.Cart, error)

	PlaceOrder(ctx context.Context, id auth.Identity) (*models.Order, error)
	OrderHistory(ctx context.Context, id auth.Identity) ([]models.Order, error)
	OrderDetail(ctx context.Context, id auth.Identity, orderID int64) (*models.Order, error)

	Healthy(ctx context.Context) error
}
