package handler

import (
	"context"

	"storefront-api/auth"
	"storefront-api/models"
	"storefront-api/service"
)

// fakeService implements service.ServiceInterface with overridable function fields.
type fakeService struct {
	RegisterFn           func(in service.RegisterInput) (*models.User, error)
	LoginFn              func(email, password string) (string, error)
	CreateProductFn      func(id auth.Identity, p models.Product) (*models.Product, error)
	ListProductsFn       func() ([]models.Product, error)
	ListCategoriesFn     func() ([]string, error)
	ProductsByCategoryFn func(category string) ([]models.Product, error)
	GetProductFn         func(productID int64) (*models.Product, error)
	AddToCartFn          func(id auth.Identity, productID int64, qty int) (*models.Cart, error)
	ViewCartFn           func(id auth.Identity) (*service.CartView, error)
	DecrementCartItemFn  func(id auth.Identity, productID int64) (*models.Cart, error)
	RemoveCartItemFn     func(id auth.Identity, productID int64) (*models.Cart, error)
	PlaceOrderFn         func(ctx context.Context, id auth.Identity) (*models.Order, error)
	OrderHistoryFn       func(id auth.Identity) ([]models.Order, error)
	OrderDetailFn        func(id auth.Identity, orderID int64) (*models.Order, error)
	HealthyFn            func() error
}

func (f *fakeService) Register(_ context.Context, in service.RegisterInput) (*models.User, error) {
	return f.RegisterFn(in)
}

func (f *fakeService) Login(_ context.Context, email, password string) (string, error) {
	return f.LoginFn(email, password)
}

func (f *fakeService) CreateProduct(_ context.Context, id auth.Identity, p models.Product) (*models.Product, error) {
	return f.CreateProductFn(id, p)
}

func (f *fakeService) ListProducts(context.Context) ([]models.Product, error) {
	return f.ListProductsFn()
}

func (f *fakeService) ListCategories(context.Context) ([]string, error) {
	return f.ListCategoriesFn()
}

func (f *fakeService) ProductsByCategory(_ context.Context, category string) ([]models.Product, error) {
	return f.ProductsByCategoryFn(category)
}

func (f *fakeService) GetProduct(_ context.Context, productID int64) (*models.Product, error) {
	return f.GetProductFn(productID)
}

func (f *fakeService) AddToCart(_ context.Context, id auth.Identity, productID int64, qty int) (*models.Cart, error) {
	return f.AddToCartFn(id, productID, qty)
}

func (f *fakeService) ViewCart(_ context.Context, id auth.Identity) (*service.CartView, error) {
	return f.ViewCartFn(id)
}

func (f *fakeService) DecrementCartItem(_ context.Context, id auth.Identity, productID int64) (*models.Cart, error) {
	return f.DecrementCartItemFn(id, productID)
}

func (f *fakeService) RemoveCartItem(_ context.Context, id auth.Identity, productID int64) (*models.Cart, error) {
	return f.RemoveCartItemFn(id, productID)
}

func (f *fakeService) PlaceOrder(ctx context.Context, id auth.Identity) (*models.Order, error) {
	return f.PlaceOrderFn(ctx, id)
}

func (f *fakeService) OrderHistory(_ context.Context, id auth.Identity) ([]models.Order, error) {
	return f.OrderHistoryFn(id)
}

func (f *fakeService) OrderDetail(_ context.Context, id auth.Identity, orderID int64) (*models.Order, error) {
	return f.OrderDetailFn(id, orderID)
}

func (f *fakeService) Healthy(context.Context) error {
	return f.HealthyFn()
}
