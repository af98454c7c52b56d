package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront-api/auth"
	"storefront-api/models"
	"storefront-api/store"
)

// CreateProduct stores a new product owned by the calling seller.
// Availability is derived from the quantity; any caller-supplied value is ignored.
func (s *Service) CreateProduct(ctx context.Context, id auth.Identity, p models.Product) (*models.Product, error) {
	if !id.HasRole(models.RoleSeller) {
		return nil, NewError(ErrUnauthorized, "Unauthorized - Only Sellers Can Add Products")
	}

	var fields []FieldError
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(p.Category) == "" {
		fields = append(fields, FieldError{Field: "category", Message: "category is required"})
	}
	switch {
	case p.Price.IsNegative():
		fields = append(fields, FieldError{Field: "price", Message: "price must be >= 0"})
	case p.Price.Round(2).GreaterThan(models.MaxPrice):
		fields = append(fields, FieldError{Field: "price", Message: "price must not exceed " + models.MaxPrice.String()})
	}
	switch {
	case p.Quantity < 0:
		fields = append(fields, FieldError{Field: "quantity", Message: "quantity must be >= 0"})
	case p.Quantity > models.MaxQuantity:
		fields = append(fields, FieldError{Field: "quantity", Message: fmt.Sprintf("quantity must not exceed %d", models.MaxQuantity)})
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p.ID = 0
	p.UserID = id.UserID
	p.SetQuantity(p.Quantity)
	if err := s.store.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", zap.Int64("product_id", p.ID), zap.Int64("user_id", id.UserID))
	return &p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	ps, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, NewError(ErrNotFound, "No Products Found")
	}
	return ps, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	cs, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(cs) == 0 {
		return nil, NewError(ErrNotFound, "No Categories Found")
	}
	return cs, nil
}

func (s *Service) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	ps, err := s.store.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, NewError(ErrNotFound, "No products found in category %s.", category)
	}
	return ps, nil
}

func (s *Service) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	p, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewError(ErrNotFound, "Product with ID %d not found.", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}
