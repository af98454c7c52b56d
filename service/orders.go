package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-api/auth"
	"storefront-api/events"
	"storefront-api/models"
	"storefront-api/store"
)

const emptyCartMsg = "Cart not found. Please add items to your cart first."

type requestIDKey struct{}

// WithRequestID tags ctx so published events can be correlated with the HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// PlaceOrder turns the caller's cart into an order priced at current catalog prices
// and clears the cart, atomically.
func (s *Service) PlaceOrder(ctx context.Context, id auth.Identity) (*models.Order, error) {
	order := &models.Order{
		UserID:    id.UserID,
		Status:    models.OrderStatusPlaced,
		OrderedAt: s.now().UTC(),
	}

	err := s.store.PlaceOrder(ctx, order, store.CheckoutOptions{DecrementStock: s.opts.DecrementStock})
	if err != nil {
		var (
			stockErr   *store.StockError
			missingErr *store.MissingProductError
		)
		switch {
		case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrEmptyCart):
			return nil, NewError(ErrNotFound, emptyCartMsg)
		case errors.As(err, &missingErr):
			return nil, NewError(ErrNotFound, "Product with ID %d not found.", missingErr.ProductID)
		case errors.As(err, &stockErr):
			return nil, NewError(ErrInsufficientStock, "Not enough quantity available for product %d", stockErr.ProductID)
		}
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.String("total_amount", order.TotalAmount.String()))

	event := events.OrderPlacedEvent{
		EventID:     uuid.NewString(),
		Type:        events.TypeOrderPlaced,
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		Status:      string(order.Status),
		Timestamp:   s.now().UTC(),
		RequestID:   requestID(ctx),
	}
	// the order is committed; a client disconnect must not cancel the event
	if err := s.events.PublishOrderPlaced(context.WithoutCancel(ctx), event); err != nil {
		// the order stands even when the event is lost
		s.logger.Error("Failed to publish order event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}

	return order, nil
}

func (s *Service) OrderHistory(ctx context.Context, id auth.Identity) ([]models.Order, error) {
	return s.store.ListOrdersByUser(ctx, id.UserID)
}

// OrderDetail returns an order only to the user who placed it.
func (s *Service) OrderDetail(ctx context.Context, id auth.Identity, orderID int64) (*models.Order, error) {
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NewError(ErrNotFound, "Order not found")
		}
		return nil, err
	}
	if o.UserID != id.UserID {
		return nil, NewError(ErrForbidden, "Unauthorized access to order details")
	}
	return o, nil
}
