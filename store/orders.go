package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storefront-api/models"
)

// PlaceOrder turns the owner's cart into an order and deletes the cart in one transaction.
// The cart row is locked first and its lines are priced from the catalog under that lock,
// so a concurrent cart update lands either wholly in the order or after it. o supplies
// UserID, Status and OrderedAt; Items, TotalAmount and ID are filled in.
// A missing cart is ErrNotFound, an empty one ErrEmptyCart.
func (s *PostgresStore) PlaceOrder(ctx context.Context, o *models.Order, opts CheckoutOptions) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		cartID, err := lockCart(ctx, tx, o.UserID, false)
		if err != nil {
			return err
		}

		items, err := pricedCartLines(ctx, tx, cartID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}
		o.SetItems(items)

		if err := tx.QueryRowContext(ctx,
			`INSERT INTO orders (user_id, total_amount, status, ordered_at) VALUES ($1, $2, $3, $4) RETURNING id`,
			o.UserID, o.TotalAmount, string(o.Status), o.OrderedAt,
		).Scan(&o.ID); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, it := range o.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
				o.ID, it.ProductID, it.Quantity, it.UnitPrice); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		if opts.DecrementStock {
			for _, it := range o.Items {
				if err := decrementStock(ctx, tx, it.ProductID, it.Quantity); err != nil {
					return err
				}
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
}

// pricedCartLines reads the cart's lines joined with the current product prices.
func pricedCartLines(ctx context.Context, tx *sql.Tx, cartID int64) ([]models.OrderItem, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var (
			it    models.OrderItem
			price decimal.NullDecimal
		)
		if err := rows.Scan(&it.ProductID, &it.Quantity, &price); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if !price.Valid {
			return nil, &MissingProductError{ProductID: it.ProductID}
		}
		it.UnitPrice = price.Decimal
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return items, nil
}

const orderColumns = `id, user_id, total_amount, status, ordered_at`

func scanOrder(row rowScanner) (models.Order, error) {
	var (
		o      models.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &status, &o.OrderedAt); err != nil {
		return o, err
	}
	o.Status = models.OrderStatus(status)
	o.Items = []models.OrderItem{}
	return o, nil
}

// ListOrdersByUser returns the user's orders, newest first, with their items.
func (s *PostgresStore) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY ordered_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by user %d: %w", userID, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	orders := []models.Order{o}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *PostgresStore) attachItems(ctx context.Context, orders []models.Order) error {
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			it      models.OrderItem
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}
