package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-api/models"
)

// GetCart loads the user's cart with its lines in insertion order.
func (s *PostgresStore) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT c.id, c.updated_at, ci.product_id, ci.quantity
		FROM carts c
		LEFT JOIN cart_items ci ON ci.cart_id = c.id
		WHERE c.user_id = $1
		ORDER BY ci.position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	defer rows.Close()

	var cart *models.Cart
	for rows.Next() {
		var (
			id        int64
			updatedAt time.Time
			productID sql.NullInt64
			quantity  sql.NullInt64
		)
		if err := rows.Scan(&id, &updatedAt, &productID, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart: %w", err)
		}
		if cart == nil {
			cart = models.NewCart(userID)
			cart.ID = id
			cart.UpdatedAt = updatedAt
		}
		if productID.Valid {
			cart.Items = append(cart.Items, models.CartLine{ProductID: productID.Int64, Quantity: int(quantity.Int64)})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	if cart == nil {
		return nil, ErrNotFound
	}
	return cart, nil
}

// UpdateCart locks the user's cart row, applies fn to its lines and writes them back,
// all in one transaction. With create set a missing cart is created empty first;
// otherwise a missing cart is ErrNotFound. An error from fn aborts without writing.
func (s *PostgresStore) UpdateCart(ctx context.Context, userID int64, create bool, fn func(*models.Cart) error) (*models.Cart, error) {
	var cart *models.Cart
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		cartID, err := lockCart(ctx, tx, userID, create)
		if err != nil {
			return err
		}

		c := models.NewCart(userID)
		c.ID = cartID
		if c.Items, err = cartLines(ctx, tx, cartID); err != nil {
			return err
		}

		if err := fn(c); err != nil {
			return err
		}
		if err := writeCartLines(ctx, tx, c); err != nil {
			return err
		}
		cart = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// lockCart returns the id of the user's cart row, holding a row lock until the tx ends.
func lockCart(ctx context.Context, tx *sql.Tx, userID int64, create bool) (int64, error) {
	var cartID int64
	var err error
	if create {
		// the no-op update makes the upsert lock an existing row as well
		err = tx.QueryRowContext(ctx, `
			INSERT INTO carts (user_id) VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET updated_at = carts.updated_at
			RETURNING id`, userID).Scan(&cartID)
	} else {
		err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock cart: %w", err)
	}
	return cartID, nil
}

func cartLines(ctx context.Context, tx *sql.Tx, cartID int64) ([]models.CartLine, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return lines, nil
}

// writeCartLines replaces the persisted lines of c with c.Items.
func writeCartLines(ctx context.Context, tx *sql.Tx, c *models.Cart) error {
	for _, it := range c.Items {
		if it.Quantity < 1 || it.Quantity > models.MaxQuantity {
			return fmt.Errorf("cart line for product %d has quantity %d", it.ProductID, it.Quantity)
		}
	}

	if err := tx.QueryRowContext(ctx,
		`UPDATE carts SET updated_at = NOW() WHERE id = $1 RETURNING updated_at`, c.ID).Scan(&c.UpdatedAt); err != nil {
		return fmt.Errorf("failed to touch cart: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	for i, it := range c.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, position, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			c.ID, i, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}
	return nil
}
