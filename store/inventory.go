package store

import (
	"context"
	"database/sql"
	"fmt"
)

// decrementStock takes qty units of a product and recomputes its availability.
// The update only applies when enough stock is left.
func decrementStock(ctx context.Context, tx *sql.Tx, productID int64, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET quantity = quantity - $1, availability = (quantity - $1) > 0
		WHERE id = $2 AND quantity >= $1`, qty, productID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock of product %d: %w", productID, err)
	}
	ra, _ := res.RowsAffected()
	if ra == 0 {
		return &StockError{ProductID: productID}
	}
	return nil
}
