package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"storefront-api/models"
)

const productColumns = `id, name, category, price, description, image, quantity, availability, user_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.Image,
		&p.Quantity, &p.Availability, &p.UserID, &p.CreatedAt)
	return p, err
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()
	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return out, nil
}

// CreateProduct inserts a product; availability is derived from the quantity.
func (s *PostgresStore) CreateProduct(ctx context.Context, p *models.Product) error {
	p.SetQuantity(p.Quantity)
	// the column keeps two decimal places; return what will be read back
	p.Price = p.Price.Round(2)
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO products (name, category, price, description, image, quantity, availability, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`,
		p.Name, p.Category, p.Price, p.Description, p.Image, p.Quantity, p.Availability, p.UserID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(s.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %d: %w", id, err)
	}
	return &p, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return scanProducts(rows)
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductsByCategory matches category case-insensitively as a substring.
func (s *PostgresStore) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(category) + "%"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE category ILIKE $1 ESCAPE '\' ORDER BY id`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to get products with category: %w", err)
	}
	return scanProducts(rows)
}

// ProductsByIDs returns the products that exist among ids, keyed by id.
func (s *PostgresStore) ProductsByIDs(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get products by ids: %w", err)
	}
	ps, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range ps {
		out[p.ID] = p
	}
	return out, nil
}
