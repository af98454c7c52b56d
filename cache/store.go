package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-api/models"
	"storefront-api/store"
)

const (
	keyAllProducts   = "products:all"
	keyCategories    = "products:categories"
	categoryKeyMatch = "products:category:*"
	notFoundMarker   = "notfound"
)

func productKey(id int64) string { return fmt.Sprintf("product:%d", id) }

func categoryKey(query string) string {
	return "products:category:" + strings.ToLower(query)
}

// CachedStore is a read-through cache over the catalog reads of a store.Store.
// Carts, users and orders pass straight through. Redis failures never fail a request.
type CachedStore struct {
	store.Store
	redis       *redis.Client
	logger      *zap.Logger
	ttl         time.Duration
	notFoundTTL time.Duration
}

func NewCachedStore(next store.Store, rdb *redis.Client, logger *zap.Logger) *CachedStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{
		Store:       next,
		redis:       rdb,
		logger:      logger,
		ttl:         5 * time.Minute,
		notFoundTTL: time.Minute,
	}
}

func (c *CachedStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, store.ErrNotFound
		}
		var p models.Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		c.logger.Warn("Failed to unmarshal cached product, continuing with DB", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Redis error, continuing with DB", zap.String("key", key), zap.Error(err))
	}

	p, err := c.Store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.set(ctx, key, notFoundMarker, c.notFoundTTL)
		}
		return nil, err
	}
	c.setJSON(ctx, key, p)
	return p, nil
}

func (c *CachedStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var ps []models.Product
	if c.getJSON(ctx, keyAllProducts, &ps) {
		return ps, nil
	}
	ps, err := c.Store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	c.setJSON(ctx, keyAllProducts, ps)
	return ps, nil
}

func (c *CachedStore) ListCategories(ctx context.Context) ([]string, error) {
	var cs []string
	if c.getJSON(ctx, keyCategories, &cs) {
		return cs, nil
	}
	cs, err := c.Store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	c.setJSON(ctx, keyCategories, cs)
	return cs, nil
}

func (c *CachedStore) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	key := categoryKey(category)
	var ps []models.Product
	if c.getJSON(ctx, key, &ps) {
		return ps, nil
	}
	ps, err := c.Store.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	c.setJSON(ctx, key, ps)
	return ps, nil
}

func (c *CachedStore) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := c.Store.CreateProduct(ctx, p); err != nil {
		return err
	}
	// drops a cached "notfound" for the new id as well
	c.invalidate(ctx, p.ID)
	return nil
}

// PlaceOrder evicts the ordered products when checkout changed their stock.
func (c *CachedStore) PlaceOrder(ctx context.Context, o *models.Order, opts store.CheckoutOptions) error {
	if err := c.Store.PlaceOrder(ctx, o, opts); err != nil {
		return err
	}
	if opts.DecrementStock {
		ids := make([]int64, 0, len(o.Items))
		for _, it := range o.Items {
			ids = append(ids, it.ProductID)
		}
		c.invalidate(ctx, ids...)
	}
	return nil
}

// invalidate removes the given product keys and every catalog listing.
func (c *CachedStore) invalidate(ctx context.Context, productIDs ...int64) {
	keys := []string{keyAllProducts, keyCategories}
	for _, id := range productIDs {
		keys = append(keys, productKey(id))
	}

	iter := c.redis.Scan(ctx, 0, categoryKeyMatch, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Failed to scan category cache keys", zap.Error(err))
	}

	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate catalog cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *CachedStore) getJSON(ctx context.Context, key string, dst any) bool {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis error, continuing with DB", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *CachedStore) setJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	c.set(ctx, key, data, c.ttl)
}

func (c *CachedStore) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if err := c.redis.Set(ctx, key, v, ttl).Err(); err != nil {
		c.logger.Warn("Failed to write cache", zap.String("key", key), zap.Error(err))
	}
}
