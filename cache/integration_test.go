//go:build integration
// +build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"storefront-api/models"
	"storefront-api/store"
)

func setupRedis(t *testing.T) string {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("Failed to get endpoint: %v", err)
	}
	return endpoint
}

func TestCachedStoreAgainstRedis(t *testing.T) {
	ctx := context.Background()
	rdb, err := ConnectRedis(ctx, Options{Addr: setupRedis(t)})
	require.NoError(t, err)
	defer rdb.Close()

	next := &countingStore{products: map[int64]models.Product{1: {ID: 1, Name: "mug", Category: "kitchen"}}}
	c := NewCachedStore(next, rdb, nil)

	for i := 0; i < 3; i++ {
		p, err := c.GetProduct(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "mug", p.Name)
	}
	assert.Equal(t, 1, next.getProductCalls, "repeat reads should be served from redis")

	for i := 0; i < 2; i++ {
		_, err := c.GetProduct(ctx, 7)
		assert.ErrorIs(t, err, store.ErrNotFound)
	}
	assert.Equal(t, 2, next.getProductCalls, "misses should be cached too")

	_, err = c.ListCategories(ctx)
	require.NoError(t, err)
	_, err = c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next.listCalls)

	require.NoError(t, c.PlaceOrder(ctx, &models.Order{Items: []models.OrderItem{{ProductID: 1, Quantity: 1}}},
		store.CheckoutOptions{DecrementStock: true}))

	_, err = c.GetProduct(ctx, 1)
	require.NoError(t, err)
	_, err = c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, next.getProductCalls, "stock change should evict the product")
	assert.Equal(t, 2, next.listCalls, "stock change should evict listings")
}
