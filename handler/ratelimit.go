package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitMsg = "Too many requests from this IP, please try again later."

// NewRateLimiter builds a fixed-window limiter keyed by client address. With a nil
// redis client the counters live in process memory.
func NewRateLimiter(limit int64, window time.Duration, rdb *redis.Client) (func(http.Handler) http.Handler, error) {
	rate := limiter.Rate{Period: window, Limit: limit}

	var st limiter.Store
	if rdb != nil {
		var err error
		st, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "storefront:ratelimit"})
		if err != nil {
			return nil, fmt.Errorf("create rate limit store: %w", err)
		}
	} else {
		st = memory.NewStore()
	}

	mw := stdlib.NewMiddleware(limiter.New(st, rate),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusTooManyRequests, rateLimitMsg)
		}))
	return mw.Handler, nil
}
