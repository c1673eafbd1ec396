package middleware

import (
	"net/http"

	"github.com/dayboard/dayboard/internal/request"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const defaultRateLimit = "10-S"

// RateLimit returns middleware using ulule/limiter with a Redis-backed
// counter store, keyed by client IP. rate is in limiter's formatted form
// (e.g. "10-S" for ten requests per second).
func RateLimit(redisClient *redis.Client, rate string) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = defaultRateLimit
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	store, err := redisstore.NewStore(redisClient)
	if err != nil {
		return nil, err
	}

	return newRateLimitMiddleware(store, parsed), nil
}

// RateLimitInMemory is RateLimit with an in-process counter store, for tests
// and single-instance deployments without Redis.
func RateLimitInMemory(rate string) (func(http.Handler) http.Handler, error) {
	if rate == "" {
		rate = defaultRateLimit
	}

	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}

	return newRateLimitMiddleware(memorystore.NewStore(), parsed), nil
}

func newRateLimitMiddleware(store limiter.Store, rate limiter.Rate) func(http.Handler) http.Handler {
	instance := limiter.New(store, rate)
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(func(r *http.Request) string {
		return request.ClientIP(r)
	}))
	return mw.Handler
}
