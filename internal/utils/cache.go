package utils

import (
	"context" // Context for Redis operations
	"strconv" // Key formatting
	"time"    // Time durations

	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Cached balances
)

// BalanceCache keeps wallet balances in Redis. A nil cache or client disables caching.
type BalanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBalanceCache wraps rdb with the given TTL
func NewBalanceCache(rdb *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{rdb: rdb, ttl: ttl}
}

// BalanceKey is the Redis key of a user's cached balance
func BalanceKey(userID uint) string {
	return "wallet:user:" + strconv.FormatUint(uint64(userID), 10)
}

func (c *BalanceCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get returns the cached balance and whether it was present
func (c *BalanceCache) Get(ctx context.Context, userID uint) (decimal.Decimal, bool, error) {
	if !c.enabled() {
		return decimal.Zero, false, nil
	}
	val, err := c.rdb.Get(ctx, BalanceKey(userID)).Result() // Get value from Redis
	if err == redis.Nil {
		return decimal.Zero, false, nil // Key does not exist
	} else if err != nil {
		return decimal.Zero, false, err // Other Redis error
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return d, true, nil
}

// Set stores balance for the cache TTL
func (c *BalanceCache) Set(ctx context.Context, userID uint, balance decimal.Decimal) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Set(ctx, BalanceKey(userID), balance.String(), c.ttl).Err() // Set value in Redis with TTL
}

// Invalidate drops the cached balance after a wallet change
func (c *BalanceCache) Invalidate(ctx context.Context, userID uint) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Del(ctx, BalanceKey(userID)).Err() // Delete key from Redis
}
