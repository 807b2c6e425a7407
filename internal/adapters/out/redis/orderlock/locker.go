// Package orderlock implements the per-order single writer lock on Redis.
//
// The lock is a key holding a random token, created with SET NX and a TTL. It is
// released by a script that deletes the key only while it still holds the token
// of the caller, so an expired lock taken over by another instance is never
// released by mistake. The database row lock taken by the process pass remains
// the source of truth; this lock makes concurrent callers fail fast instead of
// queueing on the row.
package orderlock

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a crashed holder keeps an order locked.
const DefaultTTL = 30 * time.Second

const keyPrefix = "fulfillment:order-lock:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOrderLocker implements ports.OrderLocker.
type RedisOrderLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisOrderLocker(client redis.UniversalClient, ttl time.Duration) *RedisOrderLocker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisOrderLocker{client: client, ttl: ttl}
}

// Lock acquires the lock of the order or fails with ports.ErrOrderIsLocked.
func (l *RedisOrderLocker) Lock(ctx context.Context, orderID kernel.UUID) (func(context.Context) error, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	key := keyPrefix + orderID.String()
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock of order %s: %w", orderID, err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ports.ErrOrderIsLocked, orderID)
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}, nil
}

// Connect opens a client for addr and checks connectivity.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
