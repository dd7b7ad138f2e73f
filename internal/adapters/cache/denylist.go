// Package cache holds the redis-backed session denylist. Revoking a session
// on logout is the only server-side session state this service keeps; the
// token itself carries everything else.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/regionalsports/player-registry/registration-service/internal/config"
	"github.com/regionalsports/player-registry/registration-service/internal/core/ports"
)

const revokedKeyPrefix = "session:revoked:"

type RedisDenylist struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionDenylist = (*RedisDenylist)(nil)

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Auth"),
	}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	_, err := d.cb.Execute(func() (interface{}, error) {
		return nil, d.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
	})
	return err
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	result, err := d.cb.Execute(func() (interface{}, error) {
		n, err := d.client.Exists(ctx, revokedKeyPrefix+jti).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

// MemoryDenylist is the in-process counterpart used by tests.
type MemoryDenylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

var _ ports.SessionDenylist = (*MemoryDenylist)(nil)

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	until, ok := d.revoked[jti]
	return ok && time.Now().Before(until), nil
}
