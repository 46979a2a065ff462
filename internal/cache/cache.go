package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"travelmap/internal/domain"
	"travelmap/internal/utils"
)

// Cache stores JSON values of derived views.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

// CostKey names the cost summary of one plan content. fingerprint changes
// whenever any stored row of the plan changes, so a reload against edited
// data never hits an older entry.
func CostKey(key domain.PlanKey, fingerprint string) string {
	return fmt.Sprintf("costs:%s:%s:%s", key.TripID, key.PlanID, fingerprint)
}

type Redis struct {
	Client *redis.Client
}

// NewRedis connects and pings. An empty addr disables caching.
func NewRedis(ctx context.Context, addr string, db int) (Cache, error) {
	if addr == "" {
		return Noop{}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return Noop{}, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	utils.LogEvent("", "cache", "connect", "redis="+addr)
	return Redis{Client: client}, nil
}

func (r Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key, raw, ttl).Err()
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
