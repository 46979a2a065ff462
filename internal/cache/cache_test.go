package cache

import (
	"context"
	"testing"

	"travelmap/internal/domain"
)

func TestCostKey(t *testing.T) {
	got := CostKey(domain.PlanKey{TripID: "t1", PlanID: "p2"}, "9f2c")
	if got != "costs:t1:p2:9f2c" {
		t.Fatalf("key: %q", got)
	}
}

func TestNewRedisWithoutAddrIsNoop(t *testing.T) {
	c, err := NewRedis(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(Noop); !ok {
		t.Fatalf("expected Noop, got %T", c)
	}
	var dst map[string]any
	hit, err := c.Get(context.Background(), "k", &dst)
	if hit || err != nil {
		t.Fatalf("noop get: hit=%v err=%v", hit, err)
	}
	if err := c.Set(context.Background(), "k", 1, 0); err != nil {
		t.Fatalf("noop set: %v", err)
	}
}
