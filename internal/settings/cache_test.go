package settings

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*StatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatusCache(client), mr
}

func TestStatusCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("empty cache must miss")
	}

	config := DefaultStatusConfig()
	cache.Set(ctx, config)

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if len(got) != len(config) {
		t.Fatalf("got %d entries, want %d", len(got), len(config))
	}
	if got[0].ID != "New" || got[0].Label != "新規" || got[0].Color != "#cbd5e1" {
		t.Errorf("first entry corrupted: %+v", got[0])
	}
}

func TestStatusCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, DefaultStatusConfig())
	cache.Invalidate(ctx)

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("invalidated key must miss")
	}
}

func TestStatusCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, DefaultStatusConfig())
	mr.FastForward(statusCacheTTL * 2)

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expired key must miss")
	}
}

func TestStatusCacheToleratesCorruptPayload(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set(statusCacheKey, "not json")

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("corrupt payload must be treated as a miss")
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var cache *StatusCache
	ctx := context.Background()

	if _, ok := cache.Get(ctx); ok {
		t.Fatal("nil cache must always miss")
	}
	cache.Set(ctx, DefaultStatusConfig())
	cache.Invalidate(ctx)
}
