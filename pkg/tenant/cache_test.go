package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluro/storegate/pkg/tenant"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(0)
		t.Cleanup(func() { _ = cache.Close() })

		want := testTenant("shop1", "")
		cache.Set(context.Background(), "subdomain:shop1", want, time.Minute)

		got, ok := cache.Get(context.Background(), "subdomain:shop1")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("expired entries are dropped on read", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(0)
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "k", testTenant("shop1", ""), time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := cache.Get(context.Background(), "k")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(0)
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "k", testTenant("shop1", ""), time.Minute)
		cache.Delete(context.Background(), "k")

		_, ok := cache.Get(context.Background(), "k")
		assert.False(t, ok)
	})

	t.Run("nil tenants and zero ttl are ignored", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewMemoryCache(0)
		t.Cleanup(func() { _ = cache.Close() })

		cache.Set(context.Background(), "nil", nil, time.Minute)
		cache.Set(context.Background(), "zero", testTenant("shop1", ""), 0)

		_, ok := cache.Get(context.Background(), "nil")
		assert.False(t, ok)
		_, ok = cache.Get(context.Background(), "zero")
		assert.False(t, ok)
	})
}

func TestRedisCache(t *testing.T) {
	t.Parallel()

	newCache := func(t *testing.T) (*tenant.RedisCache, *miniredis.Miniredis) {
		t.Helper()
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return tenant.NewRedisCache(client, "tenant:"), mr
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCache(t)
		want := testTenant("shop1", "shop.example.com")
		want.Settings = map[string]string{
			tenant.SettingAdminLanguage: "de",
			tenant.SettingStoreLanguage: "en",
		}

		cache.Set(context.Background(), "subdomain:shop1", want, time.Minute)

		got, ok := cache.Get(context.Background(), "subdomain:shop1")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		cache, _ := newCache(t)
		_, ok := cache.Get(context.Background(), "subdomain:missing")
		assert.False(t, ok)
	})

	t.Run("entries expire", func(t *testing.T) {
		t.Parallel()

		cache, mr := newCache(t)
		cache.Set(context.Background(), "k", testTenant("shop1", ""), time.Minute)
		mr.FastForward(2 * time.Minute)

		_, ok := cache.Get(context.Background(), "k")
		assert.False(t, ok)
	})

	t.Run("poisoned entries are dropped", func(t *testing.T) {
		t.Parallel()

		cache, mr := newCache(t)
		require.NoError(t, mr.Set("tenant:k", "not-json"))

		_, ok := cache.Get(context.Background(), "k")
		assert.False(t, ok)
		assert.False(t, mr.Exists("tenant:k"))
	})
}
