package cacheinfra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRedisBackend(t *testing.T) (*RedisBackend, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backend := NewRedisBackendWithClient(client, nil)
	t.Cleanup(func() { backend.Close() })

	return backend, mr
}

func TestRedisBackend_RoundTrip(t *testing.T) {
	backend, _ := testRedisBackend(t)
	ctx := context.Background()

	if err := backend.Set(ctx, "patients:files:list:abc", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok, err := backend.Get(ctx, "patients:files:list:abc")
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v, %v), want hit", v, ok, err)
	}
	if string(v) != "payload" {
		t.Errorf("Get() value = %q, want %q", v, "payload")
	}

	if _, ok, _ := backend.Get(ctx, "missing"); ok {
		t.Error("Get() reported a hit for a missing key")
	}
}

func TestRedisBackend_TTLExpiry(t *testing.T) {
	backend, mr := testRedisBackend(t)
	ctx := context.Background()

	backend.Set(ctx, "k", []byte("v"), 300*time.Second)

	mr.FastForward(299 * time.Second)
	if _, ok, _ := backend.Get(ctx, "k"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	mr.FastForward(2 * time.Second)
	if _, ok, _ := backend.Get(ctx, "k"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestRedisBackend_DeleteByPattern(t *testing.T) {
	backend, _ := testRedisBackend(t)
	ctx := context.Background()

	seed := []string{
		"patients:files:list:aaaa",
		"patients:files:list:bbbb",
		"patients:patients:list:cccc",
	}
	for _, k := range seed {
		backend.Set(ctx, k, []byte("v"), time.Minute)
	}

	if err := backend.DeleteByPattern(ctx, "patients:files:list:*"); err != nil {
		t.Fatalf("DeleteByPattern() error = %v", err)
	}

	for _, k := range []string{"patients:files:list:aaaa", "patients:files:list:bbbb"} {
		if _, ok, _ := backend.Get(ctx, k); ok {
			t.Errorf("key %q survived pattern deletion", k)
		}
	}
	if _, ok, _ := backend.Get(ctx, "patients:patients:list:cccc"); !ok {
		t.Error("unrelated key was deleted by pattern")
	}
}

func TestRedisBackend_DeleteByPatternNoMatches(t *testing.T) {
	backend, _ := testRedisBackend(t)

	if err := backend.DeleteByPattern(context.Background(), "nothing:here:*"); err != nil {
		t.Errorf("DeleteByPattern() on empty keyspace error = %v", err)
	}
}
