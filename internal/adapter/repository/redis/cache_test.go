package redis

import (
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "balance:acc-1", []byte("150.25"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "balance:acc-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(val) != "150.25" {
		t.Fatalf("expected 150.25, got %s", val)
	}

	if !mr.Exists("bankledger:cache:balance:acc-1") {
		t.Fatal("expected namespaced key in redis")
	}

	mr.FastForward(2 * time.Minute)
	val, err = cache.Get(ctx, "balance:acc-1")
	if err != nil || val != nil {
		t.Fatalf("expected expired key to read as miss, got val=%s err=%v", val, err)
	}
}

func TestCacheDelete(t *testing.T) {
	client, _ := newTestRedisClient(t)
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "foo", []byte("bar"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "foo"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	val, err := cache.Get(ctx, "foo")
	if err != nil || val != nil {
		t.Fatalf("expected miss after delete, got val=%s err=%v", val, err)
	}
}
