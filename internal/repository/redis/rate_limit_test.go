package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RateLimitStore, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return NewRateLimitStore(client, "ratelimit", time.Minute), server
}

func TestRateLimitStore_RecordAndCount(t *testing.T) {
	store, _ := newTestStore(t)

	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		if err := store.RecordAttempt(ctx, "login:198.51.100.10", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordAttempt returned error: %v", err)
		}
	}

	count, err := store.CountAttempts(ctx, "login:198.51.100.10", time.Minute, now)
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts, got %d", count)
	}

	// Other identifiers are independent.
	count, err = store.CountAttempts(ctx, "login:203.0.113.7", time.Minute, now)
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 attempts for fresh identifier, got %d", count)
	}
}

func TestRateLimitStore_TrimWindow(t *testing.T) {
	store, _ := newTestStore(t)

	ctx := context.Background()
	now := time.Now()

	if err := store.RecordAttempt(ctx, "login:ip", now.Add(-2*time.Minute)); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}
	if err := store.RecordAttempt(ctx, "login:ip", now.Add(-10*time.Second)); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	if err := store.TrimWindow(ctx, "login:ip", time.Minute, now); err != nil {
		t.Fatalf("TrimWindow returned error: %v", err)
	}

	count, err := store.CountAttempts(ctx, "login:ip", time.Minute, now)
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 attempt after trim, got %d", count)
	}
}

func TestRateLimitStore_OldestAttempt(t *testing.T) {
	store, _ := newTestStore(t)

	ctx := context.Background()
	now := time.Now()

	_, ok, err := store.OldestAttempt(ctx, "login:ip", time.Minute, now)
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no attempt on empty set")
	}

	first := now.Add(-30 * time.Second)
	if err := store.RecordAttempt(ctx, "login:ip", first); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}
	if err := store.RecordAttempt(ctx, "login:ip", now); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	oldest, ok, err := store.OldestAttempt(ctx, "login:ip", time.Minute, now)
	if err != nil {
		t.Fatalf("OldestAttempt returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected an attempt inside the window")
	}
	if !oldest.Equal(time.Unix(0, first.UnixNano())) {
		t.Fatalf("oldest = %v, want %v", oldest, first)
	}
}

func TestRateLimitStore_KeyExpires(t *testing.T) {
	store, server := newTestStore(t)

	ctx := context.Background()
	now := time.Now()

	if err := store.RecordAttempt(ctx, "login:ip", now); err != nil {
		t.Fatalf("RecordAttempt returned error: %v", err)
	}

	server.FastForward(2 * time.Minute)

	count, err := store.CountAttempts(ctx, "login:ip", time.Minute, now.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("CountAttempts returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected key to expire, got %d attempts", count)
	}
}
