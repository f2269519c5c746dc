package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestInMemoryLoginGuardExponentialCooldown(t *testing.T) {
	guard := NewInMemoryLoginGuard(LoginGuardPolicy{
		FreeAttempts: 0,
		BaseDelay:    10 * time.Millisecond,
		Multiplier:   2,
		MaxDelay:     100 * time.Millisecond,
		ResetWindow:  time.Second,
	})
	ctx := context.Background()

	if retry, err := guard.Check(ctx, "a@example.com", "10.0.0.1"); err != nil || retry != 0 {
		t.Fatalf("expected no cooldown initially, got retry=%v err=%v", retry, err)
	}
	r1, err := guard.RegisterFailure(ctx, "a@example.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("register failure #1: %v", err)
	}
	r2, err := guard.RegisterFailure(ctx, "a@example.com", "10.0.0.1")
	if err != nil {
		t.Fatalf("register failure #2: %v", err)
	}
	if r2 <= r1 {
		t.Fatalf("expected increasing cooldown, got r1=%v r2=%v", r1, r2)
	}
}

func TestInMemoryLoginGuardResetClearsCooldown(t *testing.T) {
	guard := NewInMemoryLoginGuard(LoginGuardPolicy{BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second, ResetWindow: time.Minute})
	ctx := context.Background()
	_, _ = guard.RegisterFailure(ctx, "b@example.com", "10.0.0.2")
	if retry, _ := guard.Check(ctx, "B@example.com", "10.0.0.2"); retry <= 0 {
		t.Fatal("expected active cooldown before reset")
	}
	if err := guard.Reset(ctx, "b@example.com", "10.0.0.2"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if retry, _ := guard.Check(ctx, "b@example.com", "10.0.0.2"); retry != 0 {
		t.Fatalf("expected cooldown to be cleared, got %v", retry)
	}
}

func TestInMemoryLoginGuardDimensionIsolation(t *testing.T) {
	guard := NewInMemoryLoginGuard(LoginGuardPolicy{BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second, ResetWindow: time.Minute})
	ctx := context.Background()
	_, _ = guard.RegisterFailure(ctx, "c@example.com", "10.0.0.3")

	if retry, _ := guard.Check(ctx, "c@example.com", "10.0.0.9"); retry <= 0 {
		t.Fatal("expected email dimension to trigger cooldown")
	}
	if retry, _ := guard.Check(ctx, "z@example.com", "10.0.0.3"); retry <= 0 {
		t.Fatal("expected ip dimension to trigger cooldown")
	}
	if retry, _ := guard.Check(ctx, "z@example.com", "10.0.0.9"); retry != 0 {
		t.Fatalf("expected unrelated email+ip to be unaffected, got %v", retry)
	}
}

func TestInMemoryLoginGuardWindowExpiry(t *testing.T) {
	guard := NewInMemoryLoginGuard(LoginGuardPolicy{BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second, ResetWindow: time.Minute})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }
	ctx := context.Background()
	_, _ = guard.RegisterFailure(ctx, "d@example.com", "10.0.0.4")

	now = now.Add(2 * time.Minute)
	if retry, _ := guard.Check(ctx, "d@example.com", "10.0.0.4"); retry != 0 {
		t.Fatalf("expected cooldown to lapse after reset window, got %v", retry)
	}
}

func TestRedisLoginGuardSharesCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	policy := LoginGuardPolicy{FreeAttempts: 1, BaseDelay: time.Second, Multiplier: 2, MaxDelay: 30 * time.Second, ResetWindow: time.Minute}
	first := NewRedisLoginGuard(client, "test_guard", policy)
	second := NewRedisLoginGuard(client, "test_guard", policy)
	ctx := context.Background()

	d1, err := first.RegisterFailure(ctx, "e@example.com", "10.0.0.5")
	if err != nil {
		t.Fatalf("register failure #1: %v", err)
	}
	if d1 != 0 {
		t.Fatalf("expected free first attempt, got %v", d1)
	}
	d2, err := first.RegisterFailure(ctx, "e@example.com", "10.0.0.5")
	if err != nil {
		t.Fatalf("register failure #2: %v", err)
	}
	if d2 != time.Second {
		t.Fatalf("expected base delay, got %v", d2)
	}
	retry, err := second.Check(ctx, "e@example.com", "10.0.0.99")
	if err != nil {
		t.Fatalf("check from second replica: %v", err)
	}
	if retry <= 0 {
		t.Fatal("expected cooldown visible to another guard instance")
	}
	for _, key := range mr.Keys() {
		if key == "test_guard:email:e@example.com" {
			t.Fatal("expected hashed redis keys")
		}
	}
	if err := second.Reset(ctx, "e@example.com", "10.0.0.5"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if retry, _ := first.Check(ctx, "e@example.com", "10.0.0.5"); retry != 0 {
		t.Fatalf("expected cooldown cleared, got %v", retry)
	}
}
