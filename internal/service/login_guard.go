package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// LoginGuardPolicy shapes the cooldown applied after repeated failed logins.
// The first FreeAttempts failures are free; each further failure doubles
// (by Multiplier) the delay, capped at MaxDelay. Counters reset after
// ResetWindow without failures.
type LoginGuardPolicy struct {
	FreeAttempts int
	BaseDelay    time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	ResetWindow  time.Duration
}

// LoginGuard throttles credential guessing per email and per client IP.
type LoginGuard interface {
	Check(ctx context.Context, email, ip string) (time.Duration, error)
	RegisterFailure(ctx context.Context, email, ip string) (time.Duration, error)
	Reset(ctx context.Context, email, ip string) error
}

type NoopLoginGuard struct{}

func NewNoopLoginGuard() *NoopLoginGuard { return &NoopLoginGuard{} }

func (NoopLoginGuard) Check(context.Context, string, string) (time.Duration, error) { return 0, nil }

func (NoopLoginGuard) RegisterFailure(context.Context, string, string) (time.Duration, error) {
	return 0, nil
}

func (NoopLoginGuard) Reset(context.Context, string, string) error { return nil }

type loginGuardEntry struct {
	failCount     int
	lastFailureAt time.Time
	cooldownUntil time.Time
}

type InMemoryLoginGuard struct {
	mu     sync.Mutex
	policy LoginGuardPolicy
	now    func() time.Time
	data   map[string]loginGuardEntry
}

func NewInMemoryLoginGuard(policy LoginGuardPolicy) *InMemoryLoginGuard {
	return &InMemoryLoginGuard{
		policy: normalizeLoginGuardPolicy(policy),
		now:    time.Now,
		data:   make(map[string]loginGuardEntry),
	}
}

func (g *InMemoryLoginGuard) Check(_ context.Context, email, ip string) (time.Duration, error) {
	now := g.now().UTC()
	g.mu.Lock()
	defer g.mu.Unlock()
	return max(
		g.activeCooldownLocked(now, guardKey("email", normalizeGuardEmail(email))),
		g.activeCooldownLocked(now, guardKey("ip", normalizeGuardIP(ip))),
	), nil
}

func (g *InMemoryLoginGuard) RegisterFailure(_ context.Context, email, ip string) (time.Duration, error) {
	now := g.now().UTC()
	g.mu.Lock()
	defer g.mu.Unlock()
	return max(
		g.bumpLocked(now, guardKey("email", normalizeGuardEmail(email))),
		g.bumpLocked(now, guardKey("ip", normalizeGuardIP(ip))),
	), nil
}

func (g *InMemoryLoginGuard) Reset(_ context.Context, email, ip string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.data, guardKey("email", normalizeGuardEmail(email)))
	delete(g.data, guardKey("ip", normalizeGuardIP(ip)))
	return nil
}

func (g *InMemoryLoginGuard) bumpLocked(now time.Time, key string) time.Duration {
	entry := g.data[key]
	if entry.lastFailureAt.IsZero() || now.Sub(entry.lastFailureAt) > g.policy.ResetWindow {
		entry.failCount = 0
	}
	entry.failCount++
	entry.lastFailureAt = now
	delay := g.policy.delayFor(entry.failCount)
	entry.cooldownUntil = now.Add(delay)
	g.data[key] = entry
	return delay
}

func (g *InMemoryLoginGuard) activeCooldownLocked(now time.Time, key string) time.Duration {
	entry, ok := g.data[key]
	if !ok {
		return 0
	}
	if now.Sub(entry.lastFailureAt) > g.policy.ResetWindow {
		delete(g.data, key)
		return 0
	}
	if !now.Before(entry.cooldownUntil) {
		return 0
	}
	return entry.cooldownUntil.Sub(now)
}

func (p LoginGuardPolicy) delayFor(failCount int) time.Duration {
	if failCount <= p.FreeAttempts {
		return 0
	}
	power := math.Pow(p.Multiplier, float64(failCount-p.FreeAttempts-1))
	delay := time.Duration(float64(p.BaseDelay) * power)
	if delay > p.MaxDelay || delay < 0 {
		return p.MaxDelay
	}
	return delay
}

func guardKey(dim, value string) string {
	return fmt.Sprintf("login:%s:%s", dim, value)
}

func normalizeGuardEmail(email string) string {
	v := strings.TrimSpace(strings.ToLower(email))
	if v == "" {
		return "anonymous"
	}
	return v
}

func normalizeGuardIP(ip string) string {
	v := strings.TrimSpace(strings.ToLower(ip))
	if v == "" {
		return "unknown"
	}
	return v
}

func normalizeLoginGuardPolicy(policy LoginGuardPolicy) LoginGuardPolicy {
	if policy.FreeAttempts < 0 {
		policy.FreeAttempts = 0
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = 2 * time.Second
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 2
	}
	if policy.MaxDelay < policy.BaseDelay {
		policy.MaxDelay = 5 * time.Minute
	}
	if policy.ResetWindow <= 0 {
		policy.ResetWindow = 30 * time.Minute
	}
	return policy
}
