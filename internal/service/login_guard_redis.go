package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginGuardBumpScript increments the failure counter of one key and returns
// the resulting cooldown in milliseconds.
var loginGuardBumpScript = redis.NewScript(`
local now_ms = tonumber(ARGV[1])
local base_ms = tonumber(ARGV[2])
local multiplier = tonumber(ARGV[3])
local max_ms = tonumber(ARGV[4])
local reset_ms = tonumber(ARGV[5])
local free_attempts = tonumber(ARGV[6])

local key = KEYS[1]
local fail_count = tonumber(redis.call("HGET", key, "fail_count") or "0")
local last_failure_ms = tonumber(redis.call("HGET", key, "last_failure_ms") or "0")

if last_failure_ms == 0 or (now_ms - last_failure_ms) > reset_ms then
  fail_count = 0
end

fail_count = fail_count + 1
local delay = 0
if fail_count > free_attempts then
  delay = math.floor(base_ms * (multiplier ^ (fail_count - free_attempts - 1)))
end
if delay > max_ms then
  delay = max_ms
end

redis.call("HSET", key, "fail_count", tostring(fail_count), "last_failure_ms", tostring(now_ms), "cooldown_until_ms", tostring(now_ms + delay))
redis.call("PEXPIRE", key, reset_ms + delay + 60000)
return delay
`)

// RedisLoginGuard shares login cooldowns across API replicas.
type RedisLoginGuard struct {
	client redis.UniversalClient
	prefix string
	policy LoginGuardPolicy
	now    func() time.Time
}

func NewRedisLoginGuard(client redis.UniversalClient, prefix string, policy LoginGuardPolicy) *RedisLoginGuard {
	if prefix == "" {
		prefix = "login_guard"
	}
	return &RedisLoginGuard{
		client: client,
		prefix: prefix,
		policy: normalizeLoginGuardPolicy(policy),
		now:    time.Now,
	}
}

func (g *RedisLoginGuard) Check(ctx context.Context, email, ip string) (time.Duration, error) {
	now := g.now().UTC()
	byEmail, err := g.cooldown(ctx, g.key("email", normalizeGuardEmail(email)), now)
	if err != nil {
		return 0, err
	}
	byIP, err := g.cooldown(ctx, g.key("ip", normalizeGuardIP(ip)), now)
	if err != nil {
		return 0, err
	}
	return max(byEmail, byIP), nil
}

func (g *RedisLoginGuard) RegisterFailure(ctx context.Context, email, ip string) (time.Duration, error) {
	nowMS := g.now().UTC().UnixMilli()
	byEmail, err := g.bump(ctx, g.key("email", normalizeGuardEmail(email)), nowMS)
	if err != nil {
		return 0, err
	}
	byIP, err := g.bump(ctx, g.key("ip", normalizeGuardIP(ip)), nowMS)
	if err != nil {
		return 0, err
	}
	return max(byEmail, byIP), nil
}

func (g *RedisLoginGuard) Reset(ctx context.Context, email, ip string) error {
	return g.client.Del(ctx,
		g.key("email", normalizeGuardEmail(email)),
		g.key("ip", normalizeGuardIP(ip)),
	).Err()
}

func (g *RedisLoginGuard) bump(ctx context.Context, key string, nowMS int64) (time.Duration, error) {
	result, err := loginGuardBumpScript.Run(ctx, g.client, []string{key},
		nowMS,
		g.policy.BaseDelay.Milliseconds(),
		g.policy.Multiplier,
		g.policy.MaxDelay.Milliseconds(),
		g.policy.ResetWindow.Milliseconds(),
		g.policy.FreeAttempts,
	).Int64()
	if err != nil {
		return 0, err
	}
	return time.Duration(max(result, 0)) * time.Millisecond, nil
}

func (g *RedisLoginGuard) cooldown(ctx context.Context, key string, now time.Time) (time.Duration, error) {
	values, err := g.client.HMGet(ctx, key, "last_failure_ms", "cooldown_until_ms").Result()
	if err != nil {
		return 0, err
	}
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return 0, nil
	}
	lastFailureMS, err := parseGuardInt(values[0])
	if err != nil {
		return 0, err
	}
	cooldownUntilMS, err := parseGuardInt(values[1])
	if err != nil {
		return 0, err
	}
	nowMS := now.UnixMilli()
	if nowMS-lastFailureMS > g.policy.ResetWindow.Milliseconds() || cooldownUntilMS <= nowMS {
		return 0, nil
	}
	return time.Duration(cooldownUntilMS-nowMS) * time.Millisecond, nil
}

// key hashes the value so raw emails never appear in redis.
func (g *RedisLoginGuard) key(dim, value string) string {
	sum := sha256.Sum256([]byte(value))
	return fmt.Sprintf("%s:%s:%s", g.prefix, dim, hex.EncodeToString(sum[:]))
}

func parseGuardInt(v any) (int64, error) {
	switch n := v.(type) {
	case string:
		return strconv.ParseInt(n, 10, 64)
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("redis value overflows int64")
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected redis value type %T", v)
	}
}
