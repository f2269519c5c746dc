package observability

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// InstrumentRedisClient records every command the client issues, including
// the rate limiter and login guard scripts.
func InstrumentRedisClient(client redis.UniversalClient) {
	if client == nil {
		return
	}
	client.AddHook(redisCommandHook{})
}

type redisCommandHook struct{}

func (redisCommandHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (redisCommandHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		RecordRedisCommand(ctx, strings.ToLower(cmd.Name()), redisCommandStatus(err), time.Since(start))
		return err
	}
}

func (redisCommandHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		RecordRedisCommand(ctx, "pipeline", redisCommandStatus(err), time.Since(start))
		return err
	}
}

func redisCommandStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, redis.Nil):
		return "miss"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
