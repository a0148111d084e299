package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/config"
)

// Module provides the news cache: redis when REDIS_ADDR is set, memory otherwise.
var Module = fx.Provide(newCache)

type cacheParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

var connectRedis = NewRedis

func newCache(p cacheParams) Cache {
	if p.Config.RedisAddr == "" {
		return NewMemory(nil)
	}
	r, err := connectRedis(p.Config.RedisAddr)
	if err != nil {
		p.Logger.Warn("redis unavailable, using in-memory cache", slog.String("addr", p.Config.RedisAddr), slog.Any("error", err))
		return NewMemory(nil)
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error { return r.Close() },
	})
	return r
}
