package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/adapter/chain"
	"github.com/polkiloo/meetsum/internal/adapter/llm"
	"github.com/polkiloo/meetsum/internal/adapter/news"
	"github.com/polkiloo/meetsum/internal/app"
	"github.com/polkiloo/meetsum/internal/cache"
	"github.com/polkiloo/meetsum/internal/config"
	"github.com/polkiloo/meetsum/internal/logger"
	"github.com/polkiloo/meetsum/internal/metrics"
	"github.com/polkiloo/meetsum/internal/pkg/auth"
	"github.com/polkiloo/meetsum/internal/server/http/handlers"
	"github.com/polkiloo/meetsum/internal/server/http/router"
	"github.com/polkiloo/meetsum/internal/storage"
	"github.com/polkiloo/meetsum/internal/usecase"
)

// Module composes the application graph. opts are applied last, so tests can fx.Replace any part.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		storage.Module,
		cache.Module,
		news.Module,
		llm.Module,
		chain.Module,
		usecase.Module,
		fx.Provide(func(f *app.MeetingFacade) handlers.MeetingFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
