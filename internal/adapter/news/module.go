package news

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/config"
)

// Module registers news client in fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	key, ok := p.Config.News.APIKey.Value()
	if !ok {
		p.Logger.Warn("NEWS_API_KEY not configured, news features disabled")
		return Unavailable{}, nil
	}
	return NewHTTPClient(p.Config.News.URL, key, p.Config.HTTPClientTimeout, p.Logger)
}
