package llm

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/config"
)

// Module registers the language model client in fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	key, ok := p.Config.LLM.APIKey.Value()
	if !ok {
		p.Logger.Warn("LLM_API_KEY not configured, analyses run in degraded mode")
		return Unavailable{}, nil
	}
	return NewHTTPClient(p.Config.LLM.URL, key, p.Config.LLM.Model, p.Config.HTTPClientTimeout, p.Logger)
}
