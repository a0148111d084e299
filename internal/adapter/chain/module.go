package chain

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/config"
)

// Module registers the provenance tracker in fx graph.
var Module = fx.Provide(newTracker)

type trackerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newTracker(p trackerParams) Tracker {
	if !p.Config.Chain.DeployerKey.IsSet() {
		p.Logger.Info("DEPLOYER_PRIVATE_KEY not configured, provenance disabled")
		return Unavailable{}
	}
	return NewSimulator(Network{
		RPCURL:      p.Config.Chain.RPCURL,
		ChainID:     p.Config.Chain.ChainID,
		ExplorerURL: p.Config.Chain.ExplorerURL,
	}, p.Logger)
}
