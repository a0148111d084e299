// Package storage selects the account backend and exposes the repositories.
package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/config"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	"github.com/polkiloo/meetsum/internal/storage/memory"
	"github.com/polkiloo/meetsum/internal/storage/postgres"
)

// Module wires the account backend, its repositories and the in-memory analysis store.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.LedgerRepository { return f.Ledger() },
		func() repository.AnalysisRepository { return memory.NewAnalysisStore(nil) },
	),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

var openPostgres = postgres.Open

func newFactory(p factoryParams) (repository.Factory, error) {
	if p.Config.DatabaseURI == "" {
		p.Logger.Info("using in-memory account storage")
		return memory.New(nil), nil
	}

	storage, err := openPostgres(postgres.Params{
		Ctx:       p.Ctx,
		Config:    p.Config,
		Logger:    p.Logger,
		Lifecycle: p.Lifecycle,
	})
	if err != nil {
		return nil, err
	}
	p.Logger.Info("using postgres account storage")
	return storage, nil
}
