package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/config"
	"github.com/polkiloo/meetsum/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewMeetingFacade,
		func(f *MeetingFacade) Seeder { return f },
		newHTTPServer,
		newAnalysisProcessor,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *MeetingFacade
	Config *config.Config
	Logger *slog.Logger
}

func newAnalysisProcessor(p workerParams) *worker.AnalysisProcessor {
	return worker.NewAnalysisProcessor(
		p.Facade,
		p.Config.AnalysisPollInterval,
		p.Config.AnalysisBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

// Seeder prepares the demo account before the server accepts requests.
type Seeder interface {
	SeedDemo(ctx context.Context, balance decimal.Decimal) error
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.AnalysisProcessor
	Seeder     Seeder
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	var (
		logger     = p.Logger
		server     = p.Server
		processor  = p.Worker
		seeder     = p.Seeder
		cfg        = p.Config
		shutdowner = p.Shutdowner
		runCancel  context.CancelFunc
	)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.SeedDemo && seeder != nil {
				if err := seeder.SeedDemo(ctx, cfg.DemoBalance); err != nil {
					return fmt.Errorf("seed demo account: %w", err)
				}
				logger.Info("demo account ready", slog.String("balance", cfg.DemoBalance.String()))
			}

			logger.Info("starting meetsum", slog.String("addr", server.Addr))

			// The start context ends with startup.
			var runCtx context.Context
			runCtx, runCancel = context.WithCancel(context.Background())
			processor.Start(runCtx)

			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			processor.Stop()
			if runCancel != nil {
				runCancel()
			}

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
			}
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("meetsum stopped")
			return nil
		},
	})
}
