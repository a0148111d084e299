package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/meetsum/internal/adapter/llm"
	"github.com/polkiloo/meetsum/internal/adapter/news"
	"github.com/polkiloo/meetsum/internal/app"
	"github.com/polkiloo/meetsum/internal/config"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/test"
	"github.com/polkiloo/meetsum/internal/usecase"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:           ":0",
		JWTSecret:            "secret",
		AuthStrategy:         config.AuthStrategyHMAC,
		AnalysisPollInterval: time.Millisecond,
		WorkerPoolSize:       1,
		AnalysisBatchSize:    1,
		ShutdownTimeout:      time.Millisecond,
		HTTPClientTimeout:    time.Second,
		News:                 config.NewsConfig{Keywords: 5, PageSize: 5, CacheTTL: time.Minute, FallbackCategory: "technology"},
		DemoBalance:          decimal.RequireFromString("0.05"),
		ProPrice:             decimal.RequireFromString("0.01"),
	}
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var facade *app.MeetingFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(logger),
			fx.Replace(fx.Annotate(&test.NewsClientStub{}, fx.As(new(news.Client)))),
			fx.Replace(fx.Annotate(test.LLMStub{}, fx.As(new(llm.Client)))),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil {
		t.Fatal("expected meeting facade instance")
	}

	ctx := context.Background()
	if err := facade.SeedDemo(ctx, decimal.RequireFromString("0.05")); err != nil {
		t.Fatalf("seed demo failed: %v", err)
	}
	result, err := facade.Upgrade(ctx, usecase.DemoLogin, model.CryptoPayment{})
	if err != nil || !result.Success {
		t.Fatalf("expected upgrade through the composed graph, got %+v err=%v", result, err)
	}
	wallet, err := facade.Wallet(ctx, usecase.DemoLogin)
	if err != nil || !wallet.Balance.Equal(decimal.RequireFromString("0.04")) {
		t.Fatalf("expected balance 0.04, got %+v err=%v", wallet, err)
	}
}

func TestModuleRunsWithoutCredentials(t *testing.T) {
	var (
		llmClient  llm.Client
		newsClient news.Client
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		),
		fx.Populate(&llmClient, &newsClient),
	)
	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if _, ok := llmClient.(llm.Unavailable); !ok {
		t.Fatalf("expected unavailable llm client, got %T", llmClient)
	}
	if _, ok := newsClient.(news.Unavailable); !ok {
		t.Fatalf("expected unavailable news client, got %T", newsClient)
	}
}
