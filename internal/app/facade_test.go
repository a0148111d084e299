package app

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meetsum/internal/cache"
	"github.com/polkiloo/meetsum/internal/config"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/metrics"
	"github.com/polkiloo/meetsum/internal/storage/memory"
	testhelpers "github.com/polkiloo/meetsum/internal/test"
	"github.com/polkiloo/meetsum/internal/usecase"
)

func newFacade() *MeetingFacade {
	store := memory.New(nil)
	analyses := memory.NewAnalysisStore(nil)
	m := metrics.New()
	logger := discardLogger()
	cfg := &config.Config{
		ProPrice: decimal.RequireFromString("0.01"),
		News:     config.NewsConfig{Keywords: 5, PageSize: 5, CacheTTL: time.Minute, FallbackCategory: "technology"},
	}

	authUC := usecase.NewAuthUseCase(store.Users(), store.Ledger(), testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	newsUC := usecase.NewNewsUseCase(&testhelpers.NewsClientStub{}, cache.NewMemory(nil), cfg, logger, m)

	return NewMeetingFacade(
		authUC,
		usecase.NewWalletUseCase(store.Ledger()),
		usecase.NewUpgradeUseCase(store.Users(), store.Ledger(), cfg, m),
		newsUC,
		usecase.NewAnalysisUseCase(analyses, store.Users(), testhelpers.LLMStub{}, newsUC, testhelpers.TrackerStub{}, m, logger),
		usecase.NewExportUseCase(analyses, store.Users()),
	)
}

func TestMeetingFacadeAuth(t *testing.T) {
	facade := newFacade()
	ctx := context.Background()

	token, err := facade.Register(ctx, "alice", "secret-pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token-alice" {
		t.Fatalf("unexpected token %q", token)
	}

	if _, err := facade.Register(ctx, "alice", "secret-pass"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected duplicate login error, got %v", err)
	}

	token, err = facade.Authenticate(ctx, "alice", "secret-pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, err := facade.ParseToken(token)
	if err != nil || id != "alice" {
		t.Fatalf("expected alice, got %q err=%v", id, err)
	}

	profile, err := facade.Profile(ctx, id)
	if err != nil {
		t.Fatalf("profile returned error: %v", err)
	}
	if profile.User.Pro || profile.Wallet != nil {
		t.Fatalf("expected free user without wallet, got %+v", profile)
	}
}

func TestMeetingFacadeUpgradeFlow(t *testing.T) {
	facade := newFacade()
	ctx := context.Background()

	if err := facade.SeedDemo(ctx, decimal.RequireFromString("0.05")); err != nil {
		t.Fatalf("seed returned error: %v", err)
	}

	if _, err := facade.CreateWallet(ctx, usecase.DemoLogin); !errors.Is(err, domainErrors.ErrWalletExists) {
		t.Fatalf("expected existing wallet error, got %v", err)
	}

	result, err := facade.Upgrade(ctx, usecase.DemoLogin, model.CryptoPayment{})
	if err != nil {
		t.Fatalf("upgrade returned error: %v", err)
	}
	if !result.Success || result.Transaction == nil {
		t.Fatalf("unexpected upgrade result %+v", result)
	}

	wallet, err := facade.Wallet(ctx, usecase.DemoLogin)
	if err != nil {
		t.Fatalf("wallet returned error: %v", err)
	}
	if !wallet.Balance.Equal(decimal.RequireFromString("0.04")) {
		t.Fatalf("expected balance 0.04, got %s", wallet.Balance)
	}

	wallet, err = facade.FundWallet(ctx, usecase.DemoLogin, decimal.RequireFromString("0.01"))
	if err != nil || !wallet.Balance.Equal(decimal.RequireFromString("0.05")) {
		t.Fatalf("unexpected funded wallet %+v err=%v", wallet, err)
	}

	txs, err := facade.Transactions(ctx, usecase.DemoLogin)
	if err != nil || len(txs) != 1 {
		t.Fatalf("expected one transaction, got %v err=%v", txs, err)
	}

	if _, err := facade.Upgrade(ctx, usecase.DemoLogin, model.TraditionalPayment{}); !errors.Is(err, domainErrors.ErrAlreadyPro) {
		t.Fatalf("expected already pro error, got %v", err)
	}
}

func TestMeetingFacadeAnalysisFlow(t *testing.T) {
	facade := newFacade()
	ctx := context.Background()

	if _, err := facade.Register(ctx, "bob", "secret-pass"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, err := facade.Upgrade(ctx, "bob", model.TraditionalPayment{}); err != nil {
		t.Fatalf("upgrade returned error: %v", err)
	}

	submitted, err := facade.SubmitAnalysis(ctx, "bob", "Quarterly budget review with the marketing team.", model.AnalysisOptions{})
	if err != nil {
		t.Fatalf("submit returned error: %v", err)
	}

	if _, err := facade.AnalysisPDF(ctx, "bob", submitted.ID); !errors.Is(err, domainErrors.ErrNotReady) {
		t.Fatalf("expected not ready error, got %v", err)
	}

	batch, err := facade.AnalysesForProcessing(ctx, 5)
	if err != nil || len(batch) != 1 {
		t.Fatalf("expected one pending analysis, got %v err=%v", batch, err)
	}
	if err := facade.ProcessAnalysis(ctx, &batch[0]); err != nil {
		t.Fatalf("process returned error: %v", err)
	}

	done, err := facade.Analysis(ctx, "bob", submitted.ID)
	if err != nil {
		t.Fatalf("analysis returned error: %v", err)
	}
	if done.Status != model.AnalysisStatusDone || done.Provenance == nil {
		t.Fatalf("unexpected analysis %+v", done)
	}

	pdf, err := facade.AnalysisPDF(ctx, "bob", submitted.ID)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("expected pdf output, err=%v", err)
	}
}

func TestMeetingFacadeNews(t *testing.T) {
	facade := newFacade()
	ctx := context.Background()

	articles, err := facade.LatestNews(ctx, "business")
	if err != nil || len(articles) != 1 || articles[0].Title != "Top business" {
		t.Fatalf("unexpected latest news %v err=%v", articles, err)
	}

	if _, err := facade.LatestNews(ctx, "gossip"); !errors.Is(err, domainErrors.ErrInvalidCategory) {
		t.Fatalf("expected invalid category, got %v", err)
	}

	words, related, err := facade.RelatedNews(ctx, "sales sales marketing")
	if err != nil || len(related) != 1 {
		t.Fatalf("unexpected related news %v err=%v", related, err)
	}
	if len(words) != 2 || words[0] != "sales" {
		t.Fatalf("unexpected keywords %v", words)
	}
}
