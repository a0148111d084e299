package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
)

// WalletFacadeStub simulates wallet and upgrade operations.
type WalletFacadeStub struct {
	CreateFn       func(context.Context, string) (*model.Wallet, error)
	WalletFn       func(context.Context, string) (*model.Wallet, error)
	FundFn         func(context.Context, string, decimal.Decimal) (*model.Wallet, error)
	TransactionsFn func(context.Context, string) ([]model.Transaction, error)
	UpgradeFn      func(context.Context, string, model.PaymentMethod) (*model.UpgradeResult, error)
}

func stubWallet(userID string) *model.Wallet {
	return &model.Wallet{
		UserID:    userID,
		Address:   "0x00000000000000000000000000000000000000aa",
		Balance:   decimal.RequireFromString("0.05"),
		Currency:  model.DefaultCurrency,
		CreatedAt: time.Unix(0, 0).UTC(),
	}
}

// CreateWallet returns a fresh wallet by default.
func (s WalletFacadeStub) CreateWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID)
	}
	return stubWallet(userID), nil
}

// Wallet returns a funded wallet by default.
func (s WalletFacadeStub) Wallet(ctx context.Context, userID string) (*model.Wallet, error) {
	if s.WalletFn != nil {
		return s.WalletFn(ctx, userID)
	}
	return stubWallet(userID), nil
}

// FundWallet adds amount to the default wallet.
func (s WalletFacadeStub) FundWallet(ctx context.Context, userID string, amount decimal.Decimal) (*model.Wallet, error) {
	if s.FundFn != nil {
		return s.FundFn(ctx, userID, amount)
	}
	w := stubWallet(userID)
	w.Balance = w.Balance.Add(amount)
	return w, nil
}

// Transactions returns no history by default.
func (s WalletFacadeStub) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, userID)
	}
	return nil, nil
}

// Upgrade succeeds without a transaction by default.
func (s WalletFacadeStub) Upgrade(ctx context.Context, userID string, method model.PaymentMethod) (*model.UpgradeResult, error) {
	if s.UpgradeFn != nil {
		return s.UpgradeFn(ctx, userID, method)
	}
	return &model.UpgradeResult{Success: true, Message: "upgraded", User: &model.User{ID: userID, Pro: true}}, nil
}

// NewsFacadeStub simulates news lookups.
type NewsFacadeStub struct {
	LatestFn  func(context.Context, string) ([]model.NewsArticle, error)
	RelatedFn func(context.Context, string) ([]string, []model.NewsArticle, error)
}

func (s NewsFacadeStub) LatestNews(ctx context.Context, category string) ([]model.NewsArticle, error) {
	if s.LatestFn != nil {
		return s.LatestFn(ctx, category)
	}
	return []model.NewsArticle{{Title: "Top " + category, Source: "stub", URL: "#"}}, nil
}

func (s NewsFacadeStub) RelatedNews(ctx context.Context, text string) ([]string, []model.NewsArticle, error) {
	if s.RelatedFn != nil {
		return s.RelatedFn(ctx, text)
	}
	return []string{"budget"}, []model.NewsArticle{{Title: "Budget", Source: "stub", URL: "#"}}, nil
}

// AnalysisFacadeStub simulates analysis submission and export.
type AnalysisFacadeStub struct {
	SubmitFn func(context.Context, string, string, model.AnalysisOptions) (*model.Analysis, error)
	GetFn    func(context.Context, string, string) (*model.Analysis, error)
	PDFFn    func(context.Context, string, string) ([]byte, error)
}

func (s AnalysisFacadeStub) SubmitAnalysis(ctx context.Context, userID, text string, opts model.AnalysisOptions) (*model.Analysis, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, userID, text, opts)
	}
	return &model.Analysis{ID: "analysis-1", UserID: userID, Status: model.AnalysisStatusNew, Text: text, Options: opts}, nil
}

func (s AnalysisFacadeStub) Analysis(ctx context.Context, userID, id string) (*model.Analysis, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s AnalysisFacadeStub) AnalysisPDF(ctx context.Context, userID, id string) ([]byte, error) {
	if s.PDFFn != nil {
		return s.PDFFn(ctx, userID, id)
	}
	return []byte("%PDF-1.3 stub"), nil
}

// MeetingFacadeStub aggregates facade dependencies for HTTP layer tests.
type MeetingFacadeStub struct {
	AuthFacadeStub
	WalletFacadeStub
	NewsFacadeStub
	AnalysisFacadeStub
}

// WorkerFacadeStub mimics worker interactions with the meeting facade.
type WorkerFacadeStub struct {
	Batches   [][]model.Analysis
	PendingFn func(context.Context, int) ([]model.Analysis, error)
	ProcessFn func(context.Context, *model.Analysis) error
	Processed []string

	mu        sync.Mutex
	callCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// AnalysesForProcessing returns batches from configured queue.
func (s *WorkerFacadeStub) AnalysesForProcessing(ctx context.Context, limit int) ([]model.Analysis, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.callCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ProcessAnalysis records processed analysis ids.
func (s *WorkerFacadeStub) ProcessAnalysis(ctx context.Context, analysis *model.Analysis) error {
	if s.ProcessFn != nil {
		return s.ProcessFn(ctx, analysis)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Processed = append(s.Processed, analysis.ID)
	return nil
}
