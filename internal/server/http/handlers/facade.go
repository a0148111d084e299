package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meetsum/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
	Profile(ctx context.Context, userID string) (*model.Profile, error)
}

// WalletFacade covers the simulated ledger and the Pro upgrade.
type WalletFacade interface {
	CreateWallet(ctx context.Context, userID string) (*model.Wallet, error)
	Wallet(ctx context.Context, userID string) (*model.Wallet, error)
	FundWallet(ctx context.Context, userID string, amount decimal.Decimal) (*model.Wallet, error)
	Transactions(ctx context.Context, userID string) ([]model.Transaction, error)
	Upgrade(ctx context.Context, userID string, method model.PaymentMethod) (*model.UpgradeResult, error)
}

// NewsFacade provides headline and related news lookups.
type NewsFacade interface {
	LatestNews(ctx context.Context, category string) ([]model.NewsArticle, error)
	RelatedNews(ctx context.Context, text string) ([]string, []model.NewsArticle, error)
}

// AnalysisFacade queues transcripts and serves their results.
type AnalysisFacade interface {
	SubmitAnalysis(ctx context.Context, userID, text string, opts model.AnalysisOptions) (*model.Analysis, error)
	Analysis(ctx context.Context, userID, id string) (*model.Analysis, error)
	AnalysisPDF(ctx context.Context, userID, id string) ([]byte, error)
}

// MeetingFacade aggregates the full set of operations used across handlers.
type MeetingFacade interface {
	AuthFacade
	WalletFacade
	NewsFacade
	AnalysisFacade
}
