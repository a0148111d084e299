package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/usecase"
)

// MeetingFacade is the single entry point the HTTP layer and the worker use.
type MeetingFacade struct {
	auth     *usecase.AuthUseCase
	wallets  *usecase.WalletUseCase
	upgrades *usecase.UpgradeUseCase
	news     *usecase.NewsUseCase
	analyses *usecase.AnalysisUseCase
	exports  *usecase.ExportUseCase
}

func NewMeetingFacade(
	auth *usecase.AuthUseCase,
	wallets *usecase.WalletUseCase,
	upgrades *usecase.UpgradeUseCase,
	news *usecase.NewsUseCase,
	analyses *usecase.AnalysisUseCase,
	exports *usecase.ExportUseCase,
) *MeetingFacade {
	return &MeetingFacade{
		auth:     auth,
		wallets:  wallets,
		upgrades: upgrades,
		news:     news,
		analyses: analyses,
		exports:  exports,
	}
}

func (f *MeetingFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *MeetingFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MeetingFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *MeetingFacade) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *MeetingFacade) CreateWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	return f.wallets.Create(ctx, userID)
}

func (f *MeetingFacade) Wallet(ctx context.Context, userID string) (*model.Wallet, error) {
	return f.wallets.Wallet(ctx, userID)
}

func (f *MeetingFacade) FundWallet(ctx context.Context, userID string, amount decimal.Decimal) (*model.Wallet, error) {
	return f.wallets.Fund(ctx, userID, amount)
}

func (f *MeetingFacade) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return f.wallets.Transactions(ctx, userID)
}

func (f *MeetingFacade) Upgrade(ctx context.Context, userID string, method model.PaymentMethod) (*model.UpgradeResult, error) {
	return f.upgrades.Upgrade(ctx, userID, method)
}

func (f *MeetingFacade) LatestNews(ctx context.Context, category string) ([]model.NewsArticle, error) {
	return f.news.Latest(ctx, category)
}

func (f *MeetingFacade) RelatedNews(ctx context.Context, text string) ([]string, []model.NewsArticle, error) {
	return f.news.Related(ctx, text)
}

func (f *MeetingFacade) SubmitAnalysis(ctx context.Context, userID, text string, opts model.AnalysisOptions) (*model.Analysis, error) {
	return f.analyses.Submit(ctx, userID, text, opts)
}

func (f *MeetingFacade) Analysis(ctx context.Context, userID, id string) (*model.Analysis, error) {
	return f.analyses.Get(ctx, userID, id)
}

func (f *MeetingFacade) AnalysisPDF(ctx context.Context, userID, id string) ([]byte, error) {
	return f.exports.PDF(ctx, userID, id)
}

func (f *MeetingFacade) AnalysesForProcessing(ctx context.Context, limit int) ([]model.Analysis, error) {
	return f.analyses.PendingBatch(ctx, limit)
}

func (f *MeetingFacade) ProcessAnalysis(ctx context.Context, analysis *model.Analysis) error {
	return f.analyses.Process(ctx, analysis)
}

// SeedDemo creates the demo account when it does not exist yet.
func (f *MeetingFacade) SeedDemo(ctx context.Context, balance decimal.Decimal) error {
	return f.auth.SeedDemo(ctx, balance)
}
