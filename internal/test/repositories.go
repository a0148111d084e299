package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, id, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[id]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: id, PasswordHash: passwordHash}
	s.Users[id] = user
	copied := *user
	return &copied, nil
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetPro flips the pro flag of a stored user.
func (s *UserRepositoryStub) SetPro(ctx context.Context, id string, since time.Time) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.Users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if user.Pro {
		return nil, domainErrors.ErrAlreadyPro
	}
	user.Pro = true
	user.ProSince = &since
	copied := *user
	return &copied, nil
}

// LedgerRepositoryStub lets tests control ledger behaviour per method.
// Methods without an override fail with ErrWalletNotFound.
type LedgerRepositoryStub struct {
	CreateWalletFn    func(context.Context, string) (*model.Wallet, error)
	WalletByUserFn    func(context.Context, string) (*model.Wallet, error)
	WalletByAddressFn func(context.Context, string) (*model.Wallet, error)
	CreditFn          func(context.Context, string, decimal.Decimal) (*model.Wallet, error)
	DebitFn           func(context.Context, string, decimal.Decimal, string) (*model.Transaction, error)
	UpgradeFn         func(context.Context, string, decimal.Decimal, string) (*model.Transaction, error)
	TransactionsFn    func(context.Context, string) ([]model.Transaction, error)
}

func (s *LedgerRepositoryStub) CreateWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	if s.CreateWalletFn != nil {
		return s.CreateWalletFn(ctx, userID)
	}
	return nil, domainErrors.ErrWalletNotFound
}

func (s *LedgerRepositoryStub) WalletByUser(ctx context.Context, userID string) (*model.Wallet, error) {
	if s.WalletByUserFn != nil {
		return s.WalletByUserFn(ctx, userID)
	}
	return nil, domainErrors.ErrWalletNotFound
}

func (s *LedgerRepositoryStub) WalletByAddress(ctx context.Context, address string) (*model.Wallet, error) {
	if s.WalletByAddressFn != nil {
		return s.WalletByAddressFn(ctx, address)
	}
	return nil, domainErrors.ErrWalletNotFound
}

func (s *LedgerRepositoryStub) Credit(ctx context.Context, address string, amount decimal.Decimal) (*model.Wallet, error) {
	if s.CreditFn != nil {
		return s.CreditFn(ctx, address, amount)
	}
	return nil, domainErrors.ErrWalletNotFound
}

func (s *LedgerRepositoryStub) Debit(ctx context.Context, address string, amount decimal.Decimal, counterparty string) (*model.Transaction, error) {
	if s.DebitFn != nil {
		return s.DebitFn(ctx, address, amount, counterparty)
	}
	return nil, domainErrors.ErrWalletNotFound
}

func (s *LedgerRepositoryStub) Upgrade(ctx context.Context, userID string, amount decimal.Decimal, counterparty string) (*model.Transaction, error) {
	if s.UpgradeFn != nil {
		return s.UpgradeFn(ctx, userID, amount, counterparty)
	}
	return nil, domainErrors.ErrWalletNotFound
}

func (s *LedgerRepositoryStub) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, userID)
	}
	return nil, nil
}

var (
	_ repository.UserRepository   = (*UserRepositoryStub)(nil)
	_ repository.LedgerRepository = (*LedgerRepositoryStub)(nil)
)
