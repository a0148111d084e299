// Package memory keeps accounts and the simulated ledger in process memory.
// Data lives until the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	"github.com/polkiloo/meetsum/internal/pkg/chainsim"
)

// account groups everything owned by one user behind a single mutex.
type account struct {
	mu     sync.Mutex
	user   model.User
	wallet *model.Wallet
	txs    []model.Transaction
}

// Store implements the account repositories in memory.
//
// Lock order is store then account. Operations that touch one account
// release the store lock before taking the account lock.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*account
	byAddress map[string]*account
	now       func() time.Time
}

type userRepository struct {
	store *Store
}

type ledgerRepository struct {
	store *Store
}

// New creates an empty store. A nil clock means time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		accounts:  make(map[string]*account),
		byAddress: make(map[string]*account),
		now:       now,
	}
}

// Users returns the user repository backed by s.
func (s *Store) Users() repository.UserRepository {
	return &userRepository{store: s}
}

// Ledger returns the wallet ledger backed by s.
func (s *Store) Ledger() repository.LedgerRepository {
	return &ledgerRepository{store: s}
}

func (s *Store) accountByUser(userID string) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return acc, nil
}

func (s *Store) accountByAddress(address string) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byAddress[address]
	if !ok {
		return nil, domainErrors.ErrWalletNotFound
	}
	return acc, nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(_ context.Context, id, passwordHash string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[id]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	acc := &account{user: model.User{ID: id, PasswordHash: passwordHash, CreatedAt: s.now()}}
	s.accounts[id] = acc
	u := acc.user
	return &u, nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	acc, err := r.store.accountByUser(id)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	u := acc.user
	return &u, nil
}

func (r *userRepository) SetPro(_ context.Context, id string, since time.Time) (*model.User, error) {
	acc, err := r.store.accountByUser(id)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	if acc.user.Pro {
		return nil, domainErrors.ErrAlreadyPro
	}
	acc.grantPro(since)
	u := acc.user
	return &u, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) CreateWallet(_ context.Context, userID string) (*model.Wallet, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()
	if acc.wallet != nil {
		return nil, domainErrors.ErrWalletExists
	}

	now := s.now()
	acc.wallet = &model.Wallet{
		UserID:    userID,
		Address:   chainsim.WalletAddress(userID, now),
		Balance:   decimal.Zero,
		Currency:  model.DefaultCurrency,
		CreatedAt: now,
	}
	s.byAddress[acc.wallet.Address] = acc
	w := *acc.wallet
	return &w, nil
}

func (r *ledgerRepository) WalletByUser(_ context.Context, userID string) (*model.Wallet, error) {
	acc, err := r.store.accountByUser(userID)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	if acc.wallet == nil {
		return nil, domainErrors.ErrWalletNotFound
	}
	w := *acc.wallet
	return &w, nil
}

func (r *ledgerRepository) WalletByAddress(_ context.Context, address string) (*model.Wallet, error) {
	acc, err := r.store.accountByAddress(address)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	w := *acc.wallet
	return &w, nil
}

func (r *ledgerRepository) Credit(_ context.Context, address string, amount decimal.Decimal) (*model.Wallet, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	acc, err := r.store.accountByAddress(address)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	acc.wallet.Balance = acc.wallet.Balance.Add(amount)
	w := *acc.wallet
	return &w, nil
}

func (r *ledgerRepository) Debit(_ context.Context, address string, amount decimal.Decimal, counterparty string) (*model.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	acc, err := r.store.accountByAddress(address)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	return acc.debit(amount, counterparty, r.store.now())
}

func (r *ledgerRepository) Upgrade(_ context.Context, userID string, amount decimal.Decimal, counterparty string) (*model.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	acc, err := r.store.accountByUser(userID)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()

	if acc.user.Pro {
		return nil, domainErrors.ErrAlreadyPro
	}
	if acc.wallet == nil {
		return nil, domainErrors.ErrWalletNotFound
	}
	now := r.store.now()
	tx, err := acc.debit(amount, counterparty, now)
	if err != nil {
		return nil, err
	}
	acc.grantPro(now)
	return tx, nil
}

func (r *ledgerRepository) Transactions(_ context.Context, userID string) ([]model.Transaction, error) {
	acc, err := r.store.accountByUser(userID)
	if err != nil {
		return nil, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	result := make([]model.Transaction, len(acc.txs))
	copy(result, acc.txs)
	return result, nil
}

// debit must be called with a.mu held.
func (a *account) debit(amount decimal.Decimal, counterparty string, at time.Time) (*model.Transaction, error) {
	if a.wallet.Balance.LessThan(amount) {
		return nil, domainErrors.ErrInsufficientBalance
	}
	if counterparty == "" {
		counterparty = model.TreasuryAddress
	}

	a.wallet.Balance = a.wallet.Balance.Sub(amount)
	tx := model.Transaction{
		Hash:      chainsim.TransactionHash(a.wallet.Address, amount, at),
		From:      a.wallet.Address,
		To:        counterparty,
		Amount:    amount,
		Currency:  a.wallet.Currency,
		Timestamp: at,
		Status:    model.TransactionStatusConfirmed,
	}
	a.txs = append(a.txs, tx)
	return &tx, nil
}

// grantPro must be called with a.mu held.
func (a *account) grantPro(since time.Time) {
	a.user.Pro = true
	a.user.ProSince = &since
}
