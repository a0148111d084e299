package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
)

// WalletUseCase manages the simulated wallet of a user.
type WalletUseCase struct {
	ledger repository.LedgerRepository
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(ledger repository.LedgerRepository) *WalletUseCase {
	return &WalletUseCase{ledger: ledger}
}

// Create opens a zero balance wallet for userID.
func (u *WalletUseCase) Create(ctx context.Context, userID string) (*model.Wallet, error) {
	return u.ledger.CreateWallet(ctx, userID)
}

// Wallet returns the user's wallet or ErrNoWallet.
func (u *WalletUseCase) Wallet(ctx context.Context, userID string) (*model.Wallet, error) {
	wallet, err := u.ledger.WalletByUser(ctx, userID)
	if err != nil {
		return nil, noWallet(err)
	}
	return wallet, nil
}

// Fund credits amount to the user's wallet. It is the demo top up.
func (u *WalletUseCase) Fund(ctx context.Context, userID string, amount decimal.Decimal) (*model.Wallet, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	wallet, err := u.ledger.WalletByUser(ctx, userID)
	if err != nil {
		return nil, noWallet(err)
	}
	return u.ledger.Credit(ctx, wallet.Address, amount)
}

// Transactions lists the user's ledger records in append order.
func (u *WalletUseCase) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	return u.ledger.Transactions(ctx, userID)
}

func noWallet(err error) error {
	if errors.Is(err, domainErrors.ErrWalletNotFound) {
		return domainErrors.ErrNoWallet
	}
	return err
}
