package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meetsum/internal/domain/model"
)

// LedgerRepository keeps one wallet per user and the append-only transaction history.
//
// Debit and Upgrade check the balance and mutate it in one critical section,
// so a balance never goes negative and a failed call leaves no trace.
type LedgerRepository interface {
	CreateWallet(ctx context.Context, userID string) (*model.Wallet, error)
	WalletByUser(ctx context.Context, userID string) (*model.Wallet, error)
	WalletByAddress(ctx context.Context, address string) (*model.Wallet, error)
	Credit(ctx context.Context, address string, amount decimal.Decimal) (*model.Wallet, error)
	Debit(ctx context.Context, address string, amount decimal.Decimal, counterparty string) (*model.Transaction, error)
	// Upgrade debits the user's wallet and grants Pro atomically.
	Upgrade(ctx context.Context, userID string, amount decimal.Decimal, counterparty string) (*model.Transaction, error)
	Transactions(ctx context.Context, userID string) ([]model.Transaction, error)
}
