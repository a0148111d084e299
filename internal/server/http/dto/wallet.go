package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletResponse describes a simulated wallet. Amounts are decimal strings.
type WalletResponse struct {
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

// FundRequest tops up the caller's wallet.
type FundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransactionResponse is a ledger record.
type TransactionResponse struct {
	Hash      string          `json:"hash"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Timestamp time.Time       `json:"timestamp"`
	Status    string          `json:"status"`
}
