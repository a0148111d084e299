package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the notional unit of the simulated ledger.
const DefaultCurrency = "ETH"

// TreasuryAddress receives subscription payments.
const TreasuryAddress = "app_treasury"

// Wallet is a simulated wallet owned by exactly one user.
// Address is a display handle, not a key.
type Wallet struct {
	UserID    string
	Address   string
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
}

// TransactionStatus describes settlement state. The ledger only produces confirmed records.
type TransactionStatus string

const TransactionStatusConfirmed TransactionStatus = "confirmed"

// Transaction is an immutable ledger record.
type Transaction struct {
	Hash      string
	From      string
	To        string
	Amount    decimal.Decimal
	Currency  string
	Timestamp time.Time
	Status    TransactionStatus
}
