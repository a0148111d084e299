package model

import (
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
)

// PaymentMethod is a closed set of upgrade payment options.
// Implementations live in this package only.
type PaymentMethod interface {
	Name() string
	paymentMethod()
}

// TraditionalPayment grants Pro without touching the ledger.
type TraditionalPayment struct{}

func (TraditionalPayment) Name() string { return "traditional" }
func (TraditionalPayment) paymentMethod() {}

// CryptoPayment debits the user's wallet. Zero Amount means the configured Pro price;
// anything below that price is rejected.
type CryptoPayment struct {
	Amount decimal.Decimal
}

func (CryptoPayment) Name() string { return "crypto" }
func (CryptoPayment) paymentMethod() {}

// ParsePaymentMethod maps a client supplied name to a PaymentMethod.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "traditional":
		return TraditionalPayment{}, nil
	case "crypto":
		return CryptoPayment{}, nil
	default:
		return nil, domainErrors.ErrUnsupportedPayment
	}
}

// UpgradeResult describes a completed Free to Pro transition.
type UpgradeResult struct {
	Success     bool
	Message     string
	User        *User
	Transaction *Transaction
}
