package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/meetsum/internal/config"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	"github.com/polkiloo/meetsum/internal/metrics"
)

// UpgradeSucceeded is reported after a successful crypto payment.
const UpgradeSucceeded = "Payment successful! Your account has been upgraded to Pro."

// UpgradeUseCase moves users to the Pro tier.
type UpgradeUseCase struct {
	users   repository.UserRepository
	ledger  repository.LedgerRepository
	price   decimal.Decimal
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewUpgradeUseCase constructs UpgradeUseCase charging cfg.ProPrice for crypto upgrades.
func NewUpgradeUseCase(users repository.UserRepository, ledger repository.LedgerRepository, cfg *config.Config, m *metrics.Metrics) *UpgradeUseCase {
	return &UpgradeUseCase{
		users:   users,
		ledger:  ledger,
		price:   cfg.ProPrice,
		metrics: m,
		now:     time.Now,
	}
}

// Upgrade charges userID with method and grants Pro. On any error the tier is unchanged.
func (u *UpgradeUseCase) Upgrade(ctx context.Context, userID string, method model.PaymentMethod) (*model.UpgradeResult, error) {
	result, err := u.upgrade(ctx, userID, method)
	if u.metrics != nil {
		name := "unknown"
		if method != nil {
			name = method.Name()
		}
		u.metrics.UpgradeAttempt(name, outcome(err))
	}
	return result, err
}

func (u *UpgradeUseCase) upgrade(ctx context.Context, userID string, method model.PaymentMethod) (*model.UpgradeResult, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("upgrade: %w", err)
	}
	if usr.Pro {
		return nil, domainErrors.ErrAlreadyPro
	}

	switch m := method.(type) {
	case model.TraditionalPayment:
		upgraded, err := u.users.SetPro(ctx, userID, u.now())
		if err != nil {
			return nil, fmt.Errorf("upgrade: %w", err)
		}
		return &model.UpgradeResult{
			Success: true,
			Message: "Your account has been upgraded to Pro.",
			User:    upgraded,
		}, nil

	case model.CryptoPayment:
		amount := m.Amount
		if amount.IsZero() {
			amount = u.price
		}
		if amount.LessThan(u.price) {
			return nil, domainErrors.ErrInvalidAmount
		}
		if _, err := u.ledger.WalletByUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("upgrade: %w", noWallet(err))
		}
		tx, err := u.ledger.Upgrade(ctx, userID, amount, model.TreasuryAddress)
		if err != nil {
			return nil, fmt.Errorf("upgrade: %w", err)
		}
		upgraded, err := u.users.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("upgrade: %w", err)
		}
		return &model.UpgradeResult{
			Success:     true,
			Message:     UpgradeSucceeded,
			User:        upgraded,
			Transaction: tx,
		}, nil

	default:
		return nil, domainErrors.ErrUnsupportedPayment
	}
}

// FailureReason renders an upgrade error for end users.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		return "Payment failed: Insufficient balance"
	case errors.Is(err, domainErrors.ErrNoWallet):
		return "No wallet associated with this account"
	case errors.Is(err, domainErrors.ErrWalletNotFound):
		return "Payment failed: Wallet not found"
	case errors.Is(err, domainErrors.ErrNotFound):
		return "User not found"
	case errors.Is(err, domainErrors.ErrAlreadyPro):
		return "Your account is already on the Pro tier"
	case errors.Is(err, domainErrors.ErrUnsupportedPayment):
		return "Unsupported payment method"
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return "Payment failed: Invalid amount"
	default:
		return "Payment failed"
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domainErrors.ErrWalletNotFound):
		return "no_wallet"
	case errors.Is(err, domainErrors.ErrAlreadyPro):
		return "already_pro"
	case errors.Is(err, domainErrors.ErrUnsupportedPayment):
		return "unsupported"
	default:
		return "error"
	}
}
