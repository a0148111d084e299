package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	pkgAuth "github.com/polkiloo/meetsum/internal/pkg/auth"
)

// Demo account created on start when seeding is enabled.
const (
	DemoLogin    = "demo"
	DemoPassword = "password"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	ledger repository.LedgerRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, ledger repository.LedgerRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, ledger: ledger, hasher: hasher, tokens: strategy}
}

// Register creates a new user with login/password and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByID(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Profile returns the user and its wallet, if any.
func (u *AuthUseCase) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{User: *usr}
	wallet, err := u.ledger.WalletByUser(ctx, userID)
	switch {
	case err == nil:
		profile.Wallet = wallet
	case errors.Is(err, domainErrors.ErrWalletNotFound):
	default:
		return nil, err
	}
	return profile, nil
}

// SeedDemo creates the demo account with a funded wallet. An existing
// demo account is left untouched.
func (u *AuthUseCase) SeedDemo(ctx context.Context, balance decimal.Decimal) error {
	hash, err := u.hasher.Hash(DemoPassword)
	if err != nil {
		return err
	}
	if _, err := u.users.Create(ctx, DemoLogin, hash); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("create demo user: %w", err)
	}

	wallet, err := u.ledger.CreateWallet(ctx, DemoLogin)
	if err != nil {
		return fmt.Errorf("create demo wallet: %w", err)
	}
	if !balance.IsPositive() {
		return nil
	}
	if _, err := u.ledger.Credit(ctx, wallet.Address, balance); err != nil {
		return fmt.Errorf("fund demo wallet: %w", err)
	}
	return nil
}
