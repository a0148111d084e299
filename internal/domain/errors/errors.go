package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInput        = errors.New("invalid input")

	ErrWalletNotFound = errors.New("wallet not found")
	// ErrNoWallet means the account never created a wallet. It matches ErrWalletNotFound.
	ErrNoWallet           = fmt.Errorf("no wallet associated with account: %w", ErrWalletNotFound)
	ErrWalletExists       = errors.New("wallet already exists")
	ErrUnsupportedPayment = errors.New("unsupported payment method")
	ErrAlreadyPro         = errors.New("already on pro tier")
	ErrProRequired        = errors.New("pro subscription required")
	ErrInvalidCategory    = errors.New("invalid news category")
	ErrNotReady           = errors.New("analysis not ready")

	// ErrConfigurationMissing marks a feature whose credentials are absent.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrTransportFailure wraps network errors and non-200 responses of external services.
	ErrTransportFailure = errors.New("transport failure")
	// ErrParseFailure marks malformed structured output from an external service.
	ErrParseFailure = errors.New("parse failure")
)
