package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/server/http/dto"
	testhelpers "github.com/polkiloo/meetsum/internal/test"
)

func TestWalletHandlerCreate(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/wallet", NewWalletHandler(testhelpers.WalletFacadeStub{}).Create, asUser("demo"), nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "exists", err: domainErrors.ErrWalletExists, status: http.StatusConflict},
		{name: "no user", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "internal", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.WalletFacadeStub{CreateFn: func(context.Context, string) (*model.Wallet, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/wallet", NewWalletHandler(facade).Create, asUser("demo"), nil, nil)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestWalletHandlerGet(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/wallet", NewWalletHandler(testhelpers.WalletFacadeStub{}).Get, asUser("demo"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded dto.WalletResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !decoded.Balance.Equal(decimal.RequireFromString("0.05")) || decoded.Currency != model.DefaultCurrency {
		t.Fatalf("unexpected wallet %+v", decoded)
	}

	facade := testhelpers.WalletFacadeStub{WalletFn: func(context.Context, string) (*model.Wallet, error) {
		return nil, domainErrors.ErrNoWallet
	}}
	resp = performRequest(t, http.MethodGet, "/wallet", NewWalletHandler(facade).Get, asUser("demo"), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestWalletHandlerFund(t *testing.T) {
	var got decimal.Decimal
	facade := testhelpers.WalletFacadeStub{FundFn: func(_ context.Context, userID string, amount decimal.Decimal) (*model.Wallet, error) {
		got = amount
		return &model.Wallet{UserID: userID, Balance: amount, Currency: model.DefaultCurrency}, nil
	}}
	resp := performRequest(t, http.MethodPost, "/funds", NewWalletHandler(facade).Fund, asUser("demo"), []byte(`{"amount":"0.25"}`), jsonHeaders)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !got.Equal(decimal.RequireFromString("0.25")) {
		t.Fatalf("expected amount 0.25, got %s", got)
	}

	// Plain JSON numbers are accepted too.
	resp = performRequest(t, http.MethodPost, "/funds", NewWalletHandler(facade).Fund, asUser("demo"), []byte(`{"amount":0.5}`), jsonHeaders)
	if resp.Code != http.StatusOK || !got.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("expected numeric amount to be accepted, got %d %s", resp.Code, got)
	}
}

func TestWalletHandlerFundFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "bad json", body: []byte("oops"), status: http.StatusBadRequest},
		{name: "bad amount", body: []byte(`{"amount":"abc"}`), status: http.StatusBadRequest},
		{name: "invalid amount", body: []byte(`{"amount":"-1"}`), err: domainErrors.ErrInvalidAmount, status: http.StatusUnprocessableEntity},
		{name: "no wallet", body: []byte(`{"amount":"1"}`), err: domainErrors.ErrNoWallet, status: http.StatusNotFound},
		{name: "internal", body: []byte(`{"amount":"1"}`), err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := testhelpers.WalletFacadeStub{FundFn: func(context.Context, string, decimal.Decimal) (*model.Wallet, error) {
				return nil, tt.err
			}}
			resp := performRequest(t, http.MethodPost, "/funds", NewWalletHandler(facade).Fund, asUser("demo"), tt.body, jsonHeaders)
			if resp.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestWalletHandlerTransactions(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/transactions", NewWalletHandler(testhelpers.WalletFacadeStub{}).Transactions, asUser("demo"), nil, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	facade := testhelpers.WalletFacadeStub{TransactionsFn: func(context.Context, string) ([]model.Transaction, error) {
		return []model.Transaction{{
			Hash:      "0x01",
			From:      "0xabc",
			To:        model.TreasuryAddress,
			Amount:    decimal.RequireFromString("0.01"),
			Currency:  model.DefaultCurrency,
			Timestamp: time.Unix(0, 0).UTC(),
			Status:    model.TransactionStatusConfirmed,
		}}, nil
	}}
	resp = performRequest(t, http.MethodGet, "/transactions", NewWalletHandler(facade).Transactions, asUser("demo"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var decoded []dto.TransactionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Status != "confirmed" || decoded[0].To != model.TreasuryAddress {
		t.Fatalf("unexpected transactions %+v", decoded)
	}

	facade = testhelpers.WalletFacadeStub{TransactionsFn: func(context.Context, string) ([]model.Transaction, error) {
		return nil, errors.New("boom")
	}}
	resp = performRequest(t, http.MethodGet, "/transactions", NewWalletHandler(facade).Transactions, asUser("demo"), nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.Code)
	}
}
