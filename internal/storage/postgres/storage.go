package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	"github.com/polkiloo/meetsum/internal/pkg/chainsim"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// pgxPool is the subset of *pgxpool.Pool used by the storage.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
	now    func() time.Time
}

type userRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger, now: time.Now}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            password_hash TEXT NOT NULL,
            pro BOOLEAN NOT NULL DEFAULT FALSE,
            pro_since TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS wallets (
            address TEXT PRIMARY KEY,
            user_id TEXT UNIQUE NOT NULL REFERENCES users(id),
            balance NUMERIC(38, 18) NOT NULL DEFAULT 0 CHECK (balance >= 0),
            currency TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            hash TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            from_address TEXT NOT NULL,
            to_address TEXT NOT NULL,
            amount NUMERIC(38, 18) NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// --- UserRepository implementation ---

const selectUser = `SELECT id, password_hash, pro, pro_since, created_at FROM users WHERE id=$1`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.PasswordHash, &u.Pro, &u.ProSince, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, id, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (id, password_hash) VALUES ($1, $2) RETURNING created_at`
	u := model.User{ID: id, PasswordHash: passwordHash}
	err := r.storage.pool.QueryRow(ctx, query, id, passwordHash).Scan(&u.CreatedAt)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, selectUser, id))
}

func (r *userRepository) SetPro(ctx context.Context, id string, since time.Time) (*model.User, error) {
	var user *model.User
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx, selectUser+` FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if u.Pro {
			return domainErrors.ErrAlreadyPro
		}
		if err := grantPro(ctx, tx, id, since); err != nil {
			return err
		}
		u.Pro, u.ProSince = true, &since
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func grantPro(ctx context.Context, tx pgx.Tx, userID string, since time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE users SET pro=TRUE, pro_since=$2 WHERE id=$1`, userID, since)
	return err
}

// --- LedgerRepository implementation ---

const walletColumns = `address, user_id, balance::text, currency, created_at`

func scanWallet(row pgx.Row) (*model.Wallet, error) {
	var (
		w       model.Wallet
		balance string
	)
	if err := row.Scan(&w.Address, &w.UserID, &balance, &w.Currency, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrWalletNotFound
		}
		return nil, err
	}
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}
	w.Balance = amount
	return &w, nil
}

func (r *ledgerRepository) CreateWallet(ctx context.Context, userID string) (*model.Wallet, error) {
	now := r.storage.clock()
	w := model.Wallet{
		UserID:    userID,
		Address:   chainsim.WalletAddress(userID, now),
		Balance:   decimal.Zero,
		Currency:  model.DefaultCurrency,
		CreatedAt: now,
	}
	const query = `INSERT INTO wallets (address, user_id, balance, currency, created_at) VALUES ($1, $2, 0, $3, $4)`
	if _, err := r.storage.pool.Exec(ctx, query, w.Address, userID, w.Currency, now); err != nil {
		switch pgCode(err) {
		case codeUniqueViolation:
			return nil, domainErrors.ErrWalletExists
		case codeForeignKeyViolation:
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *ledgerRepository) WalletByUser(ctx context.Context, userID string) (*model.Wallet, error) {
	return scanWallet(r.storage.pool.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id=$1`, userID))
}

func (r *ledgerRepository) WalletByAddress(ctx context.Context, address string) (*model.Wallet, error) {
	return scanWallet(r.storage.pool.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE address=$1`, address))
}

func (r *ledgerRepository) Credit(ctx context.Context, address string, amount decimal.Decimal) (*model.Wallet, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	const query = `UPDATE wallets SET balance = balance + $2::numeric WHERE address=$1 RETURNING ` + walletColumns
	return scanWallet(r.storage.pool.QueryRow(ctx, query, address, amount.String()))
}

func (r *ledgerRepository) Debit(ctx context.Context, address string, amount decimal.Decimal, counterparty string) (*model.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	var result *model.Transaction
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		w, err := scanWallet(tx.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE address=$1 FOR UPDATE`, address))
		if err != nil {
			return err
		}
		result, err = r.storage.debitTx(ctx, tx, w, amount, counterparty, r.storage.clock())
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ledgerRepository) Upgrade(ctx context.Context, userID string, amount decimal.Decimal, counterparty string) (*model.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	var result *model.Transaction
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx, selectUser+` FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		if u.Pro {
			return domainErrors.ErrAlreadyPro
		}
		w, err := scanWallet(tx.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE user_id=$1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		now := r.storage.clock()
		if result, err = r.storage.debitTx(ctx, tx, w, amount, counterparty, now); err != nil {
			return err
		}
		return grantPro(ctx, tx, userID, now)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// debitTx expects the wallet row to be locked by the caller.
func (s *Storage) debitTx(ctx context.Context, tx pgx.Tx, w *model.Wallet, amount decimal.Decimal, counterparty string, at time.Time) (*model.Transaction, error) {
	if w.Balance.LessThan(amount) {
		return nil, domainErrors.ErrInsufficientBalance
	}
	if counterparty == "" {
		counterparty = model.TreasuryAddress
	}

	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = balance - $2::numeric WHERE address=$1`, w.Address, amount.String()); err != nil {
		return nil, err
	}

	record := model.Transaction{
		Hash:      chainsim.TransactionHash(w.Address, amount, at),
		From:      w.Address,
		To:        counterparty,
		Amount:    amount,
		Currency:  w.Currency,
		Timestamp: at,
		Status:    model.TransactionStatusConfirmed,
	}
	const insertTx = `INSERT INTO transactions (hash, user_id, from_address, to_address, amount, currency, status, created_at)
                      VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)`
	if _, err := tx.Exec(ctx, insertTx, record.Hash, w.UserID, record.From, record.To, amount.String(), record.Currency, string(record.Status), at); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ledgerRepository) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	const query = `SELECT hash, from_address, to_address, amount::text, currency, status, created_at
                   FROM transactions WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var (
			t      model.Transaction
			amount string
			status string
		)
		if err := rows.Scan(&t.Hash, &t.From, &t.To, &amount, &t.Currency, &status, &t.Timestamp); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		t.Status = model.TransactionStatus(status)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
