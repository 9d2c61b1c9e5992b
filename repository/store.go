// file: repository/store.go

package repository

import (
	"context"
	"database/sql"
	"errors"
	"go-ledger-api/model"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// IAccountRepository defines the contract for account balance storage.
type IAccountRepository interface {
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	// AdjustBalance applies balance += delta. A negative delta is rejected with
	// ErrInsufficientFunds when it would take the balance below zero. With
	// autoCreate, a positive delta on a missing account creates it at zero first.
	AdjustBalance(ctx context.Context, id model.AccountID, delta decimal.Decimal, autoCreate bool) (*model.Account, error)
}

// TransactionFilter narrows ListTransactions. Zero values mean no filter.
type TransactionFilter struct {
	AccountID model.AccountID
	Limit     int
}

// ITransactionRepository defines the contract for the append-only transaction log.
type ITransactionRepository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*model.Transaction, error)
}

// Store groups the repositories of one backend. ExecTx runs fn against a
// transactional view; every write made through it commits or none does.
type Store interface {
	Accounts() IAccountRepository
	Transactions() ITransactionRepository
	ExecTx(ctx context.Context, fn func(Store) error) error
}
