package repository

import (
	"context"
	"database/sql"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AccountRepository implements IAccountRepository on PostgreSQL.
type AccountRepository struct {
	DB DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{DB: db}
}

const accountColumns = `account_id, balance, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*model.Account, error) {
	var acc model.Account
	if err := row.Scan(&acc.ID, &acc.Balance, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetAccount retrieves a single account by its identifier.
func (r *AccountRepository) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	log := logger.Log.WithField("account_id", id)
	log.Debug("Executing query to get account")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	acc, err := scanAccount(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		log.WithError(err).Error("Failed to execute get account query")
		return nil, err
	}
	return acc, nil
}

// ListAccounts retrieves all accounts ordered by identifier.
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log
	log.Debug("Executing query to list accounts")

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for accounts")
		return nil, err
	}
	defer rows.Close()

	accounts := []*model.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// AdjustBalance applies a signed delta in a single statement so the
// sufficiency check and the write cannot interleave with another adjustment.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id model.AccountID, delta decimal.Decimal, autoCreate bool) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  id,
		"delta":       delta.String(),
		"auto_create": autoCreate,
	})
	log.Info("Executing query to adjust account balance")

	var query string
	switch {
	case delta.IsPositive() && autoCreate:
		query = `INSERT INTO accounts (account_id, balance) VALUES ($1, $2)
			ON CONFLICT (account_id) DO UPDATE
			SET balance = accounts.balance + EXCLUDED.balance, updated_at = NOW()
			RETURNING ` + accountColumns
	case delta.IsNegative():
		query = `UPDATE accounts SET balance = balance + $2, updated_at = NOW()
			WHERE account_id = $1 AND balance + $2 >= 0
			RETURNING ` + accountColumns
	default:
		query = `UPDATE accounts SET balance = balance + $2, updated_at = NOW()
			WHERE account_id = $1
			RETURNING ` + accountColumns
	}

	acc, err := scanAccount(r.DB.QueryRowContext(ctx, query, id, delta))
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.WithError(err).Error("Failed to execute adjust balance query")
		return nil, err
	}
	if !delta.IsNegative() {
		return nil, ErrAccountNotFound
	}

	// The conditional update matched nothing: either the account is missing or
	// the balance is too low.
	exists, err := r.exists(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to check account existence")
		return nil, err
	}
	if !exists {
		return nil, ErrAccountNotFound
	}
	log.Warn("Rejected adjustment: insufficient funds")
	return nil, ErrInsufficientFunds
}

func (r *AccountRepository) exists(ctx context.Context, id model.AccountID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_id = $1)`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
