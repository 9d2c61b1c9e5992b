package repository

import (
	"context"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/sirupsen/logrus"
)

// TransactionRepository implements ITransactionRepository on PostgreSQL.
type TransactionRepository struct {
	DB DBTX
}

func NewTransactionRepository(db DBTX) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": transaction.AccountID,
		"type":       transaction.Type,
		"amount":     transaction.Amount.String(),
	})
	log.Info("Executing query to create a new transaction")

	query := `INSERT INTO transactions (account_id, type, amount) VALUES ($1, $2, $3) RETURNING transaction_id, created_at`
	err := r.DB.QueryRowContext(ctx, query, transaction.AccountID, transaction.Type, transaction.Amount).
		Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transaction query")
		return err
	}
	return nil
}

// ListTransactions retrieves transactions newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*model.Transaction, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": filter.AccountID,
		"limit":      filter.Limit,
	})
	log.Debug("Executing query to list transactions")

	query := `SELECT transaction_id, account_id, type, amount, created_at FROM transactions`
	var args []any
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" WHERE account_id = $%d", len(args))
	}
	query += ` ORDER BY created_at DESC, transaction_id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for transactions")
		return nil, err
	}
	defer rows.Close()

	transactions := []*model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}

	return transactions, rows.Err()
}
