package repository

import (
	"context"
	"database/sql"
	"fmt"
	"go-ledger-api/logger"
)

// PostgresStore is the relational Store backend.
type PostgresStore struct {
	db  *sql.DB
	dbx DBTX
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, dbx: db}
}

func (s *PostgresStore) Accounts() IAccountRepository {
	return NewAccountRepository(s.dbx)
}

func (s *PostgresStore) Transactions() ITransactionRepository {
	return NewTransactionRepository(s.dbx)
}

// ExecTx runs fn inside a database transaction, committing when fn succeeds.
func (s *PostgresStore) ExecTx(ctx context.Context, fn func(Store) error) error {
	if s.db == nil {
		return fmt.Errorf("store is already in a transaction")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(&PostgresStore{dbx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.WithError(rbErr).Error("Failed to roll back transaction")
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
