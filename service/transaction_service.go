package service

import (
	"context"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"

	"github.com/sirupsen/logrus"
)

const (
	DefaultTransactionLimit = 100
	MaxTransactionLimit     = 1000
)

type TransactionService struct {
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
}

func NewTransactionService(accountRepo repository.IAccountRepository, transactionRepo repository.ITransactionRepository) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// ListTransactions returns the transaction log newest first. A zero limit
// means DefaultTransactionLimit. When accountID is set the account must exist.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID model.AccountID, limit int) ([]*model.Transaction, error) {
	if limit < 0 || limit > MaxTransactionLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxTransactionLimit)
	}
	if limit == 0 {
		limit = DefaultTransactionLimit
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"limit":      limit,
	})

	if accountID != "" {
		if _, err := s.accountRepo.GetAccount(ctx, accountID); err != nil {
			log.WithError(err).Info("Transaction history requested for unknown account")
			return nil, err
		}
	}

	return s.transactionRepo.ListTransactions(ctx, repository.TransactionFilter{
		AccountID: accountID,
		Limit:     limit,
	})
}
