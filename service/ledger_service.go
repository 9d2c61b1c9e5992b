package service

import (
	"context"
	"errors"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxAccountIDLength = 64

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAccountNotFound   = repository.ErrAccountNotFound
	ErrInsufficientFunds = repository.ErrInsufficientFunds
	ErrStorageFailure    = errors.New("storage failure")
)

// LedgerService applies deposits and withdrawals. Each successful call
// changes one balance and appends exactly one transaction, atomically.
type LedgerService struct {
	store      repository.Store
	cache      ICacheClient
	autoCreate bool
}

// NewLedgerService creates a LedgerService. With autoCreate, a deposit to an
// unknown account opens it with a zero balance first; otherwise it fails with
// ErrAccountNotFound. cache may be nil.
func NewLedgerService(store repository.Store, cache ICacheClient, autoCreate bool) *LedgerService {
	return &LedgerService{
		store:      store,
		cache:      cache,
		autoCreate: autoCreate,
	}
}

func (s *LedgerService) Deposit(ctx context.Context, accountID model.AccountID, amount decimal.Decimal) (*model.Receipt, error) {
	return s.apply(ctx, accountID, amount, model.TransactionDeposit)
}

// Withdraw never creates accounts and never takes a balance below zero.
func (s *LedgerService) Withdraw(ctx context.Context, accountID model.AccountID, amount decimal.Decimal) (*model.Receipt, error) {
	return s.apply(ctx, accountID, amount, model.TransactionWithdraw)
}

func validateMutation(accountID model.AccountID, amount decimal.Decimal) error {
	if accountID == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidInput)
	}
	if len(accountID) > maxAccountIDLength {
		return fmt.Errorf("%w: account id is longer than %d characters", ErrInvalidInput, maxAccountIDLength)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}
	return nil
}

func (s *LedgerService) apply(ctx context.Context, accountID model.AccountID, amount decimal.Decimal, kind model.TransactionType) (*model.Receipt, error) {
	if err := validateMutation(accountID, amount); err != nil {
		ledgerOperations.WithLabelValues(string(kind), outcomeLabel(err)).Inc()
		return nil, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"type":       kind,
		"amount":     amount.String(),
	})
	log.Info("Starting ledger operation")

	delta, autoCreate := amount, s.autoCreate
	if kind == model.TransactionWithdraw {
		delta, autoCreate = amount.Neg(), false
	}

	var receipt model.Receipt
	err := s.store.ExecTx(ctx, func(tx repository.Store) error {
		account, err := tx.Accounts().AdjustBalance(ctx, accountID, delta, autoCreate)
		if err != nil {
			return err
		}

		transaction := &model.Transaction{
			AccountID: accountID,
			Type:      kind,
			Amount:    amount,
		}
		if err := tx.Transactions().CreateTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("could not create transaction record: %w", err)
		}

		receipt = model.Receipt{Account: account, Transaction: transaction}
		return nil
	})
	ledgerOperations.WithLabelValues(string(kind), outcomeLabel(err)).Inc()

	if err != nil {
		if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrInsufficientFunds) {
			log.WithError(err).Warn("Ledger operation rejected")
			return nil, err
		}
		log.WithError(err).Error("Ledger operation failed")
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	s.invalidateAccounts(ctx)

	log.WithFields(logrus.Fields{
		"transaction_id": receipt.Transaction.ID,
		"new_balance":    receipt.Account.Balance.String(),
	}).Info("Ledger operation completed successfully")
	return &receipt, nil
}

func (s *LedgerService) invalidateAccounts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, accountsVersionKey).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate accounts cache")
	}
}
