// file: repository/memory_store.go

package repository

import (
	"context"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// MemoryStore keeps accounts and the transaction log in process memory.
// All reads and writes are serialized on a single mutex; ExecTx holds it for
// the whole unit and replays an undo log when fn fails.
type MemoryStore struct {
	mu           sync.Mutex
	accounts     map[model.AccountID]*model.Account
	transactions []*model.Transaction
	nextTxID     int64
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[model.AccountID]*model.Account),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Seed inserts or replaces accounts, for local development and tests.
func (s *MemoryStore) Seed(accounts ...model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, a := range accounts {
		acc := a
		if acc.CreatedAt.IsZero() {
			acc.CreatedAt = now
		}
		if acc.UpdatedAt.IsZero() {
			acc.UpdatedAt = acc.CreatedAt
		}
		s.accounts[acc.ID] = &acc
	}
}

func (s *MemoryStore) Accounts() IAccountRepository {
	return &memoryAccounts{s: s}
}

func (s *MemoryStore) Transactions() ITransactionRepository {
	return &memoryTransactions{s: s}
}

func (s *MemoryStore) ExecTx(ctx context.Context, fn func(Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{s: s}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// memoryTx is the Store view handed to ExecTx callbacks. The store mutex is
// already held while it is in use.
type memoryTx struct {
	s    *MemoryStore
	undo []func()
}

func (tx *memoryTx) Accounts() IAccountRepository {
	return &memoryAccounts{s: tx.s, tx: tx}
}

func (tx *memoryTx) Transactions() ITransactionRepository {
	return &memoryTransactions{s: tx.s, tx: tx}
}

func (tx *memoryTx) ExecTx(context.Context, func(Store) error) error {
	return fmt.Errorf("store is already in a transaction")
}

func (tx *memoryTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
	logger.Log.Warn("Rolled back in-memory transaction")
}

func (tx *memoryTx) onRollback(f func()) {
	tx.undo = append(tx.undo, f)
}

type memoryAccounts struct {
	s  *MemoryStore
	tx *memoryTx
}

func (r *memoryAccounts) lock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memoryAccounts) GetAccount(_ context.Context, id model.AccountID) (*model.Account, error) {
	defer r.lock()()

	acc, ok := r.s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	cp := *acc
	return &cp, nil
}

func (r *memoryAccounts) ListAccounts(context.Context) ([]*model.Account, error) {
	defer r.lock()()

	out := make([]*model.Account, 0, len(r.s.accounts))
	for _, acc := range r.s.accounts {
		cp := *acc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryAccounts) AdjustBalance(_ context.Context, id model.AccountID, delta decimal.Decimal, autoCreate bool) (*model.Account, error) {
	defer r.lock()()

	log := logger.Log.WithFields(logrus.Fields{
		"account_id": id,
		"delta":      delta.String(),
	})

	now := r.s.now()
	acc, ok := r.s.accounts[id]
	if !ok {
		if !autoCreate || !delta.IsPositive() {
			return nil, ErrAccountNotFound
		}
		acc = &model.Account{ID: id, Balance: decimal.Zero, CreatedAt: now, UpdatedAt: now}
		r.s.accounts[id] = acc
		log.Info("Account created on first deposit")
		if r.tx != nil {
			r.tx.onRollback(func() { delete(r.s.accounts, id) })
		}
	}

	next := acc.Balance.Add(delta)
	if next.IsNegative() {
		return nil, ErrInsufficientFunds
	}

	prev, prevUpdated := acc.Balance, acc.UpdatedAt
	acc.Balance = next
	acc.UpdatedAt = now
	if r.tx != nil {
		r.tx.onRollback(func() {
			acc.Balance = prev
			acc.UpdatedAt = prevUpdated
		})
	}

	cp := *acc
	return &cp, nil
}

type memoryTransactions struct {
	s  *MemoryStore
	tx *memoryTx
}

func (r *memoryTransactions) lock() func() {
	if r.tx != nil {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *memoryTransactions) CreateTransaction(_ context.Context, transaction *model.Transaction) error {
	defer r.lock()()

	r.s.nextTxID++
	transaction.ID = r.s.nextTxID
	transaction.CreatedAt = r.s.now()

	cp := *transaction
	r.s.transactions = append(r.s.transactions, &cp)
	if r.tx != nil {
		n := len(r.s.transactions) - 1
		r.tx.onRollback(func() {
			r.s.transactions = r.s.transactions[:n]
			r.s.nextTxID--
		})
	}
	return nil
}

// ListTransactions returns the log newest first. Entries are appended in ID
// order, so walking the slice backwards yields the display order.
func (r *memoryTransactions) ListTransactions(_ context.Context, filter TransactionFilter) ([]*model.Transaction, error) {
	defer r.lock()()

	out := []*model.Transaction{}
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		t := r.s.transactions[i]
		if filter.AccountID != "" && t.AccountID != filter.AccountID {
			continue
		}
		cp := *t
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
