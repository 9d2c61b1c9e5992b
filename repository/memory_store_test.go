package repository

import (
	"context"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	s.Seed(
		model.Account{ID: "1", Balance: decimal.NewFromInt(1000)},
		model.Account{ID: "2", Balance: decimal.NewFromInt(500)},
	)
	return s
}

func TestMemoryStore_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit to existing account", func(t *testing.T) {
		s := newSeededMemoryStore()
		acc, err := s.Accounts().AdjustBalance(ctx, "1", decimal.NewFromInt(500), false)
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("auto create on deposit", func(t *testing.T) {
		s := newSeededMemoryStore()
		acc, err := s.Accounts().AdjustBalance(ctx, "9", decimal.NewFromInt(25), true)
		require.NoError(t, err)
		assert.Equal(t, model.AccountID("9"), acc.ID)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(25)))
	})

	t.Run("missing account without auto create", func(t *testing.T) {
		s := newSeededMemoryStore()
		_, err := s.Accounts().AdjustBalance(ctx, "9", decimal.NewFromInt(25), false)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("withdrawal never auto creates", func(t *testing.T) {
		s := newSeededMemoryStore()
		_, err := s.Accounts().AdjustBalance(ctx, "9", decimal.NewFromInt(-1), true)
		assert.ErrorIs(t, err, ErrAccountNotFound)
		_, err = s.Accounts().GetAccount(ctx, "9")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("withdraw entire balance", func(t *testing.T) {
		s := newSeededMemoryStore()
		acc, err := s.Accounts().AdjustBalance(ctx, "2", decimal.NewFromInt(-500), false)
		require.NoError(t, err)
		assert.True(t, acc.Balance.IsZero())
	})

	t.Run("insufficient funds leaves balance", func(t *testing.T) {
		s := newSeededMemoryStore()
		_, err := s.Accounts().AdjustBalance(ctx, "2", decimal.NewFromInt(-501), false)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		acc, err := s.Accounts().GetAccount(ctx, "2")
		require.NoError(t, err)
		assert.True(t, acc.Balance.Equal(decimal.NewFromInt(500)))
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := newSeededMemoryStore()
	acc, err := s.Accounts().GetAccount(context.Background(), "1")
	require.NoError(t, err)

	acc.Balance = decimal.NewFromInt(-99)

	again, err := s.Accounts().GetAccount(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestMemoryStore_ExecTxRollback(t *testing.T) {
	ctx := context.Background()
	s := newSeededMemoryStore()
	boom := errors.New("log write failed")

	err := s.ExecTx(ctx, func(tx Store) error {
		if _, err := tx.Accounts().AdjustBalance(ctx, "1", decimal.NewFromInt(10), true); err != nil {
			return err
		}
		if _, err := tx.Accounts().AdjustBalance(ctx, "new", decimal.NewFromInt(5), true); err != nil {
			return err
		}
		if err := tx.Transactions().CreateTransaction(ctx, &model.Transaction{AccountID: "1", Type: model.TransactionDeposit, Amount: decimal.NewFromInt(10)}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, err := s.Accounts().GetAccount(ctx, "1")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(1000)))

	_, err = s.Accounts().GetAccount(ctx, "new")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	txs, err := s.Transactions().ListTransactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)

	// IDs keep counting from where the rolled back unit started.
	tr := &model.Transaction{AccountID: "1", Type: model.TransactionDeposit, Amount: decimal.NewFromInt(1)}
	require.NoError(t, s.Transactions().CreateTransaction(ctx, tr))
	assert.Equal(t, int64(1), tr.ID)
}

func TestMemoryStore_ExecTxCommit(t *testing.T) {
	ctx := context.Background()
	s := newSeededMemoryStore()

	err := s.ExecTx(ctx, func(tx Store) error {
		if _, err := tx.Accounts().AdjustBalance(ctx, "1", decimal.NewFromInt(-100), false); err != nil {
			return err
		}
		return tx.Transactions().CreateTransaction(ctx, &model.Transaction{AccountID: "1", Type: model.TransactionWithdraw, Amount: decimal.NewFromInt(100)})
	})
	require.NoError(t, err)

	acc, err := s.Accounts().GetAccount(ctx, "1")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(900)))

	assert.Error(t, s.ExecTx(ctx, func(tx Store) error {
		return tx.ExecTx(ctx, func(Store) error { return nil })
	}), "nested ExecTx must be rejected")
}

func TestMemoryStore_ListTransactions(t *testing.T) {
	ctx := context.Background()
	s := newSeededMemoryStore()

	for i, id := range []model.AccountID{"1", "2", "1", "1"} {
		require.NoError(t, s.Transactions().CreateTransaction(ctx, &model.Transaction{
			AccountID: id,
			Type:      model.TransactionDeposit,
			Amount:    decimal.NewFromInt(int64(i + 1)),
		}))
	}

	all, err := s.Transactions().ListTransactions(ctx, TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []int64{4, 3, 2, 1}, []int64{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	onlyOne, err := s.Transactions().ListTransactions(ctx, TransactionFilter{AccountID: "1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, onlyOne, 2)
	assert.Equal(t, int64(4), onlyOne[0].ID)
	assert.Equal(t, int64(3), onlyOne[1].ID)
}

func TestMemoryStore_ListAccountsSorted(t *testing.T) {
	s := newSeededMemoryStore()
	s.Seed(model.Account{ID: "0", Balance: decimal.Zero})

	accounts, err := s.Accounts().ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, model.AccountID("0"), accounts[0].ID)
	assert.Equal(t, model.AccountID("2"), accounts[2].ID)
}

func TestMemoryStore_ExecTxCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewMemoryStore().ExecTx(ctx, func(Store) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
