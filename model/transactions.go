package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of balance mutation a Transaction records.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "deposit"
	TransactionWithdraw TransactionType = "withdraw"
)

// Transaction is an immutable entry in the append-only transaction log.
type Transaction struct {
	ID        int64           `json:"transaction_id"`
	AccountID AccountID       `json:"account_id"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Receipt is the outcome of a successful deposit or withdrawal.
type Receipt struct {
	Account     *Account
	Transaction *Transaction
}
