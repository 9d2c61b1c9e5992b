// file: model/request.go

package model

import "github.com/shopspring/decimal"

// MoneyRequest is the payload of both add-money and withdraw-money.
// Amount accepts a JSON number or a numeric string; it is invalid when
// absent or null.
type MoneyRequest struct {
	AccountID AccountID           `json:"accountId" validate:"required,max=64"`
	Amount    decimal.NullDecimal `json:"amount" validate:"required,gt=0"`
}

// MoneyResponse is returned by add-money and withdraw-money on success.
type MoneyResponse struct {
	Success     bool            `json:"success"`
	Message     string          `json:"message"`
	AccountID   AccountID       `json:"accountId"`
	Balance     decimal.Decimal `json:"balance"`
	Transaction *Transaction    `json:"transaction,omitempty"`
}
