package handler

import (
	"fmt"
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"

	"github.com/sirupsen/logrus"
)

// LedgerHandler holds dependencies for the money movement handlers.
type LedgerHandler struct {
	service        *service.LedgerService
	currencySymbol string
}

func NewLedgerHandler(s *service.LedgerService, currencySymbol string) *LedgerHandler {
	return &LedgerHandler{service: s, currencySymbol: currencySymbol}
}

// AddMoney godoc
// @Summary      Deposit money into an account
// @Description  Adds a positive amount to the account balance and records a deposit transaction. Unknown accounts are created when auto-create is enabled.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        deposit body model.MoneyRequest true "Account and amount"
// @Success      200  {object}  model.MoneyResponse
// @Failure      400  {object}  common.AppError "Missing or malformed fields"
// @Failure      404  {object}  common.AppError "Account not found (auto-create disabled)"
// @Failure      500  {object}  common.AppError "Storage failure"
// @Router       /add-money [post]
func (h *LedgerHandler) AddMoney(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.MoneyRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id": req.AccountID,
		"amount":     req.Amount.Decimal.String(),
	}).Info("Add money request received")

	receipt, err := h.service.Deposit(r.Context(), req.AccountID, req.Amount.Decimal)
	if err != nil {
		return mapServiceError(err, "Could not add money")
	}

	msg := fmt.Sprintf("Added %s%s to account %s. New balance: %s%s",
		h.currencySymbol, req.Amount.Decimal, req.AccountID, h.currencySymbol, receipt.Account.Balance)
	h.respond(w, msg, receipt)
	return nil
}

// WithdrawMoney godoc
// @Summary      Withdraw money from an account
// @Description  Subtracts a positive amount from the account balance when funds suffice and records a withdraw transaction.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        withdrawal body model.MoneyRequest true "Account and amount"
// @Success      200  {object}  model.MoneyResponse
// @Failure      400  {object}  common.AppError "Missing fields or insufficient funds"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Storage failure"
// @Router       /withdraw-money [post]
func (h *LedgerHandler) WithdrawMoney(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.MoneyRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"account_id": req.AccountID,
		"amount":     req.Amount.Decimal.String(),
	}).Info("Withdraw money request received")

	receipt, err := h.service.Withdraw(r.Context(), req.AccountID, req.Amount.Decimal)
	if err != nil {
		return mapServiceError(err, "Could not withdraw money")
	}

	msg := fmt.Sprintf("Withdrew %s%s from account %s. New balance: %s%s",
		h.currencySymbol, req.Amount.Decimal, req.AccountID, h.currencySymbol, receipt.Account.Balance)
	h.respond(w, msg, receipt)
	return nil
}

func (h *LedgerHandler) respond(w http.ResponseWriter, msg string, receipt *model.Receipt) {
	common.WriteJSON(w, http.StatusOK, model.MoneyResponse{
		Success:     true,
		Message:     msg,
		AccountID:   receipt.Account.ID,
		Balance:     receipt.Account.Balance,
		Transaction: receipt.Transaction,
	})
}
