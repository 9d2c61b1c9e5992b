package handler

import (
	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
	"strconv"
	"strings"
)

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	service *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// ListTransactions godoc
// @Summary      List transaction history
// @Description  Returns transactions newest first, optionally for a single account.
// @Tags         transactions
// @Produce      json
// @Param        account_id query string false "Only transactions of this account"
// @Param        limit      query int    false "Maximum number of transactions (default 100, max 1000)"
// @Success      200  {array}   model.Transaction
// @Failure      400  {object}  common.AppError "Invalid limit"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error while retrieving transactions"
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	q := r.URL.Query()
	accountID := model.AccountID(strings.TrimSpace(q.Get("account_id")))

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid limit", err)
		}
		limit = n
	}

	transactions, err := h.service.ListTransactions(r.Context(), accountID, limit)
	if err != nil {
		return mapServiceError(err, "Could not retrieve transactions")
	}

	common.WriteJSON(w, http.StatusOK, transactions)
	return nil
}
