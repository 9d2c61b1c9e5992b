package handler

import (
	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"net/http"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// ListAccounts godoc
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Success      200  {array}   model.Account
// @Failure      500  {object}  common.AppError
// @Router       /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	logger.Log.Debug("List accounts request received")

	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve accounts", err)
	}

	common.WriteJSON(w, http.StatusOK, accounts)
	return nil
}

// GetAccount godoc
// @Summary      Get one account
// @Tags         accounts
// @Produce      json
// @Param        accountId path string true "Account identifier"
// @Success      200  {object}  model.Account
// @Failure      404  {object}  common.AppError
// @Failure      500  {object}  common.AppError
// @Router       /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID := model.AccountID(r.PathValue("accountId"))

	account, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		return mapServiceError(err, "Could not retrieve account")
	}

	common.WriteJSON(w, http.StatusOK, account)
	return nil
}
