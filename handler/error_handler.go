package handler

import (
	"errors"
	"go-ledger-api/common"
	"go-ledger-api/service"
	"net/http"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// mapServiceError translates service errors into HTTP errors. fallback is the
// client-facing message for storage failures; the cause is only logged.
func mapServiceError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrAccountNotFound):
		return common.NewAppError(http.StatusNotFound, "Account not found", err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(http.StatusBadRequest, "Insufficient funds", err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
