package router

import (
	_ "go-ledger-api/docs"
	"go-ledger-api/handler"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(ledgerHandler *handler.LedgerHandler, accountHandler *handler.AccountHandler, transactionHandler *handler.TransactionHandler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /metrics", handler.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /add-money", handler.ErrorHandlingMiddleware(ledgerHandler.AddMoney))
	mux.Handle("POST /withdraw-money", handler.ErrorHandlingMiddleware(ledgerHandler.WithdrawMoney))

	mux.Handle("GET /accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccounts))
	mux.Handle("GET /accounts/{accountId}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))

	mux.Handle("GET /transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactions))

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	var h http.Handler = handler.MetricsMiddleware(mux)
	h = handler.Recoverer(h)
	h = handler.RequestLogger(h)
	h = chimw.RequestID(h)
	return c.Handler(h)
}
