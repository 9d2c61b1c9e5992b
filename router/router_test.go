// file: router/router_test.go

package router_test

import (
	"encoding/json"
	"go-ledger-api/handler"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"go-ledger-api/router"
	"go-ledger-api/service"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (http.Handler, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	store.Seed(
		model.Account{ID: "1", Balance: decimal.NewFromInt(1000)},
		model.Account{ID: "2", Balance: decimal.NewFromInt(500)},
	)

	r := router.NewRouter(
		handler.NewLedgerHandler(service.NewLedgerService(store, nil, true), "₹"),
		handler.NewAccountHandler(service.NewAccountService(store.Accounts(), nil, time.Minute)),
		handler.NewTransactionHandler(service.NewTransactionService(store.Accounts(), store.Transactions())),
		[]string{"http://localhost:3000"},
	)
	return r, store
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndRoot(t *testing.T) {
	// Handlers may be nil for routes that do not touch them.
	r := router.NewRouter(nil, nil, nil, nil)

	rr := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"API is healthy and running"}`, rr.Body.String())

	rr = do(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Backend is running!", rr.Body.String())

	rr = do(r, http.MethodGet, "/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/add-money", `{"accountId":"1","amount":1}`)

	rr := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ledger_http_requests_total")
	assert.Contains(t, rr.Body.String(), `ledger_operations_total{outcome="success",type="deposit"}`)
}

func TestLedgerFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := do(r, http.MethodPost, "/add-money", `{"accountId":"1","amount":500}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Content-Type"))

	rr = do(r, http.MethodPost, "/withdraw-money", `{"accountId":"1","amount":1500}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(r, http.MethodPost, "/withdraw-money", `{"accountId":"1","amount":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"success":false,"code":400,"message":"Insufficient funds"}`, rr.Body.String())

	rr = do(r, http.MethodGet, "/accounts/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var acc model.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &acc))
	assert.True(t, acc.Balance.IsZero())

	rr = do(r, http.MethodGet, "/transactions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var txs []model.Transaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &txs))
	require.Len(t, txs, 2)
	assert.Equal(t, model.TransactionWithdraw, txs[0].Type)
	assert.Equal(t, model.TransactionDeposit, txs[1].Type)

	rr = do(r, http.MethodGet, "/accounts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var accounts []model.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &accounts))
	assert.Len(t, accounts, 2)
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := do(r, http.MethodGet, "/add-money", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name        string
		origin      string
		allowOrigin string
	}{
		{name: "allowed origin", origin: "http://localhost:3000", allowOrigin: "http://localhost:3000"},
		{name: "disallowed origin", origin: "http://evil.example", allowOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/add-money", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			// Browsers send the requested header names lowercased.
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.allowOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestConcurrentDepositsOverHTTP(t *testing.T) {
	r, store := newTestRouter(t)
	const n = 40

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rr := do(r, http.MethodPost, "/add-money", `{"accountId":"2","amount":100}`)
			assert.Equal(t, http.StatusOK, rr.Code)
		}()
	}
	wg.Wait()

	acc, err := store.Accounts().GetAccount(t.Context(), "2")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(500+100*n)))
}
