// File: app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"go-ledger-api/config"
	"go-ledger-api/db"
	"go-ledger-api/handler"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"go-ledger-api/router"
	"go-ledger-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// App is a fully wired application.
type App struct {
	Router  http.Handler
	Store   repository.Store
	closers []func() error
}

// NewWithStore wires repositories, services and handlers around an existing
// store. cache may be nil.
func NewWithStore(cfg config.Config, store repository.Store, cache service.ICacheClient) *App {
	ledgerService := service.NewLedgerService(store, cache, cfg.Ledger.AutoCreate)
	accountService := service.NewAccountService(store.Accounts(), cache, cfg.Redis.TTL)
	transactionService := service.NewTransactionService(store.Accounts(), store.Transactions())

	r := router.NewRouter(
		handler.NewLedgerHandler(ledgerService, cfg.Ledger.CurrencySymbol),
		handler.NewAccountHandler(accountService),
		handler.NewTransactionHandler(transactionService),
		cfg.Server.AllowedOrigins,
	)

	return &App{Router: r, Store: store}
}

// New connects to the configured backends and wires the application.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	var (
		store   repository.Store
		closers []func() error
	)

	switch cfg.Storage.Driver {
	case "memory":
		mem := repository.NewMemoryStore()
		seeds, err := seedAccounts(cfg.Ledger.SeedAccounts)
		if err != nil {
			return nil, err
		}
		mem.Seed(seeds...)
		store = mem
		logger.Log.WithField("seeded_accounts", len(seeds)).Info("Using in-memory store")
	case "postgres":
		database, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		closers = append(closers, database.Close)
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(database); err != nil {
				database.Close()
				return nil, err
			}
		}
		store = repository.NewPostgresStore(database)
		logger.Log.Info("Using PostgreSQL store")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	var cache service.ICacheClient
	if cfg.Redis.Enabled {
		rdb, err := db.ConnectRedis(ctx, cfg)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, err
		}
		closers = append(closers, rdb.Close)
		cache = rdb
	}

	a := NewWithStore(cfg, store, cache)
	a.closers = closers
	return a, nil
}

// Close releases database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func seedAccounts(seeds []config.SeedAccount) ([]model.Account, error) {
	accounts := make([]model.Account, 0, len(seeds))
	for _, s := range seeds {
		balance, err := decimal.NewFromString(s.Balance)
		if err != nil {
			return nil, fmt.Errorf("seed account %q: invalid balance %q: %w", s.ID, s.Balance, err)
		}
		if s.ID == "" || balance.IsNegative() {
			return nil, fmt.Errorf("seed account %q: id must be set and balance must not be negative", s.ID)
		}
		accounts = append(accounts, model.Account{ID: model.AccountID(s.ID), Balance: balance})
	}
	return accounts, nil
}

func Run() {
	logger.Init()
	config.LoadConfig(".")
	cfg := config.AppConfig
	if err := logger.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
		logger.Log.WithError(err).Warn("Invalid log configuration, keeping defaults")
	}
	logger.Log.WithFields(logrus.Fields{
		"storage":     cfg.Storage.Driver,
		"auto_create": cfg.Ledger.AutoCreate,
		"redis":       cfg.Redis.Enabled,
	}).Info("Configuration loaded successfully")

	a, err := New(context.Background(), cfg)
	if err != nil {
		logger.Log.Fatalf("Error initializing application: %v", err)
	}
	defer a.Close()

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      a.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Log.Info("Server exited properly")
}
