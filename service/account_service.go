// file: service/account_service.go

package service

import (
	"context"
	"encoding/json"
	"errors"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"time"

	"github.com/redis/go-redis/v9"
)

// AccountService serves account reads, caching the full listing when a cache
// client is configured.
type AccountService struct {
	repo     repository.IAccountRepository
	cache    ICacheClient
	cacheTTL time.Duration
}

func NewAccountService(repo repository.IAccountRepository, cache ICacheClient, cacheTTL time.Duration) *AccountService {
	return &AccountService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetAccount always reads through to the store.
func (s *AccountService) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetAccount(ctx, id)
}

// ListAccounts lists all accounts using a cache-aside strategy.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	if s.cache == nil {
		return s.repo.ListAccounts(ctx)
	}

	// The version must be read before the store.
	version, err := s.cache.Get(ctx, accountsVersionKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		version = "0"
	case err != nil:
		logger.Log.WithError(err).Warn("Failed to read accounts cache version")
		return s.repo.ListAccounts(ctx)
	}
	key := accountsCacheKey(version)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var accounts []*model.Account
		if err := json.Unmarshal([]byte(cached), &accounts); err == nil {
			return accounts, nil
		}
	}

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(accounts)
	if err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
			logger.Log.WithError(err).Warn("Failed to cache accounts")
		}
	}

	return accounts, nil
}
