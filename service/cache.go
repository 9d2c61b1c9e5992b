// file: service/cache.go

package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICacheClient defines the contract for a cache client. *redis.Client
// satisfies it; a nil ICacheClient disables caching.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Account listings are cached under a key that embeds the current version.
// Writers bump the version, so a listing read before a commit can only be
// stored under a version no later reader asks for.
const (
	accountsVersionKey     = "accounts:version"
	accountsCacheKeyPrefix = "accounts:all:"
)

func accountsCacheKey(version string) string {
	return accountsCacheKeyPrefix + version
}
