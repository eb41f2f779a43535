package authcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"profitdesk/internal/infrastructure/authproxy"
	"profitdesk/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const keyPrefix = "auth:token:"

// Cache keeps recently verified bearer tokens in redis so the auth service
// is not hit on every request. Tokens are stored hashed; the raw token never
// reaches redis. The cache is best effort: redis failures are logged and
// treated as a miss.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, token string) (authproxy.User, bool) {
	raw, err := c.rdb.Get(ctx, tokenKey(token)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger(ctx).Warn("auth cache get failed", "error", err)
		}

		return authproxy.User{}, false
	}

	var user authproxy.User
	if err = json.Unmarshal(raw, &user); err != nil {
		logger(ctx).Warn("auth cache holds malformed entry", "error", err)

		return authproxy.User{}, false
	}

	return user, true
}

func (c *Cache) Set(ctx context.Context, token string, user authproxy.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		logger(ctx).Warn("auth cache marshal failed", "error", err)

		return
	}

	if err = c.rdb.Set(ctx, tokenKey(token), raw, c.ttl).Err(); err != nil {
		logger(ctx).Warn("auth cache set failed", "error", err)
	}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))

	return keyPrefix + hex.EncodeToString(sum[:])
}
