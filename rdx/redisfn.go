package rdx

import (
	"storefront/config"
	"storefront/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Connect creates the Redis client. The cache is best-effort: callers log
// and continue when a helper returns an error.
func Connect(cfg *config.Config) {
	Conn = redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}
