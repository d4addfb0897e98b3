package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all process-wide settings. It is built once in main and
// passed to the components that need it.
type Config struct {
	Addr      string
	MongoURI  string
	MongoDB   string
	RedisAddr string
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Load reads configuration from the environment. JWT_SECRET is the only
// required variable; everything else has a development default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	addr := os.Getenv("PORT")
	if addr == "" {
		addr = ":8080"
	} else if addr[0] != ':' {
		addr = ":" + addr
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDB := os.Getenv("MONGODB_DB")
	if mongoDB == "" {
		mongoDB = "storedb"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	return &Config{
		Addr:      addr,
		MongoURI:  mongoURI,
		MongoDB:   mongoDB,
		RedisAddr: redisAddr,
		JWTSecret: []byte(secret),
		TokenTTL:  7 * 24 * time.Hour,
	}, nil
}
