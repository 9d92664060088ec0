package config

// Redis backs the rate limiter on the authentication endpoints.  It is an
// optional dependency: when no server can be reached NewRedisClient returns
// nil and the limiter runs as a no-op, so a missing Redis never keeps the
// API from starting.

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and verifies the connection with a short
// ping.  REDIS_URL (a redis:// or rediss:// URL) takes precedence; otherwise
// the address is assembled from REDIS_HOST, REDIS_PORT, REDIS_PASSWORD and
// REDIS_DB, defaulting to localhost:6379.  Returns nil if the server does
// not answer.
func NewRedisClient() *redis.Client {
	var opts *redis.Options
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		parsed, err := redis.ParseURL(raw)
		if err != nil {
			log.Printf("config: invalid REDIS_URL: %v", err)
			return nil
		}
		opts = parsed
	} else {
		addr := "localhost:6379"
		if host := os.Getenv("REDIS_HOST"); host != "" {
			port := os.Getenv("REDIS_PORT")
			if port == "" {
				port = "6379"
			}
			addr = host + ":" + port
		}
		db := 0
		if s := os.Getenv("REDIS_DB"); s != "" {
			if n, err := strconv.Atoi(s); err == nil {
				db = n
			}
		}
		opts = &redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       db,
		}
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
