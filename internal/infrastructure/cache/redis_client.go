package cache

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis creates the Redis client used for scratch storage.
//
// Supported env vars (local-friendly):
//   - REDIS_ADDR (default: localhost:6379)
//   - REDIS_PASSWORD (default: empty)
//   - REDIS_DB (default: 0)
//
// A failed ping is logged but not fatal: scratch storage is best effort and
// the engine degrades to template-only drafts without it.
func ConnectRedis() *redis.Client {
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			db = parsed
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[cache][redis] ping failed, scratch storage degraded err=%v", err)
	}

	return client
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
