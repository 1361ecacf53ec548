package utils

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codaisseur/eventup-backend/config"
)

// RedisClient is the shared client, nil when Redis is not configured.
var RedisClient *redis.Client

// InitRedis connects the shared Redis client. Redis is optional; when
// REDIS_ADDR is unset the rate limiter falls back to its in-memory store.
func InitRedis(cfg *config.Config) error {
	if cfg.RedisAddr == "" {
		log.Println("ℹ️ Redis not configured, skipping")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	RedisClient = client
	log.Println("✅ Connected to Redis:", cfg.RedisAddr)
	return nil
}
