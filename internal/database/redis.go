package database

import (
	"context"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/go-redis/redis/v8"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects to redis when REDIS_HOST is set. Without it
// RedisClient stays nil and callers skip caching and token revocation.
func ConnectRedis(cfg *config.Config) error {
	if !cfg.RedisEnabled() {
		RedisClient = nil
		return nil
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	_, err := RedisClient.Ping(Ctx).Result()
	return err
}
