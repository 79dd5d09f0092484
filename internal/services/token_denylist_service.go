package services

import (
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

// AddToDenylist revokes tokenString until it would have expired anyway.
// Without redis revocation is a no-op.
func AddToDenylist(tokenString string, expiration time.Duration) error {
	if database.RedisClient == nil || expiration <= 0 {
		return nil
	}
	key := denylistPrefix + tokenString
	return database.RedisClient.Set(database.Ctx, key, 1, expiration).Err()
}

func IsDenylisted(tokenString string) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	key := denylistPrefix + tokenString
	val, err := database.RedisClient.Get(database.Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
