package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

const userCacheTTL = time.Hour

func userCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func FindUserByID(userID uint) (models.User, error) {
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, userCacheTTL)
		}
	}

	return user, nil
}
