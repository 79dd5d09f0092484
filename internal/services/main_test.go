package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/internal/database"
	"github.com/Sandeep010-hub/promptcraft-fusion/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Prompt{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	SetRetryDelay(time.Millisecond)
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = nil
	})
	return mr
}

func seedPrompt(t *testing.T, p models.Prompt) models.Prompt {
	t.Helper()
	if p.GeneratedPrompt == "" {
		p.GeneratedPrompt = "generated"
	}
	if p.TargetModel == "" {
		p.TargetModel = models.TargetModelGemini
	}
	if err := database.DB.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed prompt: %v", err)
	}
	return p
}
