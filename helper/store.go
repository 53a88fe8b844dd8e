package helper

import (
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/model"
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var storeCache = redis.NewClient(&redis.Options{Addr: "localhost:6379"})

const storeStatusCacheTTL = 30 * time.Second

// IsStoreOpen reads the persisted store_open setting, shielded by a short
// Redis cache. The flag is a database row, not process state, so every
// instance agrees.
func IsStoreOpen() bool {
	ctx := context.Background()

	if cached, err := storeCache.Get(ctx, constants.SETTING_STORE_OPEN).Result(); err == nil {
		return cached == "true"
	}

	var setting model.Setting
	if err := database.DB.Where("key = ?", constants.SETTING_STORE_OPEN).First(&setting).Error; err != nil {
		log.Printf("store status read failed, assuming open: %v", err)
		return true
	}

	if err := storeCache.Set(ctx, constants.SETTING_STORE_OPEN, setting.Value, storeStatusCacheTTL).Err(); err != nil {
		log.Printf("store status cache set failed: %v", err)
	}
	return setting.Value == "true"
}

// SetStoreOpen persists the toggle and refreshes the cache.
func SetStoreOpen(open bool) error {
	value := "false"
	if open {
		value = "true"
	}

	if err := database.DB.Model(&model.Setting{}).
		Where("key = ?", constants.SETTING_STORE_OPEN).
		Update("value", value).Error; err != nil {
		return err
	}

	ctx := context.Background()
	if err := storeCache.Set(ctx, constants.SETTING_STORE_OPEN, value, storeStatusCacheTTL).Err(); err != nil {
		log.Printf("store status cache set failed: %v", err)
	}
	return nil
}
