package helper

import (
	"biryani_club/database"
	"biryani_club/model"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var promoScheduler gocron.Scheduler

// DeactivateExpiredPromotions flips active off for promotions whose validity
// window has passed or whose usage cap has been reached.
func DeactivateExpiredPromotions() {
	log.Println("[CRON] DeactivateExpiredPromotions triggered")

	db := database.DB
	now := time.Now().UTC()

	result := db.Model(&model.Promotion{}).
		Where("active = ? AND valid_to IS NOT NULL AND valid_to < ?", true, now).
		Update("active", false)
	if result.Error != nil {
		log.Printf("expired promotion sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("deactivated %d expired promotions", result.RowsAffected)
	}

	result = db.Model(&model.Promotion{}).
		Where("active = ? AND max_usage > 0 AND usage_count >= max_usage", true).
		Update("active", false)
	if result.Error != nil {
		log.Printf("capped promotion sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("deactivated %d capped promotions", result.RowsAffected)
	}
}

func StartPromotionScheduler() {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		log.Printf("promotion scheduler init failed: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(DeactivateExpiredPromotions),
	)
	if err != nil {
		log.Printf("promotion scheduler job failed: %v", err)
		return
	}

	s.Start()
	promoScheduler = s
	log.Println("promotion scheduler started (every 15 minutes)")
}

func StopPromotionScheduler() {
	if promoScheduler != nil {
		_ = promoScheduler.Shutdown()
		log.Println("promotion scheduler stopped")
	}
}
