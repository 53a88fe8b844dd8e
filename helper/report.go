package helper

import (
	"biryani_club/database"
	"biryani_club/model"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

var reportScheduler *cron.Cron

// SnapshotDailySales writes yesterday's order count and revenue into the
// daily_sales table so the admin chart reads aggregates, not raw orders.
func SnapshotDailySales() {
	db := database.DB

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1)
	day := dayStart.Format("2006-01-02")

	var count int64
	var revenue float64
	db.Model(&model.Order{}).
		Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Count(&count)
	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE created_at >= ? AND created_at < ?
    `, dayStart, dayEnd).Scan(&revenue)

	snapshot := model.DailySales{Day: day, OrderCount: count, Revenue: revenue}
	if err := db.Where(model.DailySales{Day: day}).
		Assign(model.DailySales{OrderCount: count, Revenue: revenue}).
		FirstOrCreate(&snapshot).Error; err != nil {
		log.Printf("daily sales snapshot for %s failed: %v", day, err)
		return
	}
	log.Printf("daily sales snapshot %s: %d orders, %.2f revenue", day, count, revenue)
}

func StartReportScheduler() {
	reportScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Shortly after midnight, once a day.
	_, err := reportScheduler.AddFunc("10 0 * * *", SnapshotDailySales)
	if err != nil {
		log.Printf("report scheduler init failed: %v", err)
		return
	}

	reportScheduler.Start()
	log.Println("report scheduler started (daily at 00:10)")
}

func StopReportScheduler() {
	if reportScheduler != nil {
		reportScheduler.Stop()
		log.Println("report scheduler stopped")
	}
}
