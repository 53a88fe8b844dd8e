package main

import (
	"biryani_club/database"
	"biryani_club/helper"
	"biryani_club/router"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	database.ConnectDB()

	helper.StartPromotionScheduler()
	defer helper.StopPromotionScheduler()
	helper.StartReportScheduler()
	defer helper.StopReportScheduler()

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			helper.FlagStalePendingOrders(15 * time.Minute)
		}
	}()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	cld := helper.InitCloudinary()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("cld", cld)
		return c.Next()
	})

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
