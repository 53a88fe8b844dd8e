package router

import (
	"biryani_club/handler"
	"biryani_club/middleware"
	"biryani_club/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/signup", validate.RegisterCustomer(), handler.RegisterCustomer)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	customer := v1.Group("/customer", logger.New())
	customer.Get("/me", middleware.Protected(), handler.GetProfile)
	customer.Put("/me", middleware.Protected(), validate.EditCustomer(), handler.EditProfile)
	customer.Post("/change-password", middleware.Protected(), validate.ChangePasswordCustomer(), handler.ChangePassword)

	menu := v1.Group("/menu", logger.New())
	menu.Get("/", handler.GetMenu)
	menu.Post("/track", validate.TrackPopularity(), handler.TrackPopularity)

	order := v1.Group("/order", logger.New())
	order.Post("/", middleware.OptionalAuth(), validate.PlaceOrder(), handler.PlaceOrder)
	order.Get("/mine", middleware.Protected(), handler.GetMyOrders)
	order.Get("/mine/status", middleware.Protected(), handler.GetMyOrderStatuses)
	order.Get("/:code", middleware.OptionalAuth(), handler.GetOrderDetail)
	order.Post("/rating", middleware.Protected(), validate.SubmitRating(), handler.SubmitRating)

	promo := v1.Group("/promo", logger.New())
	promo.Post("/apply", validate.ApplyPromo(), handler.ApplyPromo)

	reward := v1.Group("/reward", logger.New())
	reward.Get("/", handler.GetRewards)
	reward.Post("/redeem", middleware.Protected(), validate.RedeemReward(), handler.RedeemReward)
	reward.Get("/mine", middleware.Protected(), handler.GetMyRedemptions)

	admin := v1.Group("/admin", middleware.Protected(), middleware.AdminRequired(), logger.New())
	admin.Get("/stats", handler.GetAdminStats)
	admin.Get("/orders", handler.GetAllOrders)
	admin.Patch("/orders/status", validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	admin.Post("/orders/assign", validate.AssignDelivery(), handler.AssignDeliveryPerson)
	admin.Get("/customers", handler.GetCustomers)
	admin.Get("/customers/:customerId", validate.GetById("customerId"), handler.GetCustomerById)
	admin.Post("/customers/role", validate.AssignRole(), handler.AssignRole)
	admin.Patch("/store", handler.ToggleStore)
	admin.Get("/sales", handler.GetSalesData)
	admin.Get("/menu", handler.GetMenuItemsAdmin)
	admin.Post("/menu", validate.CreateMenuItem(), handler.CreateMenuItem)
	admin.Put("/menu/:slug", validate.EditMenuItem("slug"), handler.EditMenuItem)
	admin.Delete("/menu/:slug", handler.DeleteMenuItem)
	admin.Delete("/menu", validate.Delete(), handler.DeleteMenuItems)
	admin.Patch("/menu/stock", validate.ToggleStock(), handler.ToggleStock)
	admin.Post("/menu/:slug/image", handler.UploadMenuItemImage)
	admin.Post("/cloudinary-signature", handler.GenerateSignature)
	admin.Get("/promos", handler.GetPromotions)
	admin.Post("/promos", validate.CreatePromotion(), handler.CreatePromotion)
	admin.Patch("/promos/:code/toggle", handler.TogglePromotion)

	delivery := v1.Group("/delivery", middleware.Protected(), middleware.DeliveryRequired(), logger.New())
	delivery.Get("/orders", handler.GetDeliveryOrders)
	delivery.Post("/accept", validate.DeliveryAction(), handler.AcceptDelivery)
	delivery.Post("/complete", validate.DeliveryAction(), handler.CompleteDelivery)

	v1.Get("/ws/orders/:customerId", websocket.New(handler.OrderStatusSocket))
}
