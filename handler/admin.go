package handler

import (
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/helper"
	"biryani_club/model"
	"biryani_club/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func GetAdminStats(c *fiber.Ctx) error {
	db := database.DB

	type Stats struct {
		MenuItems int64 `json:"menuItems"`
		Customers int64 `json:"customers"`
		Promos    int64 `json:"activePromos"`

		TodayRevenue  float64 `json:"todayRevenue"`
		TodayOrders   int64   `json:"todayOrders"`
		PendingOrders int64   `json:"pendingOrders"`
		RevenueGrowth float64 `json:"revenueGrowth"` // %
		OrdersGrowth  float64 `json:"ordersGrowth"`  // %
		AverageRating float64 `json:"averageRating"`
	}

	var stats Stats
	today := time.Now().In(time.Local)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayEnd := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, today.Location())

	db.Model(&model.MenuItem{}).Count(&stats.MenuItems)
	db.Model(&model.Customer{}).Where("role = ?", constants.ROLE_CUSTOMER).Count(&stats.Customers)
	db.Model(&model.Promotion{}).Where("active = ?", true).Count(&stats.Promos)

	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE created_at BETWEEN ? AND ?
    `, todayStart, todayEnd).Scan(&stats.TodayRevenue)

	db.Model(&model.Order{}).
		Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).
		Count(&stats.TodayOrders)

	db.Model(&model.Order{}).
		Where("status = ?", constants.ORDER_PENDING).
		Count(&stats.PendingOrders)

	db.Raw(`
        SELECT COALESCE(AVG(rating), 0)
        FROM orders
        WHERE rating IS NOT NULL
    `).Scan(&stats.AverageRating)

	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)

	var yesterdayRevenue float64
	var yesterdayOrders int64

	db.Raw(`
        SELECT COALESCE(SUM(total), 0)
        FROM orders
        WHERE created_at BETWEEN ? AND ?
    `, yesterdayStart, yesterdayEnd).Scan(&yesterdayRevenue)

	db.Model(&model.Order{}).
		Where("created_at BETWEEN ? AND ?", yesterdayStart, yesterdayEnd).
		Count(&yesterdayOrders)

	stats.RevenueGrowth = utils.CalculateGrowth(stats.TodayRevenue, yesterdayRevenue)
	stats.OrdersGrowth = utils.CalculateGrowth(float64(stats.TodayOrders), float64(yesterdayOrders))

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

func GetAllOrders(c *fiber.Ctx) error {
	db := database.DB

	var orders model.Orders
	query := db.Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	page := c.QueryInt("page", 1)
	query = utils.ApplyPagination(query, &limit, &page)

	if err := query.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type orderView struct {
		model.Order
		Lines []model.CartLine `json:"items"`
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{Order: o, Lines: o.Items()})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, views)
}

// statusRank enforces the forward-only lifecycle.
var statusRank = map[string]int{
	constants.ORDER_PENDING:   0,
	constants.ORDER_PREPARING: 1,
	constants.ORDER_READY:     2,
	constants.ORDER_DELIVERED: 3,
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputUpdateOrderStatus").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	var order model.Order
	if err := db.Where("public_code = ?", input.OrderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if statusRank[input.Status] <= statusRank[order.Status] && input.Status != order.Status {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Status cannot move backwards", nil, "status")
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status == constants.ORDER_READY && order.EstimatedDelivery == nil {
		eta := time.Now().Add(30 * time.Minute)
		updates["estimated_delivery"] = eta
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	go BroadcastOrderStatus(&order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func ToggleStore(c *fiber.Ctx) error {
	type ToggleStoreInput struct {
		Open bool `json:"open"`
	}

	var input ToggleStoreInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request", err)
	}

	if err := helper.SetStoreOpen(input.Open); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"storeOpen": input.Open})
}

func AssignDeliveryPerson(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputAssignDelivery").(model.AssignDeliveryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	var courier model.Customer
	if err := db.First(&courier, input.DeliveryPersonId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Delivery person not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if courier.Role != constants.ROLE_DELIVERY {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Account is not a delivery person", nil, "deliveryPersonId")
	}

	var order model.Order
	if err := db.Where("public_code = ?", input.OrderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.Status == constants.ORDER_DELIVERED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order already delivered", nil)
	}

	if err := db.Model(&order).Update("delivery_person_id", courier.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetSalesData returns the nightly snapshots for the revenue chart, most
// recent first.
func GetSalesData(c *fiber.Ctx) error {
	db := database.DB

	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		days = 30
	}

	var rows []model.DailySales
	if err := db.Order("day desc").Limit(days).Find(&rows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}
