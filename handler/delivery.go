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

// GetDeliveryOrders shows the courier their assigned orders plus the
// unclaimed ready pool.
func GetDeliveryOrders(c *fiber.Ctx) error {
	db := database.DB

	claim, _ := helper.GetInfoCustomerFromToken(c)

	var assigned model.Orders
	if err := db.Where("delivery_person_id = ? AND status <> ?", claim.CustomerId, constants.ORDER_DELIVERED).
		Order("created_at asc").
		Find(&assigned).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var available model.Orders
	if err := db.Where("delivery_person_id IS NULL AND status = ?", constants.ORDER_READY).
		Order("created_at asc").
		Find(&available).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"assigned":  assigned,
		"available": available,
	})
}

// AcceptDelivery claims a ready order. The guarded update loses gracefully
// when two couriers race for the same order.
func AcceptDelivery(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputDeliveryAction").(model.DeliveryActionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)

	result := db.Model(&model.Order{}).
		Where("public_code = ? AND status = ? AND delivery_person_id IS NULL",
			input.OrderCode, constants.ORDER_READY).
		Update("delivery_person_id", claim.CustomerId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order not available for pickup", nil)
	}

	var order model.Order
	if err := db.Where("public_code = ?", input.OrderCode).First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// CompleteDelivery marks an assigned order delivered.
func CompleteDelivery(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputDeliveryAction").(model.DeliveryActionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)

	var order model.Order
	if err := db.Where("public_code = ?", input.OrderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.DeliveryPersonId == nil || *order.DeliveryPersonId != claim.CustomerId {
		if claim.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Order is not assigned to you", nil)
		}
	}
	if order.Status == constants.ORDER_DELIVERED {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order already delivered", nil)
	}
	if order.Status != constants.ORDER_READY {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order is not out for delivery", nil)
	}

	now := time.Now()
	if err := db.Model(&order).Updates(map[string]interface{}{
		"status":             constants.ORDER_DELIVERED,
		"estimated_delivery": now,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	go BroadcastOrderStatus(&order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
