package handler

import (
	"biryani_club/config"
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/helper"
	"biryani_club/model"
	"biryani_club/pricing"
	"biryani_club/utils"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func promoVerdictMessage(err error) string {
	switch {
	case errors.Is(err, pricing.ErrPromoInactive):
		return "Promo code is not active"
	case errors.Is(err, pricing.ErrPromoNotYetValid):
		return "Promo code is not valid yet"
	case errors.Is(err, pricing.ErrPromoExpired):
		return "Promo code has expired"
	case errors.Is(err, pricing.ErrPromoLimitReached):
		return "Promo code usage limit reached"
	case errors.Is(err, pricing.ErrPromoMinimumNotMet):
		return "Order does not meet the promo minimum"
	}
	return ""
}

// PlaceOrder settles a checkout. Guests order without an account; signed-in
// customers can redeem points and earn new ones.
func PlaceOrder(c *fiber.Ctx) error {
	if !helper.IsStoreOpen() {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, constants.STORE_CLOSED, nil)
	}

	input, ok := c.Locals("inputPlaceOrder").(model.PlaceOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	claim, customer := helper.GetInfoCustomerFromToken(c)
	var customerId *uint
	if claim.CustomerId != 0 {
		customerId = &claim.CustomerId
	}

	order, result, err := helper.PlaceOrderSettlement(database.DB, input, customerId)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrItemUnavailable):
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), nil)
		case errors.Is(err, pricing.ErrInvalidCartLine):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cart contains an invalid line", err)
		case errors.Is(err, pricing.ErrInvalidRedemption):
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Loyalty redemption is invalid", err)
		case errors.Is(err, pricing.ErrLoyaltyAccounting):
			log.Printf("loyalty accounting violation: customer=%v err=%v", claim.CustomerId, err)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Checkout failed", err)
	}

	response := fiber.Map{
		"order":        order,
		"items":        order.Items(),
		"pointsEarned": result.PointsEarned,
	}

	// A rejected promo does not block the order. Surface why it was skipped.
	if result.PromoVerdict != nil {
		response["promoWarning"] = promoVerdictMessage(result.PromoVerdict)
	}

	if customer.ID != 0 && customer.Email != "" {
		sendOrderConfirmation(customer.Email, order)
	}

	go BroadcastOrderStatus(order)

	return utils.SuccessResponse(c, fiber.StatusCreated, response)
}

func sendOrderConfirmation(to string, order *model.Order) {
	qrPNG, err := utils.GenerateQRCode(order.PublicCode, utils.DefaultQRSize)
	if err != nil {
		log.Printf("order qr render failed: code=%s err=%v", order.PublicCode, err)
		qrPNG = nil
	}

	lines := order.Items()
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%dx %s", l.Quantity, l.ItemName))
	}

	utils.SendOrderConfirmationEmail(to, utils.OrderConfirmationData{
		OrderCode:       order.PublicCode,
		CustomerName:    order.CustomerName,
		Items:           strings.Join(parts, ", "),
		Subtotal:        order.Subtotal,
		PromoDiscount:   order.PromoDiscount,
		LoyaltyDiscount: order.LoyaltyDiscount,
		Total:           order.Total,
		PointsEarned:    order.PointsEarned,
		PaymentMethod:   order.PaymentMethod,
		Address:         order.CustomerAddress,
		DetailLink:      config.Config("FRONTEND_URL") + "/orders/" + order.PublicCode,
	}, qrPNG)
}

func GetMyOrders(c *fiber.Ctx) error {
	db := database.DB

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	var orders model.Orders
	query := db.Where("customer_id = ?", claim.CustomerId).Order("created_at desc")

	limit := c.QueryInt("limit", 0)
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

// GetMyOrderStatuses is the polling endpoint behind the tracking screen. It
// returns only active orders, oldest first.
func GetMyOrderStatuses(c *fiber.Ctx) error {
	db := database.DB

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	type statusRow struct {
		PublicCode        string     `json:"orderCode"`
		Status            string     `json:"status"`
		EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	}

	var rows []statusRow
	if err := db.Model(&model.Order{}).
		Where("customer_id = ? AND status <> ?", claim.CustomerId, constants.ORDER_DELIVERED).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

func GetOrderDetail(c *fiber.Ctx) error {
	db := database.DB

	code := c.Params("code")

	var order model.Order
	if err := db.Where("public_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if order.CustomerId != nil && *order.CustomerId != claim.CustomerId &&
		claim.Role != constants.ROLE_ADMIN && claim.Role != constants.ROLE_DELIVERY {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not your order", nil)
	}

	qrPNG, err := utils.GenerateQRCode(order.PublicCode, utils.DefaultQRSize)
	var qrBase64 string
	if err != nil {
		log.Printf("order qr render failed: code=%s err=%v", order.PublicCode, err)
	} else {
		qrBase64 = base64.StdEncoding.EncodeToString(qrPNG)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":  order,
		"items":  order.Items(),
		"qrCode": qrBase64,
	})
}

func SubmitRating(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputSubmitRating").(model.SubmitRatingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	var order model.Order
	if err := db.Where("public_code = ?", input.OrderCode).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.CustomerId == nil || *order.CustomerId != claim.CustomerId {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not your order", nil)
	}
	if order.Status != constants.ORDER_DELIVERED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Only delivered orders can be rated", nil)
	}
	if order.Rating != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order already rated", nil)
	}

	if err := db.Model(&order).Updates(map[string]interface{}{
		"rating":   input.Rating,
		"feedback": input.Feedback,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
