package handler

import (
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/helper"
	"biryani_club/model"
	"biryani_club/pricing"
	"biryani_club/utils"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ApplyPromo previews a promo against the current cart. It never bumps
// usage counters; only settlement does that.
func ApplyPromo(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputApplyPromo").(model.ApplyPromoInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	resolved, _, err := helper.ResolveCartPrices(db, input.Items)
	if err != nil {
		if errors.Is(err, helper.ErrItemUnavailable) {
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	subtotal, err := pricing.ComputeSubtotal(resolved)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cart contains an invalid line", err)
	}

	var promo model.Promotion
	if err := db.Where("code = ?", strings.ToUpper(input.PromoCode)).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROMO_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	discount, verdict := pricing.EvaluatePromotion(helper.ToPricingPromotion(&promo), subtotal, time.Now().UTC())
	if verdict != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, promoVerdictMessage(verdict), nil, "promoCode")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"code":        promo.Code,
		"description": promo.Description,
		"subtotal":    subtotal,
		"discount":    discount,
		"newTotal":    subtotal - discount,
	})
}

func GetPromotions(c *fiber.Ctx) error {
	db := database.DB

	var promos model.Promotions
	query := db.Order("created_at desc")

	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	if err := query.Find(&promos).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promos)
}

func CreatePromotion(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputCreatePromotion").(model.CreatePromotionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	code := strings.ToUpper(input.Code)

	var existing model.Promotion
	if err := db.Where("code = ?", code).First(&existing).Error; err == nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Promo code already exists", nil, "code")
	}

	promo := model.Promotion{
		Code:          code,
		Description:   input.Description,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		MinOrder:      input.MinOrder,
		MaxUsage:      input.MaxUsage,
		Active:        input.Active,
	}

	if input.ValidFrom != "" {
		from, err := time.Parse("2006-01-02", input.ValidFrom)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid validFrom date", err, "validFrom")
		}
		promo.ValidFrom = &from
	}
	if input.ValidTo != "" {
		to, err := time.Parse("2006-01-02", input.ValidTo)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid validTo date", err, "validTo")
		}
		// valid through the whole last day
		end := to.Add(24*time.Hour - time.Second)
		promo.ValidTo = &end
	}

	if promo.ValidFrom != nil && promo.ValidTo != nil && promo.ValidTo.Before(*promo.ValidFrom) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "validTo is before validFrom", nil, "validTo")
	}

	if err := db.Create(&promo).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, promo)
}

func TogglePromotion(c *fiber.Ctx) error {
	db := database.DB

	code := strings.ToUpper(c.Params("code"))

	var promo model.Promotion
	if err := db.Where("code = ?", code).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROMO_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Model(&promo).Update("active", !promo.Active).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Update failed", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promo)
}
