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

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRewardUnavailable = errors.New("reward not available")
	ErrNotEnoughPoints   = errors.New("not enough points")
)

// redeemErrorStatus maps a failed redemption to the response status and
// message the customer sees.
func redeemErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound, "Reward not found"
	case errors.Is(err, ErrNotEnoughPoints), errors.Is(err, ErrRewardUnavailable):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR
	}
}

func GetRewards(c *fiber.Ctx) error {
	db := database.DB

	var rewards model.Rewards
	if err := db.Where("active = ?", true).Order("points asc").Find(&rewards).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, rewards)
}

// RedeemReward spends points on a catalog reward and issues a voucher code.
// Balance deduction and tier recompute happen under a row lock.
func RedeemReward(c *fiber.Ctx) error {
	input, ok := c.Locals("inputRedeemReward").(model.RedeemRewardInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Input parse failed", nil)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	var redemption model.RewardRedemption
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var reward model.Reward
		if err := tx.First(&reward, input.RewardId).Error; err != nil {
			return err
		}
		if !reward.Active {
			return ErrRewardUnavailable
		}

		var customer model.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, claim.CustomerId).Error; err != nil {
			return err
		}

		if customer.LoyaltyPoints < reward.Points {
			return ErrNotEnoughPoints
		}

		newBalance := customer.LoyaltyPoints - reward.Points
		if err := tx.Model(&customer).Updates(map[string]interface{}{
			"loyalty_points": newBalance,
			"loyalty_tier":   pricing.TierForPoints(newBalance),
		}).Error; err != nil {
			return err
		}

		redemption = model.RewardRedemption{
			CustomerId:  customer.ID,
			RewardId:    reward.ID,
			VoucherCode: strings.ToUpper(uuid.NewString()[:8]),
			PointsSpent: reward.Points,
		}
		return tx.Create(&redemption).Error
	})
	if err != nil {
		status, message := redeemErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			return utils.ErrorResponse(c, status, message, err)
		}
		return utils.ErrorResponse(c, status, message, nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, redemption)
}

func GetMyRedemptions(c *fiber.Ctx) error {
	db := database.DB

	claim, _ := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", nil)
	}

	var redemptions []model.RewardRedemption
	if err := db.Preload("Reward").
		Where("customer_id = ?", claim.CustomerId).
		Order("created_at desc").
		Find(&redemptions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, redemptions)
}
