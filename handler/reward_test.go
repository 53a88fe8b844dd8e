package handler

import (
	"biryani_club/constants"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRedeemErrorStatus(t *testing.T) {
	t.Run("missing reward", func(t *testing.T) {
		status, message := redeemErrorStatus(gorm.ErrRecordNotFound)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Reward not found", message)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		status, message := redeemErrorStatus(ErrNotEnoughPoints)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "not enough points", message)
	})

	t.Run("inactive reward", func(t *testing.T) {
		status, message := redeemErrorStatus(ErrRewardUnavailable)
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "reward not available", message)
	})

	t.Run("wrapped sentinels still match", func(t *testing.T) {
		status, _ := redeemErrorStatus(fmt.Errorf("redeem: %w", ErrNotEnoughPoints))
		assert.Equal(t, fiber.StatusBadRequest, status)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		status, message := redeemErrorStatus(errors.New("connection reset"))
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, constants.ERROR_INTERNAL_ERROR, message)
	})
}
