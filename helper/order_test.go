package helper

import (
	"biryani_club/model"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderCode(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateOrderCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// 100 draws from 4 random bytes should not all collide
	assert.Greater(t, len(seen), 1)
}

func TestToPricingPromotion(t *testing.T) {
	assert.Nil(t, ToPricingPromotion(nil))

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	row := &model.Promotion{
		Code:          "WELCOME20",
		DiscountType:  "percent",
		DiscountValue: 20,
		MinOrder:      500,
		ValidFrom:     &from,
		ValidTo:       &to,
		MaxUsage:      100,
		UsageCount:    42,
		Active:        true,
	}

	got := ToPricingPromotion(row)
	require.NotNil(t, got)
	assert.Equal(t, "WELCOME20", got.Code)
	assert.Equal(t, "percent", got.DiscountType)
	assert.Equal(t, 20.0, got.DiscountValue)
	assert.Equal(t, 500.0, got.MinOrder)
	assert.Equal(t, &from, got.ValidFrom)
	assert.Equal(t, &to, got.ValidTo)
	assert.Equal(t, 100, got.MaxUsage)
	assert.Equal(t, 42, got.UsageCount)
	assert.True(t, got.Active)
}

func TestRunSettlement(t *testing.T) {
	t.Run("serialization conflict retries until success", func(t *testing.T) {
		calls := 0
		err := runSettlement(3, func() error {
			calls++
			if calls < 3 {
				return errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error aborts on first attempt", func(t *testing.T) {
		calls := 0
		boom := errors.New("duplicate key value")
		err := runSettlement(3, func() error {
			calls++
			return boom
		})
		assert.Equal(t, boom, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausted attempts return the last error", func(t *testing.T) {
		calls := 0
		err := runSettlement(3, func() error {
			calls++
			return errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})
}

func TestPromoUsageUpdates(t *testing.T) {
	t.Run("below the cap only bumps usage", func(t *testing.T) {
		updates := promoUsageUpdates(&model.Promotion{MaxUsage: 10, UsageCount: 3})
		assert.Contains(t, updates, "usage_count")
		assert.NotContains(t, updates, "active")
	})

	t.Run("reaching the cap deactivates the code", func(t *testing.T) {
		updates := promoUsageUpdates(&model.Promotion{MaxUsage: 10, UsageCount: 9})
		assert.Contains(t, updates, "usage_count")
		assert.Equal(t, false, updates["active"])
	})

	t.Run("uncapped codes never deactivate", func(t *testing.T) {
		updates := promoUsageUpdates(&model.Promotion{MaxUsage: 0, UsageCount: 9999})
		assert.NotContains(t, updates, "active")
	})
}

func TestIsRetryableTxError(t *testing.T) {
	assert.False(t, isRetryableTxError(nil))
	assert.False(t, isRetryableTxError(errors.New("duplicate key value")))
	assert.True(t, isRetryableTxError(errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")))
	assert.True(t, isRetryableTxError(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")))
}
