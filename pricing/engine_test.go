package pricing_test

import (
	"testing"
	"time"

	"biryani_club/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestComputeSubtotal(t *testing.T) {
	tests := []struct {
		name    string
		cart    []pricing.Line
		want    float64
		wantErr error
	}{
		{
			name: "single line",
			cart: []pricing.Line{{ItemName: "Hyderabadi Biryani", UnitPrice: 200, Quantity: 2}},
			want: 400,
		},
		{
			name: "multiple lines",
			cart: []pricing.Line{
				{ItemName: "Biryani", UnitPrice: 250, Quantity: 1},
				{ItemName: "Raita", UnitPrice: 40, Quantity: 3},
			},
			want: 370,
		},
		{
			name: "empty cart is zero",
			cart: nil,
			want: 0,
		},
		{
			name: "free item allowed",
			cart: []pricing.Line{{ItemName: "Mint Chutney", UnitPrice: 0, Quantity: 1}},
			want: 0,
		},
		{
			name:    "zero quantity rejected",
			cart:    []pricing.Line{{ItemName: "Biryani", UnitPrice: 250, Quantity: 0}},
			wantErr: pricing.ErrInvalidCartLine,
		},
		{
			name:    "negative price rejected",
			cart:    []pricing.Line{{ItemName: "Biryani", UnitPrice: -1, Quantity: 1}},
			wantErr: pricing.ErrInvalidCartLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.ComputeSubtotal(tt.cart)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestEvaluatePromotion(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	welcome20 := pricing.Promotion{
		Code:          "WELCOME20",
		DiscountType:  "percent",
		DiscountValue: 20,
		MinOrder:      500,
		MaxUsage:      100,
		Active:        true,
	}

	tests := []struct {
		name     string
		promo    *pricing.Promotion
		subtotal float64
		want     float64
		wantErr  error
	}{
		{
			name:     "nil promotion",
			promo:    nil,
			subtotal: 500,
			wantErr:  pricing.ErrPromoInactive,
		},
		{
			name: "inactive promotion",
			promo: func() *pricing.Promotion {
				p := welcome20
				p.Active = false
				return &p
			}(),
			subtotal: 500,
			wantErr:  pricing.ErrPromoInactive,
		},
		{
			name: "not yet valid",
			promo: func() *pricing.Promotion {
				p := welcome20
				p.ValidFrom = timePtr(now.Add(24 * time.Hour))
				return &p
			}(),
			subtotal: 500,
			wantErr:  pricing.ErrPromoNotYetValid,
		},
		{
			name: "expired",
			promo: func() *pricing.Promotion {
				p := welcome20
				p.ValidTo = timePtr(now.Add(-24 * time.Hour))
				return &p
			}(),
			subtotal: 500,
			wantErr:  pricing.ErrPromoExpired,
		},
		{
			// Scenario E: usage already at cap.
			name: "usage limit reached",
			promo: func() *pricing.Promotion {
				p := welcome20
				p.UsageCount = 100
				return &p
			}(),
			subtotal: 500,
			wantErr:  pricing.ErrPromoLimitReached,
		},
		{
			// Scenario C: one unit short of min_order.
			name:     "minimum order not met",
			promo:    &welcome20,
			subtotal: 499,
			wantErr:  pricing.ErrPromoMinimumNotMet,
		},
		{
			// Scenario B: 20% of 500.
			name:     "percent discount",
			promo:    &welcome20,
			subtotal: 500,
			want:     100,
		},
		{
			name: "fixed discount",
			promo: &pricing.Promotion{
				Code:          "FLAT50",
				DiscountType:  "fixed",
				DiscountValue: 50,
				Active:        true,
			},
			subtotal: 300,
			want:     50,
		},
		{
			name: "fixed discount clamped to subtotal",
			promo: &pricing.Promotion{
				Code:          "FLAT500",
				DiscountType:  "fixed",
				DiscountValue: 500,
				Active:        true,
			},
			subtotal: 120,
			want:     120,
		},
		{
			name: "unlimited usage when max is zero",
			promo: &pricing.Promotion{
				Code:          "EVERGREEN",
				DiscountType:  "fixed",
				DiscountValue: 10,
				UsageCount:    9999,
				Active:        true,
			},
			subtotal: 100,
			want:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.EvaluatePromotion(tt.promo, tt.subtotal, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, pricing.IsPromoError(err))
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, tt.subtotal)
		})
	}
}

func TestEvaluateLoyaltyRedemption(t *testing.T) {
	tests := []struct {
		name         string
		requested    int
		balance      int
		remaining    float64
		wantDiscount float64
		wantConsumed int
		wantErr      error
	}{
		{
			name:    "negative request rejected",
			requested: -1, balance: 100, remaining: 100,
			wantErr: pricing.ErrInvalidRedemption,
		},
		{
			name:      "zero request",
			requested: 0, balance: 100, remaining: 100,
		},
		{
			name:      "plain conversion",
			requested: 100, balance: 200, remaining: 500,
			wantDiscount: 50, wantConsumed: 100,
		},
		{
			// Scenario D: 10-point balance, 7 requested, 3 left after promo.
			name:      "odd request floors, odd point kept",
			requested: 7, balance: 10, remaining: 3,
			wantDiscount: 3, wantConsumed: 6,
		},
		{
			name:      "request clamped to balance",
			requested: 1000, balance: 10, remaining: 500,
			wantDiscount: 5, wantConsumed: 10,
		},
		{
			name:      "discount clamped to remaining",
			requested: 100, balance: 100, remaining: 20,
			wantDiscount: 20, wantConsumed: 40,
		},
		{
			name:      "fractional remaining floors the discount",
			requested: 100, balance: 100, remaining: 12.5,
			wantDiscount: 12, wantConsumed: 24,
		},
		{
			name:      "nothing left after promo",
			requested: 50, balance: 50, remaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, consumed, err := pricing.EvaluateLoyaltyRedemption(tt.requested, tt.balance, tt.remaining)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, discount)
			assert.Equal(t, tt.wantConsumed, consumed)
			assert.Zero(t, consumed%2, "points consumed must be even")
			assert.LessOrEqual(t, consumed, tt.balance)
			assert.LessOrEqual(t, discount, tt.remaining)
		})
	}
}

func TestSettle(t *testing.T) {
	t.Run("accrues on final total not subtotal", func(t *testing.T) {
		s, err := pricing.Settle(500, 100, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 400.0, s.Total)
		assert.Equal(t, 40, s.PointsEarned)
		assert.Equal(t, 40, s.NewBalance)
	})

	t.Run("total clamps at zero", func(t *testing.T) {
		s, err := pricing.Settle(100, 80, 30, 60, 60)
		require.NoError(t, err)
		assert.Equal(t, 0.0, s.Total)
		assert.Equal(t, 0, s.PointsEarned)
		assert.Equal(t, 0, s.NewBalance)
	})

	t.Run("balance conservation", func(t *testing.T) {
		s, err := pricing.Settle(400, 0, 50, 100, 120)
		require.NoError(t, err)
		// new = old − consumed + earned
		assert.Equal(t, 120-100+s.PointsEarned, s.NewBalance)
		assert.GreaterOrEqual(t, s.NewBalance, 0)
	})

	t.Run("negative balance is an accounting violation", func(t *testing.T) {
		_, err := pricing.Settle(10, 0, 0, 50, 20)
		assert.ErrorIs(t, err, pricing.ErrLoyaltyAccounting)
	})

	t.Run("tier moves both directions", func(t *testing.T) {
		up, err := pricing.Settle(5000, 0, 0, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, pricing.TierGold, up.NewTier)

		down, err := pricing.Settle(0, 0, 0, 400, 420)
		require.NoError(t, err)
		assert.Equal(t, 20, down.NewBalance)
		assert.Equal(t, pricing.TierBronze, down.NewTier)
	})
}

func TestTierForPoints(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, pricing.TierBronze},
		{99, pricing.TierBronze},
		{100, pricing.TierSilver},
		{499, pricing.TierSilver},
		{500, pricing.TierGold},
		{10000, pricing.TierGold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.TierForPoints(tt.points))
		// idempotent
		assert.Equal(t, pricing.TierForPoints(tt.points), pricing.TierForPoints(tt.points))
	}
}

func TestQuote(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	welcome20 := &pricing.Promotion{
		Code:          "WELCOME20",
		DiscountType:  "percent",
		DiscountValue: 20,
		MinOrder:      500,
		MaxUsage:      100,
		Active:        true,
	}

	t.Run("scenario A: bare cart", func(t *testing.T) {
		res, err := pricing.Quote(pricing.Request{
			Cart: []pricing.Line{{ItemName: "Family Biryani", UnitPrice: 200, Quantity: 2}},
			Now:  now,
		})
		require.NoError(t, err)
		assert.Equal(t, 400.0, res.Subtotal)
		assert.Equal(t, 400.0, res.Total)
		assert.Equal(t, 40, res.PointsEarned)
		assert.False(t, res.IncrementPromoUsage)
		assert.NoError(t, res.PromoVerdict)
	})

	t.Run("scenario B: promo applied", func(t *testing.T) {
		res, err := pricing.Quote(pricing.Request{
			Cart:  []pricing.Line{{ItemName: "Feast", UnitPrice: 500, Quantity: 1}},
			Promo: welcome20,
			Now:   now,
		})
		require.NoError(t, err)
		assert.Equal(t, 100.0, res.PromoDiscount)
		assert.Equal(t, 400.0, res.Total)
		assert.True(t, res.IncrementPromoUsage)
	})

	t.Run("scenario C: below minimum, recoverable", func(t *testing.T) {
		res, err := pricing.Quote(pricing.Request{
			Cart:  []pricing.Line{{ItemName: "Feast", UnitPrice: 499, Quantity: 1}},
			Promo: welcome20,
			Now:   now,
		})
		require.NoError(t, err)
		assert.ErrorIs(t, res.PromoVerdict, pricing.ErrPromoMinimumNotMet)
		assert.Zero(t, res.PromoDiscount)
		assert.Equal(t, 499.0, res.Total)
		assert.False(t, res.IncrementPromoUsage)
	})

	t.Run("scenario D: redemption after promo", func(t *testing.T) {
		promo := &pricing.Promotion{
			Code: "FLAT", DiscountType: "fixed", DiscountValue: 497, Active: true,
		}
		res, err := pricing.Quote(pricing.Request{
			Cart:            []pricing.Line{{ItemName: "Feast", UnitPrice: 500, Quantity: 1}},
			Promo:           promo,
			PointsRequested: 7,
			Account:         pricing.Account{Points: 10, Tier: pricing.TierBronze},
			Now:             now,
		})
		require.NoError(t, err)
		assert.Equal(t, 3.0, res.LoyaltyDiscount)
		assert.Equal(t, 6, res.PointsRedeemed)
		assert.Equal(t, 0.0, res.Total)
		assert.Equal(t, 10-6+res.PointsEarned, res.Account.Points)
	})

	t.Run("scenario E: capped promo, full price", func(t *testing.T) {
		capped := *welcome20
		capped.UsageCount = capped.MaxUsage
		res, err := pricing.Quote(pricing.Request{
			Cart:  []pricing.Line{{ItemName: "Feast", UnitPrice: 600, Quantity: 1}},
			Promo: &capped,
			Now:   now,
		})
		require.NoError(t, err)
		assert.ErrorIs(t, res.PromoVerdict, pricing.ErrPromoLimitReached)
		assert.Equal(t, 600.0, res.Total)
		assert.False(t, res.IncrementPromoUsage)
	})

	t.Run("unknown code still surfaces a verdict", func(t *testing.T) {
		res, err := pricing.Quote(pricing.Request{
			Cart:              []pricing.Line{{ItemName: "Feast", UnitPrice: 600, Quantity: 1}},
			Promo:             nil,
			PromoCodeSupplied: true,
			Now:               now,
		})
		require.NoError(t, err)
		assert.ErrorIs(t, res.PromoVerdict, pricing.ErrPromoInactive)
		assert.Zero(t, res.PromoDiscount)
		assert.Equal(t, 600.0, res.Total)
		assert.False(t, res.IncrementPromoUsage)
	})

	t.Run("invalid cart fails the quote", func(t *testing.T) {
		_, err := pricing.Quote(pricing.Request{
			Cart: []pricing.Line{{ItemName: "Feast", UnitPrice: 500, Quantity: -2}},
			Now:  now,
		})
		assert.ErrorIs(t, err, pricing.ErrInvalidCartLine)
	})

	t.Run("negative redemption fails the quote", func(t *testing.T) {
		_, err := pricing.Quote(pricing.Request{
			Cart:            []pricing.Line{{ItemName: "Feast", UnitPrice: 500, Quantity: 1}},
			PointsRequested: -5,
			Now:             now,
		})
		assert.ErrorIs(t, err, pricing.ErrInvalidRedemption)
	})

	t.Run("discount chain never pushes total negative", func(t *testing.T) {
		for _, pts := range []int{0, 1, 7, 100, 100000} {
			res, err := pricing.Quote(pricing.Request{
				Cart:            []pricing.Line{{ItemName: "Snack", UnitPrice: 35, Quantity: 1}},
				Promo:           &pricing.Promotion{Code: "BIG", DiscountType: "fixed", DiscountValue: 30, Active: true},
				PointsRequested: pts,
				Account:         pricing.Account{Points: pts, Tier: pricing.TierBronze},
				Now:             now,
			})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.Total, 0.0)
			assert.LessOrEqual(t, res.PromoDiscount, res.Subtotal)
			assert.LessOrEqual(t, res.LoyaltyDiscount, res.Subtotal-res.PromoDiscount)
			assert.Zero(t, res.PointsRedeemed%2)
		}
	})
}
