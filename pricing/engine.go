// Package pricing computes order totals, promo discounts and loyalty
// settlement. It is pure: no database, no clock of its own, no side effects.
// The caller resolves prices, loads the promotion row and account balance,
// and persists the result inside its own transaction.
package pricing

import (
	"math"
	"time"
)

// Line is one priced cart entry.
type Line struct {
	ItemName  string
	UnitPrice float64
	Quantity  int
}

// Promotion is the read-only view of a promo row the engine evaluates. The
// engine never mutates usage counters; it only reports whether the caller
// should.
type Promotion struct {
	Code          string
	DiscountType  string // "percent" or "fixed"
	DiscountValue float64
	MinOrder      float64
	ValidFrom     *time.Time
	ValidTo       *time.Time
	MaxUsage      int // 0 = unlimited
	UsageCount    int
	Active        bool
}

// Account is a loyalty balance snapshot.
type Account struct {
	Points int
	Tier   string
}

// Request carries everything a quote needs, already resolved.
type Request struct {
	Cart  []Line
	Promo *Promotion // nil when no code was supplied
	// PromoCodeSupplied marks that the customer sent a code even if the
	// lookup found no row; the quote then carries an inactive verdict
	// instead of silently pricing without it.
	PromoCodeSupplied bool
	PointsRequested   int
	Account           Account
	Now               time.Time
}

// Result is the full pricing outcome for one order.
type Result struct {
	Subtotal        float64
	PromoDiscount   float64
	LoyaltyDiscount float64
	Total           float64
	PointsRedeemed  int
	PointsEarned    int

	Account Account // balance and tier after settlement

	// IncrementPromoUsage tells the caller to bump usage_count for the
	// promotion, exactly once, after the order is durably committed.
	IncrementPromoUsage bool
	// PromoVerdict holds the recoverable rejection reason when the promo was
	// not applied; nil when applied or no promo was given.
	PromoVerdict error
}

// PointsPerCurrencyUnit: 2 points buy 1 unit of discount.
const PointsPerCurrencyUnit = 2

// EarnDivisor: 1 point per 10 currency units of the final total.
const EarnDivisor = 10

// ComputeSubtotal sums price × quantity over the cart.
func ComputeSubtotal(cart []Line) (float64, error) {
	var subtotal float64
	for _, line := range cart {
		if line.Quantity < 1 || line.UnitPrice < 0 {
			return 0, ErrInvalidCartLine
		}
		subtotal += line.UnitPrice * float64(line.Quantity)
	}
	return subtotal, nil
}

// EvaluatePromotion decides whether a promotion is redeemable right now and
// computes its discount. Rules apply in order; the first failure wins. The
// discount never exceeds the subtotal.
func EvaluatePromotion(p *Promotion, subtotal float64, now time.Time) (float64, error) {
	if p == nil || !p.Active {
		return 0, ErrPromoInactive
	}
	if p.ValidFrom != nil && now.Before(*p.ValidFrom) {
		return 0, ErrPromoNotYetValid
	}
	if p.ValidTo != nil && now.After(*p.ValidTo) {
		return 0, ErrPromoExpired
	}
	if p.MaxUsage > 0 && p.UsageCount >= p.MaxUsage {
		return 0, ErrPromoLimitReached
	}
	if subtotal < p.MinOrder {
		return 0, ErrPromoMinimumNotMet
	}

	var discount float64
	if p.DiscountType == "percent" {
		discount = subtotal * (p.DiscountValue / 100)
	} else {
		discount = p.DiscountValue
	}
	return math.Min(discount, subtotal), nil
}

// EvaluateLoyaltyRedemption converts requested points into a discount. The
// request is clamped to the balance, and the discount to what the promo left
// on the table. Discounts are whole currency units, so points consumed stay
// even; excess or odd points requested are not deducted.
func EvaluateLoyaltyRedemption(pointsRequested, balance int, remainingAfterPromo float64) (discount float64, consumed int, err error) {
	if pointsRequested < 0 {
		return 0, 0, ErrInvalidRedemption
	}
	if pointsRequested > balance {
		pointsRequested = balance
	}

	raw := pointsRequested / PointsPerCurrencyUnit
	discount = math.Min(float64(raw), math.Floor(remainingAfterPromo))
	if discount < 0 {
		discount = 0
	}
	consumed = int(discount) * PointsPerCurrencyUnit
	return discount, consumed, nil
}

// Settlement is the final total plus the account update to persist.
type Settlement struct {
	Total        float64
	PointsEarned int
	NewBalance   int
	NewTier      string
}

// Settle computes the final total, accrues points on it (not the subtotal)
// and recomputes the tier from the new balance.
func Settle(subtotal, promoDiscount, loyaltyDiscount float64, pointsConsumed, balance int) (Settlement, error) {
	total := subtotal - promoDiscount - loyaltyDiscount
	if total < 0 {
		total = 0
	}

	earned := int(total / EarnDivisor)
	newBalance := balance - pointsConsumed + earned
	if newBalance < 0 {
		return Settlement{}, ErrLoyaltyAccounting
	}

	return Settlement{
		Total:        total,
		PointsEarned: earned,
		NewBalance:   newBalance,
		NewTier:      TierForPoints(newBalance),
	}, nil
}

// Quote runs the whole computation for one order. Promotion rejections are
// recoverable: the quote proceeds at zero promo discount and carries the
// verdict. Cart and redemption errors fail the quote outright.
func Quote(req Request) (Result, error) {
	subtotal, err := ComputeSubtotal(req.Cart)
	if err != nil {
		return Result{}, err
	}

	var promoDiscount float64
	var verdict error
	applied := false
	if req.Promo != nil || req.PromoCodeSupplied {
		promoDiscount, verdict = EvaluatePromotion(req.Promo, subtotal, req.Now)
		applied = verdict == nil
	}

	loyaltyDiscount, consumed, err := EvaluateLoyaltyRedemption(
		req.PointsRequested, req.Account.Points, subtotal-promoDiscount)
	if err != nil {
		return Result{}, err
	}

	settlement, err := Settle(subtotal, promoDiscount, loyaltyDiscount, consumed, req.Account.Points)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Subtotal:        subtotal,
		PromoDiscount:   promoDiscount,
		LoyaltyDiscount: loyaltyDiscount,
		Total:           settlement.Total,
		PointsRedeemed:  consumed,
		PointsEarned:    settlement.PointsEarned,
		Account: Account{
			Points: settlement.NewBalance,
			Tier:   settlement.NewTier,
		},
		IncrementPromoUsage: applied,
		PromoVerdict:        verdict,
	}, nil
}
