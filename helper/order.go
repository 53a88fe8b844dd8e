package helper

import (
	"biryani_club/constants"
	"biryani_club/database"
	"biryani_club/model"
	"biryani_club/pricing"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrItemUnavailable = errors.New("item unavailable")

func GenerateOrderCode() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ORD-%s", strings.ToUpper(hex.EncodeToString(buf)))
}

// ResolveCartPrices re-resolves every cart line against the current menu.
// Client-sent prices are ignored; missing or out-of-stock items fail the
// checkout.
func ResolveCartPrices(tx *gorm.DB, lines []model.CartLine) ([]pricing.Line, []model.CartLine, error) {
	resolved := make([]pricing.Line, 0, len(lines))
	persisted := make([]model.CartLine, 0, len(lines))

	for _, line := range lines {
		var item model.MenuItem
		if err := tx.Where("name = ?", line.ItemName).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("%w: %s", ErrItemUnavailable, line.ItemName)
			}
			return nil, nil, err
		}
		if !item.InStock {
			return nil, nil, fmt.Errorf("%w: %s is out of stock", ErrItemUnavailable, item.Name)
		}

		resolved = append(resolved, pricing.Line{
			ItemName:  item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
		})
		persisted = append(persisted, model.CartLine{
			ItemName:  item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
		})
	}
	return resolved, persisted, nil
}

const settlementAttempts = 3

// runSettlement retries fn from scratch on serialization or deadlock
// conflicts; any other error aborts immediately.
func runSettlement(attempts int, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryableTxError(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// promoUsageUpdates returns the column updates for one redemption of p,
// flipping active off when this use reaches the cap.
func promoUsageUpdates(p *model.Promotion) map[string]interface{} {
	updates := map[string]interface{}{
		"usage_count": gorm.Expr("usage_count + 1"),
	}
	if p.MaxUsage > 0 && p.UsageCount+1 >= p.MaxUsage {
		updates["active"] = false
	}
	return updates
}

// PlaceOrderSettlement runs the whole checkout as one transaction per
// attempt: lock promotion and customer rows, price the cart, write the
// order, bump promo usage and settle the loyalty balance. Conflicting
// transactions are retried from a fresh read.
func PlaceOrderSettlement(db *gorm.DB, input model.PlaceOrderInput, customerId *uint) (*model.Order, *pricing.Result, error) {
	var order *model.Order
	var result *pricing.Result

	promoCode := strings.ToUpper(input.PromoCode)

	lastErr := runSettlement(settlementAttempts, func() error {
		order, result = nil, nil
		return db.Transaction(func(tx *gorm.DB) error {
			resolved, persisted, err := ResolveCartPrices(tx, input.Items)
			if err != nil {
				return err
			}

			var promo *model.Promotion
			if promoCode != "" {
				var row model.Promotion
				err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("code = ?", promoCode).First(&row).Error
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if err == nil {
					promo = &row
				}
			}

			account := pricing.Account{Tier: pricing.TierBronze}
			var customer model.Customer
			if customerId != nil {
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&customer, *customerId).Error; err != nil {
					return err
				}
				account = pricing.Account{Points: customer.LoyaltyPoints, Tier: customer.LoyaltyTier}
			}

			pointsRequested := input.LoyaltyPoints
			if customerId == nil {
				// guests have no balance to redeem
				pointsRequested = 0
			}

			quote, err := pricing.Quote(pricing.Request{
				Cart:              resolved,
				Promo:             toPricingPromotion(promo),
				PromoCodeSupplied: promoCode != "",
				PointsRequested:   pointsRequested,
				Account:           account,
				Now:               time.Now().UTC(),
			})
			if err != nil {
				return err
			}

			itemsJson, err := json.Marshal(persisted)
			if err != nil {
				return err
			}

			newOrder := model.Order{
				PublicCode:      GenerateOrderCode(),
				CustomerName:    input.CustomerName,
				CustomerPhone:   input.CustomerPhone,
				CustomerAddress: input.CustomerAddress,
				ItemsJson:       string(itemsJson),
				Subtotal:        quote.Subtotal,
				PromoDiscount:   quote.PromoDiscount,
				LoyaltyDiscount: quote.LoyaltyDiscount,
				Total:           quote.Total,
				PointsRedeemed:  quote.PointsRedeemed,
				PointsEarned:    quote.PointsEarned,
				PaymentMethod:   input.PaymentMethod,
				Status:          constants.ORDER_PENDING,
				CustomerId:      customerId,
			}
			if quote.IncrementPromoUsage {
				newOrder.PromoCode = promo.Code
			}

			if err := tx.Create(&newOrder).Error; err != nil {
				return err
			}

			if quote.IncrementPromoUsage {
				if err := tx.Model(&model.Promotion{}).
					Where("id = ?", promo.ID).Updates(promoUsageUpdates(promo)).Error; err != nil {
					return err
				}
			}

			if customerId != nil {
				if err := tx.Model(&customer).Updates(map[string]interface{}{
					"loyalty_points": quote.Account.Points,
					"loyalty_tier":   quote.Account.Tier,
				}).Error; err != nil {
					return err
				}
			}

			order = &newOrder
			result = &quote
			return nil
		})
	})
	if lastErr != nil {
		return nil, nil, lastErr
	}
	return order, result, nil
}

// FlagStalePendingOrders logs orders stuck in pending past the threshold so
// the kitchen screen noise does not hide them. Runs from the minute ticker.
func FlagStalePendingOrders(threshold time.Duration) {
	cutoff := time.Now().Add(-threshold)

	var stale []model.Order
	if err := database.DB.
		Where("status = ? AND created_at < ?", constants.ORDER_PENDING, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("stale order scan failed: %v", err)
		return
	}

	for _, o := range stale {
		log.Printf("order %s pending since %s", o.PublicCode, o.CreatedAt.Format(time.RFC3339))
	}
}

func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

func toPricingPromotion(p *model.Promotion) *pricing.Promotion {
	if p == nil {
		return nil
	}
	return &pricing.Promotion{
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		MinOrder:      p.MinOrder,
		ValidFrom:     p.ValidFrom,
		ValidTo:       p.ValidTo,
		MaxUsage:      p.MaxUsage,
		UsageCount:    p.UsageCount,
		Active:        p.Active,
	}
}

// ToPricingPromotion exposes the row conversion for preview validation.
func ToPricingPromotion(p *model.Promotion) *pricing.Promotion {
	return toPricingPromotion(p)
}
