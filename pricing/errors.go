package pricing

import "errors"

var (
	ErrInvalidCartLine = errors.New("invalid cart line")

	// Promotion verdicts. These are recoverable: the order proceeds at full
	// price and the reason is surfaced to the customer.
	ErrPromoInactive      = errors.New("promo inactive")
	ErrPromoNotYetValid   = errors.New("promo not yet valid")
	ErrPromoExpired       = errors.New("promo expired")
	ErrPromoLimitReached  = errors.New("promo limit reached")
	ErrPromoMinimumNotMet = errors.New("promo minimum order not met")

	ErrInvalidRedemption = errors.New("invalid loyalty redemption")

	// ErrLoyaltyAccounting signals a balance that would go negative after
	// settlement. Redemption is clamped beforehand, so hitting this means a
	// caller bug; the transaction must abort.
	ErrLoyaltyAccounting = errors.New("loyalty accounting violation")
)

// IsPromoError reports whether err is one of the recoverable promotion
// verdicts.
func IsPromoError(err error) bool {
	return errors.Is(err, ErrPromoInactive) ||
		errors.Is(err, ErrPromoNotYetValid) ||
		errors.Is(err, ErrPromoExpired) ||
		errors.Is(err, ErrPromoLimitReached) ||
		errors.Is(err, ErrPromoMinimumNotMet)
}
