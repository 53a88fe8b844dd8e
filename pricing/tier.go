package pricing

// Tier thresholds: bronze below 100 points, silver below 500, gold above.
const (
	TierBronze = "bronze"
	TierSilver = "silver"
	TierGold   = "gold"

	silverThreshold = 100
	goldThreshold   = 500
)

// TierForPoints recomputes the loyalty tier from a point balance. Transitions
// go both ways; the tier is never sticky.
func TierForPoints(points int) string {
	switch {
	case points >= goldThreshold:
		return TierGold
	case points >= silverThreshold:
		return TierSilver
	default:
		return TierBronze
	}
}
