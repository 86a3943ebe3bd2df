package domain

// Tier is the coarse achievement label derived from accuracy.
type Tier string

const (
	TierTop  Tier = "top"
	TierHigh Tier = "high"
	TierMid  Tier = "mid"
	TierLow  Tier = "low"
)

// TierFor maps an accuracy percentage to its achievement tier. Bands are
// checked highest first; the first match wins.
func TierFor(accuracyPercent int) Tier {
	switch {
	case accuracyPercent >= 90:
		return TierTop
	case accuracyPercent >= 70:
		return TierHigh
	case accuracyPercent >= 50:
		return TierMid
	default:
		return TierLow
	}
}
