package ann

// Putative impact levels used in the impact field.
const (
	ImpactHigh     = "HIGH"
	ImpactModerate = "MODERATE"
	ImpactLow      = "LOW"
	ImpactModifier = "MODIFIER"
)

// ImpactRank returns numeric rank for impact comparison (higher = more severe).
// Unknown values rank with MODIFIER.
func ImpactRank(impact string) int {
	switch impact {
	case ImpactHigh:
		return 3
	case ImpactModerate:
		return 2
	case ImpactLow:
		return 1
	default:
		return 0
	}
}

// ValidImpact reports whether s is one of the four impact levels.
func ValidImpact(s string) bool {
	switch s {
	case ImpactHigh, ImpactModerate, ImpactLow, ImpactModifier:
		return true
	}
	return false
}
