package domain

// TierScore maps a ranked percentile band to its ordinal score. The top band
// scores highest: 10%이하 is 6, 90%초과 is 1. Unknown bands score 0.
func TierScore(tier string) int {
	switch tier {
	case "10%이하":
		return 6
	case "10-25%":
		return 5
	case "25-50%":
		return 4
	case "50-75%":
		return 3
	case "75-90%":
		return 2
	case "90%초과":
		return 1
	}
	return 0
}
