package scoring

const (
	HighThreshold   = 70
	MediumThreshold = 40
)

// Confidence bands used to colour results.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

// Band returns the display band for a confidence percentage.
func Band(confidence int) string {
	switch {
	case confidence >= HighThreshold:
		return BandHigh
	case confidence >= MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}
