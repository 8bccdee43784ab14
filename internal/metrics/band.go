package metrics

// Band is the categorical rating of a demographic equity index.
type Band string

// Equity bands, best first.
const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Lower bounds of the equity bands; each bound is inclusive.
const (
	excellentFloor = 0.95
	goodFloor      = 0.85
	fairFloor      = 0.75
)

// EquityBand rates an equity index. Every input maps to exactly one band;
// values below 0.75, negatives and NaN are BandPoor.
func EquityBand(v float64) Band {
	switch {
	case v >= excellentFloor:
		return BandExcellent
	case v >= goodFloor:
		return BandGood
	case v >= fairFloor:
		return BandFair
	default:
		return BandPoor
	}
}

// Bands returns every band from best to worst.
func Bands() []Band {
	return []Band{BandExcellent, BandGood, BandFair, BandPoor}
}

// String returns the band name.
func (b Band) String() string {
	return string(b)
}
