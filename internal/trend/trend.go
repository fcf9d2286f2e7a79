package trend

import "llm-stock-analyst/internal/types"

// Bands are the relative SMA-gap thresholds separating strength grades.
// The zero value selects 0.5% / 1.5% / 3%.
type Bands struct {
	Neutral  float64 // below this the trend is forced Neutral and Weak
	Moderate float64
	Strong   float64
}

func (b Bands) withDefaults() Bands {
	if b.Neutral <= 0 {
		b.Neutral = 0.005
	}
	if b.Moderate <= 0 {
		b.Moderate = 0.015
	}
	if b.Strong <= 0 {
		b.Strong = 0.03
	}
	return b
}

// Classify labels trend direction and strength from the last SMA50 and SMA200
// values. Either value missing, or a zero SMA200, yields Unknown. Direction
// follows the sign of the SMA gap; strength follows the gap's magnitude
// relative to SMA200, with a sub-neutral gap forcing Neutral/Weak regardless
// of sign.
func Classify(sma50, sma200 *float64, bands Bands) types.TrendAssessment {
	if sma50 == nil || sma200 == nil {
		return types.TrendAssessment{Trend: "Unknown", Strength: "Unknown", SMA50: sma50, SMA200: sma200}
	}
	if *sma200 == 0 {
		return types.TrendAssessment{Trend: "Unknown", Strength: "Unknown", SMA50: sma50, SMA200: sma200}
	}
	bands = bands.withDefaults()

	direction := "Neutral"
	if *sma50 > *sma200 {
		direction = "Bullish"
	} else if *sma50 < *sma200 {
		direction = "Bearish"
	}

	gap := (*sma50 - *sma200) / *sma200
	if gap < 0 {
		gap = -gap
	}

	strength := "Weak"
	switch {
	case gap < bands.Neutral:
		direction = "Neutral"
	case gap >= bands.Strong:
		strength = "Strong"
	case gap >= bands.Moderate:
		strength = "Moderate"
	}

	return types.TrendAssessment{Trend: direction, Strength: strength, SMA50: sma50, SMA200: sma200}
}
