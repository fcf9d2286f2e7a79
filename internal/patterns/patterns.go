package patterns

import (
	"llm-stock-analyst/internal/types"
)

// Config holds the shape thresholds for single-candle detection.
type Config struct {
	// UpperWickMaxRatio caps the upper wick relative to the body for a hammer.
	UpperWickMaxRatio float64
	// LowerWickMinRatio is the minimum lower wick relative to the body.
	LowerWickMinRatio float64
}

func (c Config) withDefaults() Config {
	if c.UpperWickMaxRatio <= 0 {
		c.UpperWickMaxRatio = 0.25
	}
	if c.LowerWickMinRatio <= 0 {
		c.LowerWickMinRatio = 2.0
	}
	return c
}

// BullishEngulfing reports whether curr fully engulfs a bearish prev in the
// bullish direction: prev closed red, curr closed green, curr opened below
// prev's close and closed above prev's open.
func BullishEngulfing(prev, curr types.Candle) bool {
	return prev.Close < prev.Open &&
		curr.Close > curr.Open &&
		curr.Open < prev.Close &&
		curr.Close > prev.Open
}

// Hammer reports whether the candle has a hammer shape: a long lower wick and
// at most a small upper wick relative to the body. A zero body (doji) is
// indeterminate and never fires. This is a shape-only check; no prior-trend
// context is consulted.
func Hammer(curr types.Candle, cfg Config) bool {
	cfg = cfg.withDefaults()
	body := curr.Close - curr.Open
	if body < 0 {
		body = -body
	}
	if body == 0 {
		return false
	}
	lowerWick := min2(curr.Open, curr.Close) - curr.Low
	upperWick := curr.High - max2(curr.Open, curr.Close)
	return lowerWick >= cfg.LowerWickMinRatio*body &&
		upperWick <= cfg.UpperWickMaxRatio*body
}

// Detect scans the series in chronological order, evaluating each adjacent
// pair for a bullish engulfing and each bar for a hammer. Both may fire on
// the same bar. The input is never mutated; fewer than two bars yields an
// empty result.
func Detect(candles []types.Candle, cfg Config) []types.PatternEvent {
	events := []types.PatternEvent{}
	for i := 1; i < len(candles); i++ {
		prev, curr := candles[i-1], candles[i]
		if BullishEngulfing(prev, curr) {
			events = append(events, types.PatternEvent{Pattern: "Bullish Engulfing", Date: curr.Date()})
		}
		if Hammer(curr, cfg) {
			events = append(events, types.PatternEvent{Pattern: "Hammer", Date: curr.Date()})
		}
	}
	return events
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
