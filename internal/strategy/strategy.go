package strategy

import (
	"math"

	"llm-stock-analyst/internal/types"
)

// BuildPlan derives the single trade plan from the last close and the graded
// zones. The nearest support is the highest zone strictly below price (zero
// when none exists) and the nearest resistance the lowest zone strictly above
// it. No resistance above price is an expected market state, reported as a
// note-only plan rather than an error. The risk/reward ratio is left
// unchecked here; callers decide whether it is acceptable.
func BuildPlan(lastClose float64, zones *types.ZoneSet) types.TradePlan {
	var supportLevels, resistanceLevels []float64
	if zones != nil {
		for _, z := range zones.SupportZones {
			supportLevels = append(supportLevels, z.Level)
		}
		for _, z := range zones.ResistanceZones {
			resistanceLevels = append(resistanceLevels, z.Level)
		}
	}

	nearestSupport := 0.0
	for _, s := range supportLevels {
		if s < lastClose && s > nearestSupport {
			nearestSupport = s
		}
	}
	nearestResistance := math.Inf(1)
	for _, r := range resistanceLevels {
		if r > lastClose && r < nearestResistance {
			nearestResistance = r
		}
	}

	if math.IsInf(nearestResistance, 1) {
		return types.TradePlan{Note: "No valid resistance zone above price."}
	}

	var rr *float64
	if nearestSupport > 0 {
		ratio := round2((nearestResistance - lastClose) / (lastClose - nearestSupport))
		rr = &ratio
	}

	var direction *string
	if nearestSupport < lastClose && lastClose < nearestResistance {
		long := "LONG"
		direction = &long
	}

	entry := lastClose
	stop := nearestSupport
	target := nearestResistance
	return types.TradePlan{
		Direction:  direction,
		Entry:      &entry,
		StopLoss:   &stop,
		TakeProfit: &target,
		RiskReward: rr,
		Note:       "Trade plan generated based on support/resistance levels.",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
