package levels

import (
	"math"
	"sort"

	"llm-stock-analyst/internal/types"
)

// DefaultThreshold is the relative distance inside which two raw levels merge
// into the same zone (0.5%).
const DefaultThreshold = 0.005

// Swings identifies 3-bar local extrema: a swing low is a bar whose low is
// below both neighbours, a swing high the opposite for highs. Interior bars
// only; a series shorter than three bars has no turning points.
func Swings(candles []types.Candle) (support, resistance []float64) {
	support = []float64{}
	resistance = []float64{}
	for i := 1; i < len(candles)-1; i++ {
		if candles[i].Low < candles[i-1].Low && candles[i].Low < candles[i+1].Low {
			support = append(support, candles[i].Low)
		}
		if candles[i].High > candles[i-1].High && candles[i].High > candles[i+1].High {
			resistance = append(resistance, candles[i].High)
		}
	}
	return support, resistance
}

// Cluster merges sorted levels left to right: a level joins the current
// cluster when its relative distance to the last accepted level is below the
// threshold, so a chain of close levels may drift further than the threshold
// from the cluster's first member. Each cluster becomes a zone at the mean of
// its members, graded by hit count.
func Cluster(raw []float64, threshold float64) []types.Zone {
	if len(raw) == 0 {
		return []types.Zone{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	sorted := make([]float64, len(raw))
	copy(sorted, raw)
	sort.Float64s(sorted)

	clusters := [][]float64{{sorted[0]}}
	for _, lvl := range sorted[1:] {
		current := clusters[len(clusters)-1]
		last := current[len(current)-1]
		if math.Abs(lvl-last)/last < threshold {
			clusters[len(clusters)-1] = append(current, lvl)
		} else {
			clusters = append(clusters, []float64{lvl})
		}
	}

	zones := make([]types.Zone, 0, len(clusters))
	for _, cluster := range clusters {
		sum := 0.0
		for _, lvl := range cluster {
			sum += lvl
		}
		zones = append(zones, types.Zone{
			Level:    round4(sum / float64(len(cluster))),
			Strength: grade(len(cluster)),
			Hits:     len(cluster),
		})
	}
	return zones
}

func grade(hits int) string {
	switch {
	case hits >= 4:
		return "very strong"
	case hits >= 2:
		return "strong"
	default:
		return "medium"
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Zones computes graded support and resistance zones for the series. Support
// and resistance are clustered independently with the same threshold. An
// empty series is a contract violation; a valid series too short for swing
// detection yields empty zone lists.
func Zones(candles []types.Candle, threshold float64) (*types.ZoneSet, error) {
	if len(candles) == 0 {
		return nil, &types.InvalidInputError{Field: "High/Low"}
	}
	support, resistance := Swings(candles)
	return &types.ZoneSet{
		SupportZones:    Cluster(support, threshold),
		ResistanceZones: Cluster(resistance, threshold),
	}, nil
}
