package analyzer

import "llm-stock-analyst/internal/types"

// assemble folds the per-stage outputs into the wire Summary. Every numeric
// field goes through the nullable extractors so NaN and Inf never reach the
// JSON encoder.
func assemble(ticker string, cols *types.IndicatorColumns, trends map[string]types.TrendAssessment, events []types.PatternEvent, zones *types.ZoneSet, plan types.TradePlan) *types.Summary {
	if events == nil {
		events = []types.PatternEvent{}
	}
	if zones == nil {
		zones = &types.ZoneSet{
			SupportZones:    []types.Zone{},
			ResistanceZones: []types.Zone{},
		}
	}

	snapshot := types.IndicatorSnapshot{
		RSI: types.LastFloat(cols.RSI),
		MACD: types.MACDSnapshot{
			MACD:   types.LastFloat(cols.MACD),
			Signal: types.LastFloat(cols.MACDSignal),
			Hist:   types.LastFloat(cols.MACDHist),
		},
		Bollinger: types.BollingerSnapshot{
			Upper: types.LastFloat(cols.BBUpper),
			Mid:   types.LastFloat(cols.BBMid),
			Lower: types.LastFloat(cols.BBLower),
		},
		ATR:    types.LastFloat(cols.ATR),
		SMA50:  types.LastFloat(cols.SMA50),
		SMA200: types.LastFloat(cols.SMA200),
	}

	return &types.Summary{
		Ticker:            ticker,
		Indicators:        snapshot,
		Trend:             trends,
		Patterns:          events,
		SupportResistance: *zones,
		TradePlan:         plan,
	}
}
