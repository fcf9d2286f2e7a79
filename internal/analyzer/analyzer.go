package analyzer

import (
	"context"
	"fmt"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/levels"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/patterns"
	"llm-stock-analyst/internal/store"
	"llm-stock-analyst/internal/strategy"
	"llm-stock-analyst/internal/ta"
	"llm-stock-analyst/internal/trace"
	"llm-stock-analyst/internal/trend"
	"llm-stock-analyst/internal/types"
)

// Analyzer runs one full deterministic computation pass per symbol: indicator
// columns, candlestick patterns, graded zones, a trade plan, and the
// per-timeframe trend map, assembled into a Summary. It holds no mutable
// state between calls, so one Analyzer may serve concurrent symbols.
type Analyzer struct {
	cfg  *store.Config
	data interfaces.Provider
}

var _ interfaces.Analyzer = (*Analyzer)(nil)

func New(cfg *store.Config, data interfaces.Provider) *Analyzer {
	return &Analyzer{cfg: cfg, data: data}
}

func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*types.Summary, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	primaryTF := a.primaryTimeframe()
	candles, err := a.data.History(ctx, symbol, primaryTF, a.cfg.HistoryBars)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history for %s: %w", primaryTF, symbol, err)
	}
	if len(candles) == 0 {
		return nil, &types.InvalidInputError{Field: "Close"}
	}
	logger.Debug(ctx, "History fetched", "symbol", symbol, "timeframe", primaryTF, "bars", len(candles))

	cols, err := ta.Compute(candles, a.taConfig())
	if err != nil {
		return nil, err
	}

	lookback := candles
	if n := a.cfg.Patterns.Lookback; n > 0 && len(candles) > n {
		lookback = candles[len(candles)-n:]
	}
	events := patterns.Detect(lookback, patterns.Config{
		UpperWickMaxRatio: a.cfg.Patterns.UpperWickMaxRatio,
		LowerWickMinRatio: a.cfg.Patterns.LowerWickMinRatio,
	})

	// Zones come from the same recent window as patterns, so the plan's
	// stop and target reflect current structure rather than years-old swings.
	zones, err := levels.Zones(lookback, a.cfg.Levels.ClusterThreshold)
	if err != nil {
		return nil, err
	}

	lastClose := candles[len(candles)-1].Close
	plan := strategy.BuildPlan(lastClose, zones)

	trends := a.classifyTimeframes(ctx, symbol, cols)

	summary := assemble(symbol, cols, trends, events, zones, plan)

	logger.Analysis(ctx, symbol, trends[primaryTF].Trend, len(events),
		"support_zones", len(zones.SupportZones),
		"resistance_zones", len(zones.ResistanceZones),
	)
	direction := "NONE"
	if plan.Direction != nil {
		direction = *plan.Direction
	}
	rr := 0.0
	if plan.RiskReward != nil {
		rr = *plan.RiskReward
	}
	logger.Plan(ctx, symbol, direction, rr, plan.Note)

	return summary, nil
}

func (a *Analyzer) primaryTimeframe() string {
	if len(a.cfg.Timeframes) > 0 {
		return a.cfg.Timeframes[0]
	}
	return "1D"
}

// classifyTimeframes labels the trend per configured timeframe. The primary
// frame reuses the already computed SMA columns; secondary frames fetch their
// own series and degrade to Unknown when unavailable.
func (a *Analyzer) classifyTimeframes(ctx context.Context, symbol string, primary *types.IndicatorColumns) map[string]types.TrendAssessment {
	bands := trend.Bands{
		Neutral:  a.cfg.Trend.NeutralBand,
		Moderate: a.cfg.Trend.ModerateBand,
		Strong:   a.cfg.Trend.StrongBand,
	}

	trends := map[string]types.TrendAssessment{
		a.primaryTimeframe(): trend.Classify(types.LastFloat(primary.SMA50), types.LastFloat(primary.SMA200), bands),
	}

	secondary := a.cfg.Timeframes
	if len(secondary) > 0 {
		secondary = secondary[1:]
	}
	for _, tf := range secondary {
		candles, err := a.data.History(ctx, symbol, tf, a.cfg.HistoryBars)
		if err != nil || len(candles) == 0 {
			if err != nil {
				logger.Warn(ctx, "Timeframe unavailable, trend unknown", "symbol", symbol, "timeframe", tf, "error", err)
			}
			trends[tf] = types.TrendAssessment{Trend: "Unknown", Strength: "Unknown"}
			continue
		}
		closes := make([]float64, len(candles))
		for i, c := range candles {
			closes[i] = c.Close
		}
		fast, slow := a.cfg.Indicators.SMAFast, a.cfg.Indicators.SMASlow
		if fast <= 0 {
			fast = 50
		}
		if slow <= 0 {
			slow = 200
		}
		sma50 := types.LastFloat(ta.SMA(closes, fast))
		sma200 := types.LastFloat(ta.SMA(closes, slow))
		trends[tf] = trend.Classify(sma50, sma200, bands)
	}
	return trends
}

func (a *Analyzer) taConfig() ta.Config {
	ind := a.cfg.Indicators
	return ta.Config{
		RSIWindow:  ind.RSIWindow,
		MACDFast:   ind.MACDFast,
		MACDSlow:   ind.MACDSlow,
		MACDSignal: ind.MACDSignal,
		BBWindow:   ind.BBWindow,
		BBStdDev:   ind.BBStdDev,
		ATRWindow:  ind.ATRWindow,
		SMAFast:    ind.SMAFast,
		SMASlow:    ind.SMASlow,
	}
}
