package ta

import (
	"math"

	"llm-stock-analyst/internal/types"
)

// Config carries the indicator windows for one computation. The zero value
// selects the standard parameters (RSI 14, MACD 12/26/9, Bollinger 20/2,
// ATR 14, SMA 50/200); callers running with different parameters pass their
// own Config, so concurrent computations never share state.
type Config struct {
	RSIWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	BBWindow   int
	BBStdDev   float64
	ATRWindow  int
	SMAFast    int
	SMASlow    int
}

func (c Config) withDefaults() Config {
	if c.RSIWindow <= 0 {
		c.RSIWindow = 14
	}
	if c.MACDFast <= 0 {
		c.MACDFast = 12
	}
	if c.MACDSlow <= 0 {
		c.MACDSlow = 26
	}
	if c.MACDSignal <= 0 {
		c.MACDSignal = 9
	}
	if c.BBWindow <= 0 {
		c.BBWindow = 20
	}
	if c.BBStdDev <= 0 {
		c.BBStdDev = 2.0
	}
	if c.ATRWindow <= 0 {
		c.ATRWindow = 14
	}
	if c.SMAFast <= 0 {
		c.SMAFast = 50
	}
	if c.SMASlow <= 0 {
		c.SMASlow = 200
	}
	return c
}

// Compute derives every indicator column from the candle series. The series
// is never shrunk: each output column has exactly one value per bar. An empty
// series is a contract violation; a short-but-valid series degrades to the
// per-indicator neutral defaults instead of failing.
func Compute(candles []types.Candle, cfg Config) (*types.IndicatorColumns, error) {
	if len(candles) == 0 {
		return nil, &types.InvalidInputError{Field: "Close"}
	}
	cfg = cfg.withDefaults()

	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
		highs[i] = c.High
		lows[i] = c.Low
	}

	cols := &types.IndicatorColumns{
		RSI:    RSI(closes, cfg.RSIWindow),
		ATR:    ATR(highs, lows, closes, cfg.ATRWindow),
		SMA50:  SMA(closes, cfg.SMAFast),
		SMA200: SMA(closes, cfg.SMASlow),
	}
	cols.MACD, cols.MACDSignal, cols.MACDHist = MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	cols.BBUpper, cols.BBMid, cols.BBLower = Bollinger(closes, cfg.BBWindow, cfg.BBStdDev)
	return cols, nil
}

// RSI computes the Relative Strength Index with Wilder smoothing over the
// positive and negative close-to-close deltas. Bars inside the warm-up window
// default to the neutral 50, and the result is clamped to [0, 100]. A series
// with fewer than two bars is 50 throughout.
func RSI(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) < 2 {
		for i := range out {
			out[i] = 50
		}
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	avgGain := wilderEMA(gains, window)
	avgLoss := wilderEMA(losses, window)
	for i := range out {
		g, l := avgGain[i], avgLoss[i]
		switch {
		case math.IsNaN(g) || math.IsNaN(l):
			out[i] = math.NaN()
		case l == 0 && g == 0:
			// 0/0: indeterminate strength, resolved by the neutral default.
			out[i] = math.NaN()
		case l == 0:
			// Ratio forced to 100 instead of dividing by zero.
			out[i] = 100 - 100/(1+100.0)
		default:
			rs := g / l
			out[i] = 100 - 100/(1+rs)
		}
	}
	for i, v := range out {
		if math.IsNaN(v) {
			v = 50
		}
		out[i] = clamp(v, 0, 100)
	}
	return out
}

// MACD computes the MACD line (fast EMA minus slow EMA of close), its signal
// EMA, and the histogram (line minus signal). A series shorter than the slow
// span yields all-zero columns.
func MACD(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	n := len(closes)
	if n < slow {
		return make([]float64, n), make([]float64, n), make([]float64, n)
	}

	fastEMA := spanEMA(closes, fast)
	slowEMA := spanEMA(closes, slow)
	line = make([]float64, n)
	for i := range line {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	sig = spanEMA(line, signal)
	hist = make([]float64, n)
	for i := range hist {
		hist[i] = line[i] - sig[i]
	}
	fillChain(line, 0)
	fillChain(sig, 0)
	fillChain(hist, 0)
	return line, sig, hist
}

// Bollinger computes the rolling mean of close and bands at k population
// standard deviations around it. Early bars use a shorter effective window;
// any unresolvable position falls back to the overall series mean.
func Bollinger(closes []float64, window int, k float64) (upper, mid, lower []float64) {
	m := rollingMean(closes, window)
	sd := rollingStd(closes, window)

	n := len(closes)
	upper = make([]float64, n)
	lower = make([]float64, n)
	for i := range closes {
		upper[i] = m[i] + k*sd[i]
		lower[i] = m[i] - k*sd[i]
	}

	def := mean(closes)
	fillChain(upper, def)
	fillChain(m, def)
	fillChain(lower, def)
	return upper, m, lower
}

// ATR computes the Wilder-smoothed average true range. The first bar's true
// range is high minus low (no previous close exists); warm-up bars take the
// first computed ATR value, and the result is floored at zero. Fewer than two
// bars yields all zeros.
func ATR(highs, lows, closes []float64, window int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	if n < 2 || len(highs) != n || len(lows) != n {
		return out
	}

	tr := make([]float64, n)
	tr[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	out = wilderEMA(tr, window)
	def := 0.0
	for _, v := range out {
		if !math.IsNaN(v) {
			def = v
			break
		}
	}
	fillChain(out, def)
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		}
	}
	return out
}

// SMA is a simple rolling mean; early bars use the bars available so far.
func SMA(closes []float64, window int) []float64 {
	return rollingMean(closes, window)
}
