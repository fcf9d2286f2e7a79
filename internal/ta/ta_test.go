package ta

import (
	"errors"
	"math"
	"testing"

	"llm-stock-analyst/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func flatCandles(n int, price float64) []types.Candle {
	candles := make([]types.Candle, n)
	for i := range candles {
		candles[i] = types.Candle{
			Ts:    int64(i) * 86400,
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
		}
	}
	return candles
}

func risingCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

// Deterministic wobble series for bounds checks.
func wobbleCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)*0.7) + float64(i%7)
	}
	return closes
}

func TestComputeEmptySeries(t *testing.T) {
	_, err := Compute(nil, Config{})
	if err == nil {
		t.Fatal("expected error for empty series")
	}
	var invalid *types.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %T: %v", err, err)
	}
	if invalid.Field != "Close" {
		t.Errorf("expected Close field in error, got %q", invalid.Field)
	}
}

func TestComputeColumnLengths(t *testing.T) {
	candles := flatCandles(60, 10)
	cols, err := Compute(candles, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, col := range map[string][]float64{
		"RSI": cols.RSI, "MACD": cols.MACD, "MACD_Signal": cols.MACDSignal,
		"MACD_Hist": cols.MACDHist, "BB_UPPER": cols.BBUpper, "BB_MID": cols.BBMid,
		"BB_LOWER": cols.BBLower, "ATR": cols.ATR, "SMA50": cols.SMA50, "SMA200": cols.SMA200,
	} {
		if len(col) != len(candles) {
			t.Errorf("%s has %d values, want %d", name, len(col), len(candles))
		}
		for i, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s[%d] is not finite: %v", name, i, v)
			}
		}
	}
}

func TestFlatSeriesSettles(t *testing.T) {
	candles := flatCandles(300, 10)
	cols, err := Compute(candles, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := len(candles) - 1
	if !almostEqual(cols.RSI[last], 50) {
		t.Errorf("flat series RSI = %v, want 50", cols.RSI[last])
	}
	if !almostEqual(cols.MACDHist[last], 0) {
		t.Errorf("flat series MACD_Hist = %v, want 0", cols.MACDHist[last])
	}
	if !almostEqual(cols.BBUpper[last]-cols.BBLower[last], 0) {
		t.Errorf("flat series band width = %v, want 0", cols.BBUpper[last]-cols.BBLower[last])
	}
	if !almostEqual(cols.BBMid[last], 10) {
		t.Errorf("flat series BB_MID = %v, want 10", cols.BBMid[last])
	}
	if !almostEqual(cols.ATR[last], 0) {
		t.Errorf("flat series ATR = %v, want 0", cols.ATR[last])
	}
}

func TestRSIBounds(t *testing.T) {
	for _, closes := range [][]float64{risingCloses(300), wobbleCloses(300)} {
		for i, v := range RSI(closes, 14) {
			if v < 0 || v > 100 {
				t.Fatalf("RSI[%d] = %v, out of [0,100]", i, v)
			}
		}
	}
}

func TestRSIRisingSeries(t *testing.T) {
	rsi := RSI(risingCloses(300), 14)
	for i := 200; i < 300; i++ {
		if rsi[i] < 90 {
			t.Errorf("RSI[%d] = %v for monotonically rising closes, want near 100", i, rsi[i])
		}
	}
}

func TestRSIWarmupNeutral(t *testing.T) {
	rsi := RSI(risingCloses(300), 14)
	for i := 0; i < 13; i++ {
		if !almostEqual(rsi[i], 50) {
			t.Errorf("RSI[%d] = %v inside warm-up, want 50", i, rsi[i])
		}
	}
}

func TestRSIShortSeries(t *testing.T) {
	for _, closes := range [][]float64{nil, {10}} {
		for i, v := range RSI(closes, 14) {
			if !almostEqual(v, 50) {
				t.Errorf("RSI[%d] = %v for %d-bar series, want 50", i, v, len(closes))
			}
		}
	}
}

func TestMACDShortSeriesZero(t *testing.T) {
	line, sig, hist := MACD(risingCloses(20), 12, 26, 9)
	for i := range line {
		if line[i] != 0 || sig[i] != 0 || hist[i] != 0 {
			t.Fatalf("MACD outputs at %d = (%v, %v, %v) for series shorter than slow span, want zeros",
				i, line[i], sig[i], hist[i])
		}
	}
}

func TestMACDHistRisingSeries(t *testing.T) {
	_, _, hist := MACD(risingCloses(300), 12, 26, 9)
	for i := 150; i < 300; i++ {
		if hist[i] < -1e-9 {
			t.Errorf("MACD_Hist[%d] = %v for rising closes, want non-negative", i, hist[i])
		}
	}
}

func TestBollingerBandsSymmetric(t *testing.T) {
	closes := wobbleCloses(120)
	upper, mid, lower := Bollinger(closes, 20, 2)
	for i := range closes {
		if !almostEqual(upper[i]-mid[i], mid[i]-lower[i]) {
			t.Errorf("bands asymmetric at %d: upper-mid=%v mid-lower=%v", i, upper[i]-mid[i], mid[i]-lower[i])
		}
		if upper[i] < lower[i] {
			t.Errorf("upper band below lower band at %d", i)
		}
	}
}

func TestBollingerEarlyBarsUseShortWindow(t *testing.T) {
	closes := []float64{10, 12, 14}
	_, mid, _ := Bollinger(closes, 20, 2)
	if !almostEqual(mid[0], 10) || !almostEqual(mid[1], 11) || !almostEqual(mid[2], 12) {
		t.Errorf("BB_MID = %v, want cumulative means [10 11 12]", mid)
	}
}

func TestATRNonNegative(t *testing.T) {
	closes := wobbleCloses(300)
	highs := make([]float64, len(closes))
	lows := make([]float64, len(closes))
	for i, c := range closes {
		highs[i] = c + 2
		lows[i] = c - 2
	}
	for i, v := range ATR(highs, lows, closes, 14) {
		if v < 0 {
			t.Fatalf("ATR[%d] = %v, want >= 0", i, v)
		}
	}
}

func TestATRWarmupBackfilled(t *testing.T) {
	closes := wobbleCloses(60)
	highs := make([]float64, len(closes))
	lows := make([]float64, len(closes))
	for i, c := range closes {
		highs[i] = c + 1.5
		lows[i] = c - 1.5
	}
	atr := ATR(highs, lows, closes, 14)
	// Bars before the warm-up window take the first computed value.
	for i := 0; i < 13; i++ {
		if !almostEqual(atr[i], atr[13]) {
			t.Errorf("ATR[%d] = %v, want first computed value %v", i, atr[i], atr[13])
		}
	}
}

func TestATRShortSeriesZero(t *testing.T) {
	for i, v := range ATR([]float64{11}, []float64{9}, []float64{10}, 14) {
		if v != 0 {
			t.Errorf("ATR[%d] = %v for 1-bar series, want 0", i, v)
		}
	}
}

func TestSMAShortWindowFallback(t *testing.T) {
	sma := SMA([]float64{2, 4, 6}, 2)
	want := []float64{2, 3, 5}
	for i := range want {
		if !almostEqual(sma[i], want[i]) {
			t.Errorf("SMA[%d] = %v, want %v", i, sma[i], want[i])
		}
	}
}

func TestSMAWindowLargerThanSeries(t *testing.T) {
	sma := SMA([]float64{2, 4, 6}, 50)
	want := []float64{2, 3, 4}
	for i := range want {
		if !almostEqual(sma[i], want[i]) {
			t.Errorf("SMA[%d] = %v, want %v", i, sma[i], want[i])
		}
	}
}

func TestFillChain(t *testing.T) {
	nan := math.NaN()
	// Interior gaps backfill from the next defined value before forward
	// fill gets a chance to run.
	got := fillChain([]float64{nan, nan, 3, nan, 5, nan}, -1)
	want := []float64{3, 3, 3, 5, 5, 5}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("fillChain[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	got = fillChain([]float64{nan, nan}, 7)
	for i, v := range got {
		if !almostEqual(v, 7) {
			t.Errorf("fillChain default[%d] = %v, want 7", i, v)
		}
	}
}
