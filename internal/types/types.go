package types

import (
	"math"
	"time"
)

type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Date renders the candle timestamp as a calendar date.
func (c Candle) Date() string {
	return time.Unix(c.Ts, 0).UTC().Format("2006-01-02")
}

// IndicatorColumns holds one derived value per input bar. Every slice has the
// same length as the candle series it was computed from; warm-up bars carry
// the documented fallback value, never NaN.
type IndicatorColumns struct {
	RSI        []float64
	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64
	BBUpper    []float64
	BBMid      []float64
	BBLower    []float64
	ATR        []float64
	SMA50      []float64
	SMA200     []float64
}

type PatternEvent struct {
	Pattern string `json:"pattern"`
	Date    string `json:"date"`
}

// Zone is a clustered support or resistance level graded by the number of
// historical touches that formed it.
type Zone struct {
	Level    float64 `json:"level"`
	Strength string  `json:"strength"`
	Hits     int     `json:"hits"`
}

type ZoneSet struct {
	SupportZones    []Zone `json:"support_zones"`
	ResistanceZones []Zone `json:"resistance_zones"`
}

// TradePlan is the single actionable setup derived from the last close and the
// nearest graded zones. A nil Direction means no actionable setup; a plan with
// only Note set means no resistance existed above price.
type TradePlan struct {
	Direction  *string  `json:"direction,omitempty"`
	Entry      *float64 `json:"entry,omitempty"`
	StopLoss   *float64 `json:"stop_loss,omitempty"`
	TakeProfit *float64 `json:"take_profit,omitempty"`
	RiskReward *float64 `json:"risk_reward"`
	Note       string   `json:"note"`
}

type TrendAssessment struct {
	Trend    string   `json:"trend"`
	Strength string   `json:"strength"`
	SMA50    *float64 `json:"sma50"`
	SMA200   *float64 `json:"sma200"`
}

type MACDSnapshot struct {
	MACD   *float64 `json:"macd"`
	Signal *float64 `json:"signal"`
	Hist   *float64 `json:"hist"`
}

type BollingerSnapshot struct {
	Upper *float64 `json:"upper"`
	Mid   *float64 `json:"mid"`
	Lower *float64 `json:"lower"`
}

// IndicatorSnapshot carries last-bar indicator values. Nil means the value was
// absent or not finite; finite numbers are reported as-is.
type IndicatorSnapshot struct {
	RSI       *float64          `json:"rsi"`
	MACD      MACDSnapshot      `json:"macd"`
	Bollinger BollingerSnapshot `json:"bollinger"`
	ATR       *float64          `json:"atr"`
	SMA50     *float64          `json:"sma50"`
	SMA200    *float64          `json:"sma200"`
}

// Summary is the single document handed to downstream collaborators (LLM
// narration, report rendering). It is always JSON-marshalable with no NaN or
// Inf anywhere.
type Summary struct {
	Ticker            string                     `json:"ticker"`
	Indicators        IndicatorSnapshot          `json:"indicators"`
	Trend             map[string]TrendAssessment `json:"trend"`
	Patterns          []PatternEvent             `json:"patterns"`
	SupportResistance ZoneSet                    `json:"support_resistance"`
	TradePlan         TradePlan                  `json:"trade_plan"`
}

type Headline struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Float returns a pointer to v, or nil when v is NaN or infinite. It is the
// null-safety boundary between raw computation and the Summary document.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// LastFloat extracts the final value of a column as a nullable float.
func LastFloat(col []float64) *float64 {
	if len(col) == 0 {
		return nil
	}
	return Float(col[len(col)-1])
}
