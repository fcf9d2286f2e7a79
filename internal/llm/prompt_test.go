package llm

import (
	"strings"
	"testing"

	"llm-stock-analyst/internal/types"
)

func ptr(v float64) *float64 { return &v }

func sampleSummary() *types.Summary {
	direction := "LONG"
	return &types.Summary{
		Ticker: "RELIANCE",
		Indicators: types.IndicatorSnapshot{
			RSI:       ptr(61.2),
			MACD:      types.MACDSnapshot{MACD: ptr(1.4), Signal: ptr(1.1), Hist: ptr(0.3)},
			Bollinger: types.BollingerSnapshot{Upper: ptr(110), Mid: ptr(105), Lower: ptr(100)},
			ATR:       ptr(2.5),
			SMA50:     ptr(104),
			SMA200:    ptr(98),
		},
		Trend: map[string]types.TrendAssessment{
			"1D": {Trend: "Bullish", Strength: "Moderate"},
		},
		Patterns: []types.PatternEvent{{Pattern: "Hammer", Date: "2025-08-20"}},
		SupportResistance: types.ZoneSet{
			SupportZones:    []types.Zone{{Level: 100, Strength: "strong", Hits: 3}},
			ResistanceZones: []types.Zone{{Level: 110, Strength: "medium", Hits: 1}},
		},
		TradePlan: types.TradePlan{
			Direction:  &direction,
			Entry:      ptr(105),
			StopLoss:   ptr(100),
			TakeProfit: ptr(110),
			RiskReward: ptr(1.0),
		},
	}
}

func TestBuildPromptCarriesDocument(t *testing.T) {
	prompt := BuildPrompt(sampleSummary(), nil)

	for _, want := range []string{"RELIANCE", "61.2", "Hammer", "support_zones", "Do NOT fabricate"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Unavailable indicators") {
		t.Error("complete summary should not flag unavailable indicators")
	}
}

func TestBuildPromptFlagsMissingIndicators(t *testing.T) {
	s := sampleSummary()
	s.Indicators.RSI = nil
	s.Indicators.ATR = nil

	prompt := BuildPrompt(s, nil)
	if !strings.Contains(prompt, "Unavailable indicators: RSI, ATR") {
		t.Errorf("prompt does not flag missing indicators:\n%s", prompt)
	}
}

func TestBuildPromptIncludesHeadlines(t *testing.T) {
	headlines := []types.Headline{
		{Title: "Quarterly results beat estimates", Source: "moneycontrol"},
	}

	prompt := BuildPrompt(sampleSummary(), headlines)
	if !strings.Contains(prompt, "Quarterly results beat estimates") {
		t.Error("prompt missing headline")
	}
	if !strings.Contains(prompt, "moneycontrol") {
		t.Error("prompt missing headline source")
	}
}
