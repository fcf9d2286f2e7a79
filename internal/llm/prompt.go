package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"llm-stock-analyst/internal/types"
)

// DefaultSystem is the narrator's role when the config does not set one.
const DefaultSystem = "You are a technical analyst who explains market conditions clearly and concisely, including limitations when data is incomplete."

// BuildPrompt renders the analysis document into the interpretation request.
// The model only ever sees computed values; the instructions forbid inventing
// numbers, and missing values are spelled out as unavailable rather than
// omitted.
func BuildPrompt(summary *types.Summary, headlines []types.Headline) string {
	var b strings.Builder

	doc, _ := json.Marshal(summary)

	fmt.Fprintf(&b, "Generate a professional market interpretation report for %s using ONLY the analysis document below.\n\n", summary.Ticker)
	b.WriteString("Analysis document (JSON):\n")
	b.Write(doc)
	b.WriteString("\n\n")

	if missing := missingIndicators(summary); len(missing) > 0 {
		fmt.Fprintf(&b, "Unavailable indicators: %s. Call these out and explain why the analysis may be inconclusive.\n\n", strings.Join(missing, ", "))
	}

	if len(headlines) > 0 {
		b.WriteString("Recent headlines:\n")
		for _, h := range headlines {
			fmt.Fprintf(&b, "- %s (%s)\n", h.Title, h.Source)
		}
		b.WriteString("\n")
	}

	b.WriteString("Requirements:\n")
	b.WriteString("1. Trend assessment across the provided timeframes (SMA50 vs SMA200)\n")
	b.WriteString("2. Momentum evaluation (MACD, RSI)\n")
	b.WriteString("3. Conflicts or confluence between indicators\n")
	b.WriteString("4. Candlestick pattern commentary, or note that none were detected\n")
	b.WriteString("5. Support and resistance context for the trade plan levels\n")
	b.WriteString("6. Market sentiment label (Bullish / Bearish / Neutral / Inconclusive)\n\n")

	b.WriteString("Report format:\n")
	b.WriteString("- Section 1: Indicator Status (table)\n")
	b.WriteString("- Section 2: Market Sentiment\n")
	b.WriteString("- Section 3: Trade Plan Assessment\n")
	b.WriteString("- Section 4: Summary / Next Steps / Disclaimer\n\n")

	b.WriteString("Do NOT fabricate values. Use only numbers present in the analysis document. ")
	b.WriteString("If the trade plan is unavailable, say why instead of inventing levels. ")
	b.WriteString("End with a one line disclaimer that this is not financial advice.\n")

	return b.String()
}

func missingIndicators(summary *types.Summary) []string {
	var missing []string
	ind := summary.Indicators
	if ind.RSI == nil {
		missing = append(missing, "RSI")
	}
	if ind.MACD.MACD == nil {
		missing = append(missing, "MACD")
	}
	if ind.Bollinger.Mid == nil {
		missing = append(missing, "Bollinger Bands")
	}
	if ind.ATR == nil {
		missing = append(missing, "ATR")
	}
	if ind.SMA50 == nil {
		missing = append(missing, "SMA50")
	}
	if ind.SMA200 == nil {
		missing = append(missing, "SMA200")
	}
	return missing
}
