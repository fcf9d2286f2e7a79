package noop

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/types"
)

// NoopNarrator is the fallback narrator used when no LLM is configured. It
// renders a plain deterministic report straight from the computed summary, so
// the pipeline stays useful offline.
type NoopNarrator struct{}

var _ interfaces.Narrator = (*NoopNarrator)(nil)

func NewNoopNarrator() *NoopNarrator {
	return &NoopNarrator{}
}

func (n *NoopNarrator) Narrate(ctx context.Context, summary *types.Summary, headlines []types.Headline) (string, error) {
	logger.Debug(ctx, "Noop narrator called", "ticker", summary.Ticker)

	var b strings.Builder
	fmt.Fprintf(&b, "Technical report for %s\n\n", summary.Ticker)

	b.WriteString("Trend:\n")
	tfs := make([]string, 0, len(summary.Trend))
	for tf := range summary.Trend {
		tfs = append(tfs, tf)
	}
	sort.Strings(tfs)
	for _, tf := range tfs {
		t := summary.Trend[tf]
		fmt.Fprintf(&b, "  %s: %s (%s)\n", tf, t.Trend, t.Strength)
	}

	b.WriteString("Indicators:\n")
	fmt.Fprintf(&b, "  RSI: %s\n", fmtVal(summary.Indicators.RSI))
	fmt.Fprintf(&b, "  MACD: %s (signal %s)\n", fmtVal(summary.Indicators.MACD.MACD), fmtVal(summary.Indicators.MACD.Signal))
	fmt.Fprintf(&b, "  ATR: %s\n", fmtVal(summary.Indicators.ATR))

	if len(summary.Patterns) == 0 {
		b.WriteString("Patterns: none detected\n")
	} else {
		b.WriteString("Patterns:\n")
		for _, p := range summary.Patterns {
			fmt.Fprintf(&b, "  %s on %s\n", p.Pattern, p.Date)
		}
	}

	plan := summary.TradePlan
	if plan.Direction != nil && plan.Entry != nil {
		fmt.Fprintf(&b, "Trade plan: %s entry %.2f", *plan.Direction, *plan.Entry)
		if plan.StopLoss != nil {
			fmt.Fprintf(&b, " stop %.2f", *plan.StopLoss)
		}
		if plan.TakeProfit != nil {
			fmt.Fprintf(&b, " target %.2f", *plan.TakeProfit)
		}
		if plan.RiskReward != nil {
			fmt.Fprintf(&b, " rr %.2f", *plan.RiskReward)
		}
		b.WriteString("\n")
	} else if plan.Note != "" {
		fmt.Fprintf(&b, "Trade plan: unavailable (%s)\n", plan.Note)
	}

	b.WriteString("\nNot financial advice.\n")
	return b.String(), nil
}

func fmtVal(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
