package analyzerobs

import (
	"context"
	"time"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/trace"
	"llm-stock-analyst/internal/types"
)

type observableAnalyzer struct {
	analyzer interfaces.Analyzer
}

var _ interfaces.Analyzer = (*observableAnalyzer)(nil)

func Wrap(a interfaces.Analyzer) interfaces.Analyzer {
	return &observableAnalyzer{
		analyzer: a,
	}
}

func (oa *observableAnalyzer) Analyze(ctx context.Context, symbol string) (*types.Summary, error) {
	ctx, span := trace.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting analysis pass",
		"symbol", symbol,
	)

	summary, err := oa.analyzer.Analyze(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Analysis pass failed", err,
			"symbol", symbol,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Analysis pass completed",
		"symbol", symbol,
		"patterns", len(summary.Patterns),
		"support_zones", len(summary.SupportResistance.SupportZones),
		"resistance_zones", len(summary.SupportResistance.ResistanceZones),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return summary, nil
}
