package llmobs

import (
	"context"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/trace"
	"llm-stock-analyst/internal/types"
)

// observableNarrator wraps a Narrator with observability (logging & tracing)
type observableNarrator struct {
	narrator interfaces.Narrator
}

var _ interfaces.Narrator = (*observableNarrator)(nil)

func Wrap(narrator interfaces.Narrator) interfaces.Narrator {
	return &observableNarrator{
		narrator: narrator,
	}
}

func (on *observableNarrator) Narrate(ctx context.Context, summary *types.Summary, headlines []types.Headline) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Narrate")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting narration",
		"ticker", summary.Ticker,
		"headlines", len(headlines),
	)

	report, err := on.narrator.Narrate(ctx, summary, headlines)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get narration", err,
			"ticker", summary.Ticker,
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Narration received",
		"ticker", summary.Ticker,
		"chars", len(report),
	)
	return report, nil
}
