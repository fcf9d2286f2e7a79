package marketdataobs

import (
	"context"

	"llm-stock-analyst/internal/interfaces"
	"llm-stock-analyst/internal/logger"
	"llm-stock-analyst/internal/trace"
	"llm-stock-analyst/internal/types"
)

// observableProvider wraps a Provider with logging and tracing
type observableProvider struct {
	provider interfaces.Provider
}

var _ interfaces.Provider = (*observableProvider)(nil)

func Wrap(provider interfaces.Provider) interfaces.Provider {
	return &observableProvider{
		provider: provider,
	}
}

func (op *observableProvider) History(ctx context.Context, symbol, timeframe string, bars int) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.History")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching history", "symbol", symbol, "timeframe", timeframe, "bars", bars)

	candles, err := op.provider.History(ctx, symbol, timeframe, bars)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch history", err,
			"symbol", symbol,
			"timeframe", timeframe,
			"bars", bars,
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "History fetched successfully",
		"symbol", symbol,
		"timeframe", timeframe,
		"count", len(candles),
	)
	return candles, nil
}
