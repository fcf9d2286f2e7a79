package interfaces

import (
	"context"

	"llm-stock-analyst/internal/types"
)

// Provider supplies historical OHLCV series. The engine itself never fetches
// data; a Provider implementation is the external collaborator that does.
type Provider interface {
	// History returns up to bars candles for the symbol at the given
	// timeframe ("1D", "4H", "1H"), oldest first.
	History(ctx context.Context, symbol, timeframe string, bars int) ([]types.Candle, error)
}
