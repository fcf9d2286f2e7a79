package interfaces

import (
	"context"

	"llm-stock-analyst/internal/types"
)

type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*types.Summary, error)
}
