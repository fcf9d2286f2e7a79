package interfaces

import (
	"context"

	"llm-stock-analyst/internal/types"
)

// Narrator turns a Summary into a natural-language market report. Headlines
// are optional context; implementations must never invent numbers beyond the
// summary they receive.
type Narrator interface {
	Narrate(ctx context.Context, summary *types.Summary, headlines []types.Headline) (string, error)
}
