package narrative

import (
	"context"

	"ETCTracker/internal/model"
)

// Generator produces natural-language text from structured input. A single
// call is attempted per item; implementations never retry, the caller decides
// what to do with a failure (fall back for market analysis, keep the raw
// description for news items).
type Generator interface {
	// MarketAnalysis writes a market commentary for the quote.
	MarketAnalysis(ctx context.Context, q *model.Quote) (string, error)
	// Reformulate rewrites one news item as a short summary.
	Reformulate(ctx context.Context, title, description string) (string, error)
}
