package market

import (
	"context"
	"errors"

	"ETCTracker/internal/model"
)

// ErrDataUnavailable means every fetch attempt failed. There is no meaningful
// fallback for a quote, so this aborts the market run.
var ErrDataUnavailable = errors.New("market data unavailable after all retries")

// ErrMalformedQuote means the provider answered but the payload is missing
// required numeric fields. Retrying would return the same payload.
var ErrMalformedQuote = errors.New("malformed quote payload")

// Fetcher defines the interface for fetching the current quote.
type Fetcher interface {
	Fetch(ctx context.Context, assetID string) (*model.Quote, error)
	Name() string
}
