package model

import "time"

// Quote is a snapshot of market metrics for the tracked asset at fetch time.
// Immutable once fetched. Percentage changes default to 0.0 when the provider
// omits them.
type Quote struct {
	PriceUSD          float64
	PriceEUR          float64
	Change24h         float64 // percent
	Change7d          float64
	Change30d         float64
	MarketCapUSD      float64
	Volume24hUSD      float64
	ATHUSD            float64
	ATHDate           string // ISO date, YYYY-MM-DD
	CirculatingSupply float64
	MaxSupply         float64
	FetchedAt         time.Time
}
