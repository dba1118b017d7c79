package recorder

// MarketRunRecord holds the result of one market run.
type MarketRunRecord struct {
	RunID        string
	PriceUSD     float64
	Change24h    float64
	Provenance   string // "ai" or "fallback"
	ArtifactPath string
	Skipped      bool // a same-day artifact already existed
	Status       string
}

// NewsRunRecord holds the result of one news run.
type NewsRunRecord struct {
	RunID        string
	ItemCount    int
	Reformulated int
	ArtifactPath string
	Status       string
}

// OutcomeRecord is one channel's publish outcome within a run. One row per
// attempt, so same-day re-publishes stay auditable.
type OutcomeRecord struct {
	RunID    string
	Channel  string
	Status   string
	RemoteID string
	Error    string
}

// Recorder persists run history for auditing. Recording failures are logged
// by callers, never fatal for the run.
type Recorder interface {
	RecordMarketRun(rec *MarketRunRecord) error
	RecordNewsRun(rec *NewsRunRecord) error
	RecordOutcome(rec *OutcomeRecord) error
	Close() error
}
