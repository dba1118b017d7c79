package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordMarketRun(_ *MarketRunRecord) error { return nil }
func (n *NoopRecorder) RecordNewsRun(_ *NewsRunRecord) error     { return nil }
func (n *NoopRecorder) RecordOutcome(_ *OutcomeRecord) error     { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
