package model

// Provenance indicates how a narrative was produced.
type Provenance string

const (
	ProvenanceAI       Provenance = "ai"
	ProvenanceFallback Provenance = "fallback"
)

// Narrative is natural-language text describing a quote or news item.
// Provenance drives the attribution footer in rendered output.
type Narrative struct {
	Text       string
	Provenance Provenance
}
