package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ETCTracker/internal/compose"
	"ETCTracker/internal/logger"
	"ETCTracker/internal/market"
	"ETCTracker/internal/model"
	"ETCTracker/internal/narrative"
	"ETCTracker/internal/news"
	"ETCTracker/internal/publish"
	"ETCTracker/internal/recorder"
	"ETCTracker/internal/store"
)

// StageStatus classifies one stage's outcome. The orchestrator's
// continue-vs-abort decisions read this data instead of inspecting errors.
type StageStatus string

const (
	StageOK       StageStatus = "ok"
	StageDegraded StageStatus = "degraded" // fallback path taken
	StageSkipped  StageStatus = "skipped"
	StageFatal    StageStatus = "fatal"
)

// StageResult is one stage's outcome within a run.
type StageResult struct {
	Stage  string
	Status StageStatus
	Detail string
}

// RunReport collects everything one run produced.
type RunReport struct {
	RunID        string
	Stages       []StageResult
	ArtifactPath string
	Outcomes     []model.PublishOutcome
}

func (r *RunReport) add(stage string, status StageStatus, detail string) {
	r.Stages = append(r.Stages, StageResult{Stage: stage, Status: status, Detail: detail})
}

// Degraded reports whether any stage fell back from its primary path.
func (r *RunReport) Degraded() bool {
	for _, s := range r.Stages {
		if s.Status == StageDegraded {
			return true
		}
	}
	return false
}

// Pipeline wires the stages of a run together. News and Generator may be nil:
// a missing credential disables exactly the stage that depends on it.
type Pipeline struct {
	AssetID   string
	NewsQuery string
	NewsMax   int

	Market     market.Fetcher
	News       news.Fetcher
	Generator  narrative.Generator
	Store      *store.FileStore
	Dispatcher *publish.Dispatcher
	Recorder   recorder.Recorder

	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// RunMarket executes the daily market report run: quote → narrative →
// compose → store → publish → record. Only the quote fetch and the artifact
// write can abort the run.
func (p *Pipeline) RunMarket(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString()}
	now := p.now()

	logger.Log.Infof("market run %s: fetching quote for %s", report.RunID, p.AssetID)
	quote, err := p.Market.Fetch(ctx, p.AssetID)
	if err != nil {
		report.add("fetch", StageFatal, err.Error())
		p.recordMarket(report, nil, string(model.ProvenanceFallback), "failed", false)
		return report, fmt.Errorf("fetch quote: %w", err)
	}
	report.add("fetch", StageOK, fmt.Sprintf("%.4f USD, 24h %+.2f%%", quote.PriceUSD, quote.Change24h))
	logger.Log.Infof("quote: %.4f USD | 24h %+.2f%%", quote.PriceUSD, quote.Change24h)

	analysis := p.marketNarrative(ctx, quote, report)

	doc := compose.MarketArticle(quote, analysis, now)

	path, skipped, err := p.Store.Store(store.KindMarketReport, now, doc.Markdown)
	if err != nil {
		report.add("store", StageFatal, err.Error())
		p.recordMarket(report, quote, string(analysis.Provenance), "failed", false)
		return report, fmt.Errorf("store artifact: %w", err)
	}
	report.ArtifactPath = path
	if skipped {
		report.add("store", StageSkipped, path)
		logger.Log.Infof("same-day artifact already stored — channels will still be attempted")
	} else {
		report.add("store", StageOK, path)
	}

	report.Outcomes = p.Dispatcher.Publish(ctx, doc)
	report.add("publish", StageOK, outcomeSummary(report.Outcomes))

	status := "ok"
	if report.Degraded() {
		status = "degraded"
	}
	p.recordMarket(report, quote, string(analysis.Provenance), status, skipped)
	logger.Log.Infof("market run %s finished: %s", report.RunID, status)
	return report, nil
}

// marketNarrative tries the generative service once and degrades to the
// deterministic analysis on any failure. The provenance tag records which
// path produced the text.
func (p *Pipeline) marketNarrative(ctx context.Context, quote *model.Quote, report *RunReport) model.Narrative {
	if p.Generator == nil {
		logger.Log.Info("no generator configured — using deterministic analysis")
		report.add("narrative", StageOK, "deterministic analysis (generator not configured)")
		return model.Narrative{Text: narrative.BasicAnalysis(quote), Provenance: model.ProvenanceFallback}
	}

	logger.Log.Info("generating AI market analysis")
	text, err := p.Generator.MarketAnalysis(ctx, quote)
	if err != nil {
		logger.Log.Warnf("AI analysis failed: %v — using deterministic analysis", err)
		report.add("narrative", StageDegraded, err.Error())
		return model.Narrative{Text: narrative.BasicAnalysis(quote), Provenance: model.ProvenanceFallback}
	}
	report.add("narrative", StageOK, "ai analysis generated")
	return model.Narrative{Text: text, Provenance: model.ProvenanceAI}
}

// RunNews executes the news digest run. The whole run is soft: an empty
// batch skips it, a failed reformulation keeps the item's raw description.
func (p *Pipeline) RunNews(ctx context.Context) (*RunReport, error) {
	report := &RunReport{RunID: uuid.NewString()}
	now := p.now()

	if p.News == nil {
		logger.Log.Info("news provider not configured — news run disabled")
		report.add("fetch", StageSkipped, "news provider not configured")
		return report, nil
	}

	logger.Log.Infof("news run %s: fetching up to %d items for %q", report.RunID, p.NewsMax, p.NewsQuery)
	items := p.News.Fetch(ctx, p.NewsQuery, p.NewsMax)
	if len(items) == 0 {
		logger.Log.Warn("no news items found — news run skipped")
		report.add("fetch", StageSkipped, "no news items")
		p.recordNews(report, 0, 0, "skipped")
		return report, nil
	}
	report.add("fetch", StageOK, fmt.Sprintf("%d items", len(items)))

	entries := make([]compose.DigestEntry, 0, len(items))
	reformulated := 0
	degraded := false
	for _, item := range items {
		entry := compose.DigestEntry{Item: item}
		if p.Generator != nil && item.Title != "" && item.Description != "" {
			text, err := p.Generator.Reformulate(ctx, item.Title, item.Description)
			if err != nil {
				logger.Log.Warnf("reformulation failed for %q: %v — keeping raw description", shorten(item.Title), err)
				degraded = true
			} else {
				entry.Summary = text
				entry.AIGenerated = true
				reformulated++
				logger.Log.Infof("reformulated: %s", shorten(item.Title))
			}
		}
		entries = append(entries, entry)
	}
	switch {
	case degraded:
		report.add("narrative", StageDegraded, fmt.Sprintf("%d/%d reformulated", reformulated, len(items)))
	case p.Generator == nil:
		report.add("narrative", StageSkipped, "generator not configured, raw descriptions kept")
	default:
		report.add("narrative", StageOK, fmt.Sprintf("%d/%d reformulated", reformulated, len(items)))
	}

	doc := compose.NewsDigest(entries, now)

	path, skipped, err := p.Store.Store(store.KindNewsDigest, now, doc.Markdown)
	if err != nil {
		report.add("store", StageFatal, err.Error())
		p.recordNews(report, len(items), reformulated, "failed")
		return report, fmt.Errorf("store artifact: %w", err)
	}
	report.ArtifactPath = path
	if skipped {
		report.add("store", StageSkipped, path)
	} else {
		report.add("store", StageOK, path)
	}

	status := "ok"
	if degraded {
		status = "degraded"
	}
	p.recordNews(report, len(items), reformulated, status)
	logger.Log.Infof("news run %s finished: %s", report.RunID, status)
	return report, nil
}

func (p *Pipeline) recordMarket(report *RunReport, quote *model.Quote, provenance, status string, skipped bool) {
	rec := &recorder.MarketRunRecord{
		RunID:        report.RunID,
		Provenance:   provenance,
		ArtifactPath: report.ArtifactPath,
		Skipped:      skipped,
		Status:       status,
	}
	if quote != nil {
		rec.PriceUSD = quote.PriceUSD
		rec.Change24h = quote.Change24h
	}
	if err := p.Recorder.RecordMarketRun(rec); err != nil {
		logger.Log.Errorf("record market run: %v", err)
	}
	for _, o := range report.Outcomes {
		if err := p.Recorder.RecordOutcome(&recorder.OutcomeRecord{
			RunID:    report.RunID,
			Channel:  o.Channel,
			Status:   string(o.Status),
			RemoteID: o.RemoteID,
			Error:    o.Err,
		}); err != nil {
			logger.Log.Errorf("record publish outcome: %v", err)
		}
	}
}

func (p *Pipeline) recordNews(report *RunReport, itemCount, reformulated int, status string) {
	if err := p.Recorder.RecordNewsRun(&recorder.NewsRunRecord{
		RunID:        report.RunID,
		ItemCount:    itemCount,
		Reformulated: reformulated,
		ArtifactPath: report.ArtifactPath,
		Status:       status,
	}); err != nil {
		logger.Log.Errorf("record news run: %v", err)
	}
}

func outcomeSummary(outcomes []model.PublishOutcome) string {
	var ok, failed, skipped int
	for _, o := range outcomes {
		switch o.Status {
		case model.PublishOK:
			ok++
		case model.PublishFailed:
			failed++
		case model.PublishSkipped:
			skipped++
		}
	}
	return fmt.Sprintf("%d published, %d failed, %d skipped", ok, failed, skipped)
}

func shorten(s string) string {
	if len(s) > 60 {
		return s[:60] + "…"
	}
	return s
}
