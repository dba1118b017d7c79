package publish

import (
	"context"

	"ETCTracker/internal/compose"
	"ETCTracker/internal/logger"
	"ETCTracker/internal/model"
)

// Channel is one external publishing target.
type Channel interface {
	Name() string
	// Configured reports whether the channel has everything it needs to
	// attempt a publish. Unconfigured channels are skipped, not failed.
	Configured() bool
	// Publish pushes the document once. No retries: channel writes are
	// idempotency-fragile, a failure is surfaced instead of repeated.
	Publish(ctx context.Context, doc compose.Document) (remoteID, url string, err error)
}

// Dispatcher fans a document out to all channels, isolating each channel's
// failure from the others and from the already-stored artifact.
type Dispatcher struct {
	Channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{Channels: channels}
}

// Publish attempts each channel once and always returns one outcome per
// channel, in channel order.
func (d *Dispatcher) Publish(ctx context.Context, doc compose.Document) []model.PublishOutcome {
	outcomes := make([]model.PublishOutcome, 0, len(d.Channels))
	for _, ch := range d.Channels {
		if !ch.Configured() {
			logger.Log.Infof("channel %s not configured — skipped", ch.Name())
			outcomes = append(outcomes, model.PublishOutcome{
				Channel: ch.Name(),
				Status:  model.PublishSkipped,
			})
			continue
		}

		remoteID, url, err := ch.Publish(ctx, doc)
		if err != nil {
			logger.Log.Warnf("publish to %s failed: %v", ch.Name(), err)
			outcomes = append(outcomes, model.PublishOutcome{
				Channel: ch.Name(),
				Status:  model.PublishFailed,
				Err:     err.Error(),
			})
			continue
		}

		logger.Log.Infof("published to %s (id=%s)", ch.Name(), remoteID)
		outcomes = append(outcomes, model.PublishOutcome{
			Channel:  ch.Name(),
			Status:   model.PublishOK,
			RemoteID: remoteID,
			URL:      url,
		})
	}
	return outcomes
}
