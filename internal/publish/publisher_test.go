package publish

import (
	"context"
	"errors"
	"testing"

	"ETCTracker/internal/compose"
	"ETCTracker/internal/model"
)

type fakeChannel struct {
	name       string
	configured bool
	err        error
	calls      int
}

func (f *fakeChannel) Name() string     { return f.name }
func (f *fakeChannel) Configured() bool { return f.configured }

func (f *fakeChannel) Publish(_ context.Context, _ compose.Document) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return "id-" + f.name, "https://example.com/" + f.name, nil
}

func TestDispatcher_IsolatesFailures(t *testing.T) {
	a := &fakeChannel{name: "a", configured: true}
	b := &fakeChannel{name: "b", configured: true, err: errors.New("boom")}
	c := &fakeChannel{name: "c", configured: true}
	d := NewDispatcher(a, b, c)

	outcomes := d.Publish(context.Background(), compose.Document{Title: "t"})

	if len(outcomes) != 3 {
		t.Fatalf("expected one outcome per channel, got %d", len(outcomes))
	}
	if outcomes[0].Status != model.PublishOK || outcomes[2].Status != model.PublishOK {
		t.Errorf("channels around the failure must still succeed: %+v", outcomes)
	}
	if outcomes[1].Status != model.PublishFailed || outcomes[1].Err != "boom" {
		t.Errorf("failing channel must be recorded as failed: %+v", outcomes[1])
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Errorf("every configured channel must be attempted exactly once: a=%d b=%d c=%d", a.calls, b.calls, c.calls)
	}
}

func TestDispatcher_SkipsUnconfigured(t *testing.T) {
	a := &fakeChannel{name: "a", configured: false}
	b := &fakeChannel{name: "b", configured: true}
	d := NewDispatcher(a, b)

	outcomes := d.Publish(context.Background(), compose.Document{Title: "t"})

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].Status != model.PublishSkipped {
		t.Errorf("unconfigured channel must be skipped, got %+v", outcomes[0])
	}
	if a.calls != 0 {
		t.Errorf("unconfigured channel must not be attempted, got %d calls", a.calls)
	}
	if outcomes[1].Status != model.PublishOK || outcomes[1].RemoteID != "id-b" {
		t.Errorf("configured channel must still publish: %+v", outcomes[1])
	}
}

func TestDispatcher_NoChannels(t *testing.T) {
	d := NewDispatcher()
	if outcomes := d.Publish(context.Background(), compose.Document{}); len(outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(outcomes))
	}
}
