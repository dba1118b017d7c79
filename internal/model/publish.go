package model

// PublishStatus is the result category for one channel attempt.
type PublishStatus string

const (
	PublishOK      PublishStatus = "published"
	PublishFailed  PublishStatus = "failed"
	PublishSkipped PublishStatus = "skipped" // channel not configured
)

// PublishOutcome records one channel's publish attempt. Collected but
// non-blocking: one channel's failure never affects the others.
type PublishOutcome struct {
	Channel  string
	Status   PublishStatus
	RemoteID string
	URL      string
	Err      string
}
