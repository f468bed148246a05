// Package adapter defines the downstream notification boundary.
//
// Adapters publish a submission completion notice after a submission
// resolves. A notice describes the submission; it never carries photo bytes.
package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/justapithecus/photodrop/types"
)

// EventType is the event_type of every SubmissionCompletedEvent.
const EventType = "submission_completed"

// DefaultBackoff is the delay before the first retry. Each further retry
// doubles it.
const DefaultBackoff = 500 * time.Millisecond

// SubmissionCompletedEvent is the payload published when a submission
// resolves.
type SubmissionCompletedEvent struct {
	ContractVersion string `json:"contract_version"`
	EventType       string `json:"event_type"`
	SubmissionID    string `json:"submission_id"`
	Filename        string `json:"filename"`
	MimeType        string `json:"mime_type"`
	Size            int64  `json:"size"`
	Outcome         string `json:"outcome"` // success or failure
	ReceiptID       string `json:"receipt_id,omitempty"`
	ViaFallback     bool   `json:"via_fallback"`
	Reason          string `json:"reason,omitempty"`
	Timestamp       string `json:"timestamp"` // RFC 3339, UTC
	DurationMs      int64  `json:"duration_ms"`
}

// NewEvent builds the completion event for one submission.
// file may be nil when nothing was selected.
func NewEvent(file *types.CandidateFile, outcome *types.Outcome, finished time.Time, took time.Duration) *SubmissionCompletedEvent {
	ev := &SubmissionCompletedEvent{
		ContractVersion: types.ContractVersion,
		EventType:       EventType,
		Timestamp:       finished.UTC().Format(time.RFC3339),
		DurationMs:      took.Milliseconds(),
	}
	if file != nil {
		ev.Filename = file.Name
		ev.MimeType = file.MimeType
		ev.Size = file.Size
	}
	if outcome != nil {
		ev.SubmissionID = outcome.SubmissionID
		ev.Outcome = string(outcome.Status)
		ev.ReceiptID = outcome.ReceiptID
		ev.ViaFallback = outcome.ViaFallback
		ev.Reason = outcome.Reason
	}
	return ev
}

// Adapter publishes submission completion events to a downstream system.
type Adapter interface {
	// Publish sends the event. Must respect context cancellation.
	Publish(ctx context.Context, event *SubmissionCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}

// Retry runs attempt up to 1+retries times with exponential backoff starting
// at base. It stops early when stop reports the error as permanent.
// The name prefixes every returned error.
func Retry(ctx context.Context, name string, retries int, base time.Duration, attempt func(context.Context) error, stop func(error) bool) error {
	var lastErr error
	attempts := 1 + retries

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: context canceled: %w", name, err)
		}

		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * base
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: context canceled during backoff: %w", name, ctx.Err())
			case <-time.After(backoff):
			}
		}

		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}
		if stop != nil && stop(lastErr) {
			return fmt.Errorf("%s: non-retriable error: %w", name, lastErr)
		}
	}

	return fmt.Errorf("%s: failed after %d attempts: %w", name, attempts, lastErr)
}
