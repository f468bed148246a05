// Package submit encodes a candidate photo and delivers it to the upload
// endpoint.
//
// Delivery is a two-phase exchange. Phase A is a readable POST; if it fails
// at the transport level or returns a non-2xx status, Phase B resends the
// identical body in blind mode. A blind delivery is reported as success
// without a receipt, since the server's answer cannot be observed.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justapithecus/photodrop/log"
	"github.com/justapithecus/photodrop/metrics"
	"github.com/justapithecus/photodrop/transport"
	"github.com/justapithecus/photodrop/types"
)

// PlaceholderToken marks an endpoint copied from a template that was never
// pointed at a real deployment.
const PlaceholderToken = "DEPLOY_ID"

// receiptKeys are checked in order on a readable response body.
var receiptKeys = []string{"id", "fileId"}

// Submitter performs submissions over a Transport.
// A Submitter holds no per-submission state; callers are responsible for
// keeping at most one submission in flight.
type Submitter struct {
	transport transport.Transport
	logger    *log.Logger
	metrics   *metrics.Collector
	now       func() time.Time
	newID     func() string
	fallback  bool
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithLogger sets the logger (default: discard).
func WithLogger(l *log.Logger) Option {
	return func(s *Submitter) { s.logger = l }
}

// WithMetrics sets the metrics collector (default: none).
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Submitter) { s.metrics = c }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

// WithIDGenerator overrides submission id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Submitter) { s.newID = fn }
}

// WithFallback enables or disables the Phase B blind resend (default on).
func WithFallback(enabled bool) Option {
	return func(s *Submitter) { s.fallback = enabled }
}

// New creates a Submitter.
func New(t transport.Transport, opts ...Option) *Submitter {
	s := &Submitter{
		transport: t,
		logger:    log.Nop(),
		now:       time.Now,
		newID:     uuid.NewString,
		fallback:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckEndpoint rejects empty endpoints and endpoints still carrying the
// deployment placeholder.
func CheckEndpoint(endpoint string) error {
	if strings.TrimSpace(endpoint) == "" || strings.Contains(endpoint, PlaceholderToken) {
		return types.NewSubmissionError(types.ErrEndpointNotConfigured, "submit",
			"upload endpoint is not configured", nil)
	}
	return nil
}

// Submit encodes file and delivers it to endpoint. It always returns exactly
// one Outcome; failures are reported as Failure outcomes, never as errors.
//
// The endpoint is checked before anything else, so a misconfigured endpoint
// causes no reads and no network calls.
func (s *Submitter) Submit(ctx context.Context, file *types.CandidateFile, meta types.Metadata, endpoint string) *types.Outcome {
	id := s.newID()
	logger := s.logger.With(map[string]any{"submission_id": id})

	outcome := s.submit(ctx, logger, file, meta, endpoint)
	outcome.SubmissionID = id

	if outcome.OK() {
		s.metrics.IncSubmissionSucceeded(outcome.ViaFallback)
		logger.Info("submission delivered", map[string]any{
			"receipt_id":   outcome.ReceiptID,
			"via_fallback": outcome.ViaFallback,
		})
	} else {
		s.metrics.IncSubmissionFailed()
		logger.Error("submission failed", map[string]any{
			"reason": outcome.Reason,
			"kind":   outcome.Kind,
		})
	}
	return outcome
}

func (s *Submitter) submit(ctx context.Context, logger *log.Logger, file *types.CandidateFile, meta types.Metadata, endpoint string) *types.Outcome {
	s.metrics.IncSubmissionStarted()

	if err := CheckEndpoint(endpoint); err != nil {
		return types.Failure(err)
	}
	if file == nil {
		return types.Failure(types.NewSubmissionError(types.ErrNoFileSelected, "submit", "no file selected", nil))
	}

	encoded, n, err := Encode(file)
	s.metrics.AddBytesEncoded(n)
	if err != nil {
		return types.Failure(err)
	}

	payload := BuildPayload(file, encoded, meta, s.now())
	body, err := json.Marshal(payload)
	if err != nil {
		return types.Failure(types.NewSubmissionError(types.ErrReadFailure, "encode", "", err))
	}

	logger.Debug("sending submission", map[string]any{
		"filename":   file.Name,
		"mime_type":  file.MimeType,
		"size":       file.Size,
		"body_bytes": len(body),
	})

	return s.deliver(ctx, logger, endpoint, body)
}

// deliver runs Phase A and, on failure, Phase B.
func (s *Submitter) deliver(ctx context.Context, logger *log.Logger, endpoint string, body []byte) *types.Outcome {
	s.metrics.IncTransportCall()
	resp, errA := s.transport.Post(ctx, endpoint, body)
	if errA == nil {
		var respBody []byte
		if resp != nil {
			respBody = resp.Body
		}
		return types.Success(ReceiptID(respBody), false)
	}
	s.metrics.IncPhaseAFailure()

	if !s.fallback {
		return types.Failure(transportFailure(errA))
	}

	logger.Warn("readable upload failed, resending in blind mode", map[string]any{
		"error": errA.Error(),
	})

	s.metrics.IncTransportCall()
	if errB := s.transport.PostOpaque(ctx, endpoint, body); errB != nil {
		s.metrics.IncPhaseBFailure()
		return types.Failure(transportFailure(errB))
	}

	return types.Success("", true)
}

// ReceiptID extracts the receipt identifier from a readable response body.
// Bodies that are empty or not a JSON object are treated as an empty record.
func ReceiptID(body []byte) string {
	var record map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&record); err != nil {
		return ""
	}

	for _, key := range receiptKeys {
		switch v := record[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func transportFailure(err error) error {
	var se *types.SubmissionError
	if errors.As(err, &se) {
		return err
	}
	return types.NewSubmissionError(types.ErrTransportFailure, "upload", err.Error(), err)
}
