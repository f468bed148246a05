// Package metrics provides per-process submission counters.
//
// The Collector accumulates counters while the CLI runs. It is a leaf
// package with no internal dependencies; failure kinds are passed in as
// plain strings to keep it free of the types package.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Submission lifecycle
	SubmissionsStarted   int64 `json:"submissions_started" yaml:"submissions_started"`
	SubmissionsSucceeded int64 `json:"submissions_succeeded" yaml:"submissions_succeeded"`
	SubmissionsFallback  int64 `json:"submissions_fallback" yaml:"submissions_fallback"`
	SubmissionsFailed    int64 `json:"submissions_failed" yaml:"submissions_failed"`

	// Validation
	ValidationRejected int64            `json:"validation_rejected" yaml:"validation_rejected"`
	RejectedByKind     map[string]int64 `json:"rejected_by_kind" yaml:"rejected_by_kind"`

	// Transport
	TransportCalls int64 `json:"transport_calls" yaml:"transport_calls"`
	PhaseAFailures int64 `json:"phase_a_failures" yaml:"phase_a_failures"`
	PhaseBFailures int64 `json:"phase_b_failures" yaml:"phase_b_failures"`
	BytesEncoded   int64 `json:"bytes_encoded" yaml:"bytes_encoded"`

	// Dimensions (informational, set at construction)
	EndpointHost string `json:"endpoint_host" yaml:"endpoint_host"`
}

// Collector accumulates submission counters.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	submissionsStarted   int64
	submissionsSucceeded int64
	submissionsFallback  int64
	submissionsFailed    int64

	validationRejected int64
	rejectedByKind     map[string]int64

	transportCalls int64
	phaseAFailures int64
	phaseBFailures int64
	bytesEncoded   int64

	endpointHost string
}

// NewCollector creates a Collector labelled with the endpoint host.
func NewCollector(endpointHost string) *Collector {
	return &Collector{
		rejectedByKind: make(map[string]int64),
		endpointHost:   endpointHost,
	}
}

// --- Submission lifecycle ---

// IncSubmissionStarted records a submit attempt entering the core.
func (c *Collector) IncSubmissionStarted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.submissionsStarted++
	c.mu.Unlock()
}

// IncSubmissionSucceeded records a success. viaFallback additionally counts
// it as a blind delivery.
func (c *Collector) IncSubmissionSucceeded(viaFallback bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.submissionsSucceeded++
	if viaFallback {
		c.submissionsFallback++
	}
	c.mu.Unlock()
}

// IncSubmissionFailed records a terminal failure.
func (c *Collector) IncSubmissionFailed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.submissionsFailed++
	c.mu.Unlock()
}

// --- Validation ---

// IncValidationRejected records a candidate rejected by the policy.
func (c *Collector) IncValidationRejected(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.validationRejected++
	if c.rejectedByKind == nil {
		c.rejectedByKind = make(map[string]int64)
	}
	c.rejectedByKind[kind]++
	c.mu.Unlock()
}

// --- Transport ---
// Counters are per network call, so one fallback submission counts 2 calls.

// IncTransportCall records one network call (either phase).
func (c *Collector) IncTransportCall() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.transportCalls++
	c.mu.Unlock()
}

// IncPhaseAFailure records a failed readable attempt.
func (c *Collector) IncPhaseAFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.phaseAFailures++
	c.mu.Unlock()
}

// IncPhaseBFailure records a failed blind attempt.
func (c *Collector) IncPhaseBFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.phaseBFailures++
	c.mu.Unlock()
}

// AddBytesEncoded records raw bytes read from a candidate file.
func (c *Collector) AddBytesEncoded(n int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.bytesEncoded += n
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rejected := make(map[string]int64, len(c.rejectedByKind))
	for k, v := range c.rejectedByKind {
		rejected[k] = v
	}

	return Snapshot{
		SubmissionsStarted:   c.submissionsStarted,
		SubmissionsSucceeded: c.submissionsSucceeded,
		SubmissionsFallback:  c.submissionsFallback,
		SubmissionsFailed:    c.submissionsFailed,

		ValidationRejected: c.validationRejected,
		RejectedByKind:     rejected,

		TransportCalls: c.transportCalls,
		PhaseAFailures: c.phaseAFailures,
		PhaseBFailures: c.phaseBFailures,
		BytesEncoded:   c.bytesEncoded,

		EndpointHost: c.endpointHost,
	}
}
