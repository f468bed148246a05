package types

import "errors"

// OutcomeStatus is the discriminant of a submission Outcome.
type OutcomeStatus string

// Outcome statuses.
const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// Outcome is the single result of one submission attempt.
//
// Success outcomes carry ReceiptID (possibly empty) and ViaFallback.
// Failure outcomes carry Reason and the classified Err.
type Outcome struct {
	Status       OutcomeStatus `json:"status"`
	SubmissionID string        `json:"submission_id,omitempty"`
	// ReceiptID is the server-assigned identifier. Only obtainable when the
	// response was readable, so it is always empty when ViaFallback is set.
	ReceiptID   string `json:"receipt_id,omitempty"`
	ViaFallback bool   `json:"via_fallback"`
	Reason      string `json:"reason,omitempty"`
	// Kind is the failure classification name, for rendering.
	Kind string `json:"kind,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Success returns a success outcome.
func Success(receiptID string, viaFallback bool) *Outcome {
	return &Outcome{
		Status:      OutcomeSuccess,
		ReceiptID:   receiptID,
		ViaFallback: viaFallback,
	}
}

// Failure returns a failure outcome whose reason is err's message.
func Failure(err error) *Outcome {
	o := &Outcome{
		Status: OutcomeFailure,
		Err:    err,
	}
	if err != nil {
		o.Reason = err.Error()
	}
	if kind := Classify(err); kind != nil {
		o.Kind = kind.Error()
	}
	return o
}

// OK reports whether the outcome is a success.
func (o *Outcome) OK() bool {
	return o != nil && o.Status == OutcomeSuccess
}

// Is reports whether a failure outcome matches the target sentinel.
func (o *Outcome) Is(target error) bool {
	return o != nil && o.Err != nil && errors.Is(o.Err, target)
}

// Unconfirmed reports a success whose server-side acceptance could not be
// observed (blind delivery).
func (o *Outcome) Unconfirmed() bool {
	return o.OK() && o.ViaFallback
}
