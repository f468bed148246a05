// Package intake decides whether a candidate file may be submitted.
//
// Validation is pure: it inspects only the candidate's attributes and the
// Policy, never the network or the filesystem, so it can run before any
// upload is attempted.
package intake

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/justapithecus/photodrop/types"
)

// DefaultMaxSizeMB is the default upload limit in mebibytes.
const DefaultMaxSizeMB = 8

// DefaultAllowedTypes are the media types accepted by default.
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/heic",
	"image/heif",
}

// Policy is the acceptance policy applied to every candidate.
type Policy struct {
	// AllowedTypes lists accepted media types. Matching is case-insensitive.
	AllowedTypes []string
	// MaxSizeMB is the inclusive upper bound on file size in mebibytes.
	MaxSizeMB float64
}

// DefaultPolicy returns the reference acceptance policy.
func DefaultPolicy() Policy {
	return Policy{
		AllowedTypes: slices.Clone(DefaultAllowedTypes),
		MaxSizeMB:    DefaultMaxSizeMB,
	}
}

// Check reports whether the policy itself is usable.
func (p Policy) Check() error {
	if len(p.AllowedTypes) == 0 {
		return errors.New("acceptance policy requires at least one allowed type")
	}
	for _, t := range p.AllowedTypes {
		if !strings.Contains(t, "/") {
			return fmt.Errorf("invalid allowed type %q (expected type/subtype)", t)
		}
	}
	if p.MaxSizeMB <= 0 {
		return fmt.Errorf("max size must be > 0 MB, got %v", p.MaxSizeMB)
	}
	return nil
}

// Validate judges a candidate against the policy. It returns nil when the
// file is acceptable, otherwise a *types.SubmissionError whose message is
// suitable for display.
//
// Rules are applied in order: presence, media type, size.
func (p Policy) Validate(file *types.CandidateFile) error {
	if file == nil {
		return types.NewSubmissionError(types.ErrNoFileSelected, "validate", "no file selected", nil)
	}

	if !p.Allows(file.MimeType) {
		return types.NewSubmissionError(types.ErrUnsupportedType, "validate",
			fmt.Sprintf("only %s image files can be uploaded", p.FormatList()), nil)
	}

	if file.SizeMB() > p.MaxSizeMB {
		return types.NewSubmissionError(types.ErrFileTooLarge, "validate",
			fmt.Sprintf("file size must be at most %sMB", p.MaxSizeLabel()), nil)
	}

	return nil
}

// Allows reports whether mimeType is in the allowed set.
func (p Policy) Allows(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		return false
	}
	for _, t := range p.AllowedTypes {
		if strings.ToLower(t) == mimeType {
			return true
		}
	}
	return false
}

// MaxBytes returns the size limit in bytes.
func (p Policy) MaxBytes() int64 {
	return int64(p.MaxSizeMB * 1024 * 1024)
}

// MaxSizeLabel renders MaxSizeMB without trailing zeros ("8", "7.5").
func (p Policy) MaxSizeLabel() string {
	return strconv.FormatFloat(p.MaxSizeMB, 'f', -1, 64)
}

// FormatList renders the accepted formats for messages, e.g.
// "jpg / png / webp / heic / heif".
func (p Policy) FormatList() string {
	labels := make([]string, 0, len(p.AllowedTypes))
	for _, t := range p.AllowedTypes {
		label := strings.ToLower(t)
		if i := strings.IndexByte(label, '/'); i >= 0 {
			label = label[i+1:]
		}
		if label == "jpeg" {
			label = "jpg"
		}
		if !slices.Contains(labels, label) {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, " / ")
}
