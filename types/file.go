// Package types defines core domain types shared by the photodrop packages.
//
//nolint:revive // types is a common Go package naming convention
package types

import (
	"bytes"
	"errors"
	"io"
)

// CandidateFile is a user-selected image awaiting validation and submission.
//
// A CandidateFile lives for one selection/submission cycle. The validator and
// submitter only read it. A nil *CandidateFile means nothing was selected.
type CandidateFile struct {
	// Name is the base filename as selected by the user.
	Name string
	// MimeType is the detected media type (e.g. "image/jpeg").
	MimeType string
	// Size is the content length in bytes.
	Size int64

	open func() (io.ReadCloser, error)
}

// NewCandidateFile creates a candidate whose content is provided by open.
// open is called once per read; each call must return a fresh reader
// positioned at the start of the content.
func NewCandidateFile(name, mimeType string, size int64, open func() (io.ReadCloser, error)) *CandidateFile {
	return &CandidateFile{
		Name:     name,
		MimeType: mimeType,
		Size:     size,
		open:     open,
	}
}

// NewBytesFile creates an in-memory candidate. Size is len(data).
func NewBytesFile(name, mimeType string, data []byte) *CandidateFile {
	return NewCandidateFile(name, mimeType, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// Open returns a reader over the full file content.
func (f *CandidateFile) Open() (io.ReadCloser, error) {
	if f == nil || f.open == nil {
		return nil, errors.New("candidate file has no content source")
	}
	return f.open()
}

// SizeMB returns the size in mebibytes (1024*1024 bytes).
func (f *CandidateFile) SizeMB() float64 {
	return float64(f.Size) / (1024 * 1024)
}
