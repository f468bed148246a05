package submit

import (
	"strings"
	"time"

	"github.com/justapithecus/photodrop/types"
)

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// BuildPayload assembles the wire record for one submit attempt.
//
// Comment is trimmed. Contact is trimmed and left empty when blank, which
// drops it from the JSON body.
func BuildPayload(file *types.CandidateFile, photoBase64 string, meta types.Metadata, now time.Time) types.SubmissionPayload {
	return types.SubmissionPayload{
		Filename:    file.Name,
		MimeType:    file.MimeType,
		Size:        file.Size,
		Comment:     strings.TrimSpace(meta.Comment),
		Contact:     strings.TrimSpace(meta.Contact),
		Timestamp:   now.UTC().Format(TimestampLayout),
		PhotoBase64: photoBase64,
	}
}
