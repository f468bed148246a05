package submit

import (
	"encoding/base64"
	"io"
	"strings"

	"github.com/justapithecus/photodrop/iox"
	"github.com/justapithecus/photodrop/types"
)

// Encode reads the whole candidate and returns its standard base64 encoding
// together with the number of raw bytes read. The result is the bare
// encoding with no "data:<type>;base64," prefix.
//
// A read error yields a *types.SubmissionError of kind ErrReadFailure whose
// message is the underlying error's message.
func Encode(file *types.CandidateFile) (string, int64, error) {
	rc, err := file.Open()
	if err != nil {
		return "", 0, readFailure(err)
	}
	defer iox.DiscardClose(rc)

	var sb strings.Builder
	if file.Size > 0 {
		sb.Grow(base64.StdEncoding.EncodedLen(int(file.Size)))
	}

	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	n, err := io.Copy(enc, rc)
	if err != nil {
		return "", n, readFailure(err)
	}
	if err := enc.Close(); err != nil {
		return "", n, readFailure(err)
	}

	return sb.String(), n, nil
}

func readFailure(err error) error {
	return types.NewSubmissionError(types.ErrReadFailure, "encode", err.Error(), err)
}
