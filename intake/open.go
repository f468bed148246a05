package intake

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/justapithecus/photodrop/types"
)

// extensionTypes covers image formats that mime.TypeByExtension does not
// know on every platform.
var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// Open builds a candidate from a filesystem path.
//
// The media type is sniffed from content. When sniffing is inconclusive
// (application/octet-stream) the extension decides. Open does not validate;
// pass the result to Policy.Validate.
func Open(path string) (*types.CandidateFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, types.NewSubmissionError(types.ErrNoFileSelected, "open", "no file selected", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, types.NewSubmissionError(types.ErrReadFailure, "open", "", err)
	}
	if info.IsDir() {
		return nil, types.NewSubmissionError(types.ErrReadFailure, "open", "",
			fmt.Errorf("%s is a directory", path))
	}

	mimeType, err := DetectType(path)
	if err != nil {
		return nil, types.NewSubmissionError(types.ErrReadFailure, "open", "", err)
	}

	return types.NewCandidateFile(filepath.Base(path), mimeType, info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path) //nolint:gosec // user-supplied path
	}), nil
}

// DetectType returns the media type of the file at path, without parameters.
func DetectType(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect media type: %w", err)
	}

	detected := baseType(mt.String())
	if detected != "" && detected != "application/octet-stream" {
		return detected, nil
	}

	return typeByExtension(path, detected), nil
}

func typeByExtension(path, fallback string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	if t := baseType(mime.TypeByExtension(ext)); t != "" {
		return t
	}
	return fallback
}

// baseType strips parameters such as "; charset=utf-8".
func baseType(s string) string {
	if s == "" {
		return ""
	}
	t, _, err := mime.ParseMediaType(s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(s, ";", 2)[0]))
	}
	return t
}
