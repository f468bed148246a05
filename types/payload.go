package types

// Metadata is the free text a user attaches to a submission.
type Metadata struct {
	Comment string
	// Contact is optional. Blank values are dropped from the payload.
	Contact string
}

// SubmissionPayload is the JSON body POSTed to the upload endpoint.
// Field names are part of the wire contract with the receiving script.
type SubmissionPayload struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	Comment  string `json:"comment"`
	// Contact is omitted from the JSON entirely when blank.
	Contact     string `json:"contact,omitempty"`
	Timestamp   string `json:"timestamp"` // ISO 8601
	PhotoBase64 string `json:"photoBase64"`
}
