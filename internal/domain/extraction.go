package domain

// UploadItem is one raw file handed to the extraction pipeline. It lives
// only for the duration of a single orchestration call.
type UploadItem struct {
	FileName    string
	ContentType string
	Bytes       []byte
}

// Outcome is the per-item result of OCR extraction: either the extracted
// text or a failure reason, never both.
type Outcome struct {
	FileName string `json:"file_name"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`
	failed   bool
}

// SuccessOutcome builds an outcome carrying extracted text. An empty text
// is still a success (the engine found no recognizable content).
func SuccessOutcome(fileName, text string) Outcome {
	return Outcome{FileName: fileName, Text: text}
}

// FailureOutcome builds an outcome carrying a failure reason.
func FailureOutcome(fileName, reason string) Outcome {
	return Outcome{FileName: fileName, Error: reason, failed: true}
}

// Failed reports whether the item could not be extracted.
func (o Outcome) Failed() bool {
	return o.failed
}
