package ocr

import "fmt"

// BackendError reports a non-2xx status from the OCR engine. The status
// code is embedded in the message so per-file failure reasons carry it.
type BackendError struct {
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ocr engine error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("ocr engine error (status %d): %s", e.StatusCode, e.Body)
}
