package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrEmptyFile              = errors.New("file is empty")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrEmptyBatch             = errors.New("no files submitted")
	ErrNoValidFiles           = errors.New("no file in the batch could be processed")
	ErrMissingComparisonInput = errors.New("comparison text or candidate documents missing")
	ErrExtractionFailed       = errors.New("text extraction failed")
	ErrComparisonFailed       = errors.New("comparison engine call failed")
	ErrUploadFailed           = errors.New("file upload to storage failed")
)
