package service

import (
	"time"

	"docr/internal/domain"
)

// FileResult is one per-file entry in the batch extraction response.
type FileResult struct {
	FileName string `json:"file_name"`
	Status   string `json:"status"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`
}

const (
	fileStatusOK     = "ok"
	fileStatusFailed = "failed"
)

// BatchResponse maps extraction outcomes into the ordered response shape
// returned to the caller, one entry per outcome.
func BatchResponse(outcomes []domain.Outcome) []FileResult {
	results := make([]FileResult, len(outcomes))
	for i, o := range outcomes {
		if o.Failed() {
			results[i] = FileResult{FileName: o.FileName, Status: fileStatusFailed, Error: o.Error}
			continue
		}
		results[i] = FileResult{FileName: o.FileName, Status: fileStatusOK, Text: o.Text}
	}
	return results
}

// NewDocumentRecord maps a successful extraction plus caller-supplied
// metadata into the record shape the repository persists. The caller
// assigns the ID.
func NewDocumentRecord(item domain.UploadItem, text, bucket, key string, authors []domain.Author) *domain.Document {
	if authors == nil {
		authors = []domain.Author{}
	}
	return &domain.Document{
		FileName:      item.FileName,
		StorageBucket: bucket,
		StorageKey:    key,
		ContentType:   item.ContentType,
		FileSize:      int64(len(item.Bytes)),
		ExtractedText: text,
		Authors:       authors,
		CreatedAt:     time.Now().UTC(),
	}
}

// CandidatesFromDocuments maps stored documents into comparison candidates,
// preserving order.
func CandidatesFromDocuments(docs []domain.Document) []domain.ComparisonCandidate {
	candidates := make([]domain.ComparisonCandidate, len(docs))
	for i, d := range docs {
		candidates[i] = domain.ComparisonCandidate{
			DocumentID: d.ID,
			FileName:   d.FileName,
			Text:       d.ExtractedText,
		}
	}
	return candidates
}
