package port

import (
	"context"
	"encoding/json"

	"docr/internal/domain"
)

// TextExtractor abstracts the external OCR engine. Implementations must
// classify every backend and transport failure into an error; they never
// panic across this boundary.
type TextExtractor interface {
	Extract(ctx context.Context, item domain.UploadItem) (string, error)
}

// ComparisonRequest carries a query text and the stored documents to
// compare it against. Both fields are mandatory and non-empty.
type ComparisonRequest struct {
	Text       string
	Candidates []domain.ComparisonCandidate
}

// TextComparer abstracts the external text-comparison engine. The result
// is the engine's structured match data, passed through opaquely.
type TextComparer interface {
	Compare(ctx context.Context, req ComparisonRequest) (json.RawMessage, error)
}
