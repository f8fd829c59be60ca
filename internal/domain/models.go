package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a stored document with its OCR-extracted text.
type Document struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FileName      string    `db:"file_name" json:"file_name"`
	StorageBucket string    `db:"storage_bucket" json:"-"`
	StorageKey    string    `db:"storage_key" json:"storage_key"`
	ContentType   string    `db:"content_type" json:"content_type"`
	FileSize      int64     `db:"file_size" json:"file_size"`
	ExtractedText string    `db:"extracted_text" json:"extracted_text"`
	Authors       []Author  `db:"-" json:"authors"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Author represents a person a document can be attributed to.
// Author IDs are plain integers because callers submit them as a JSON
// array of ints in the upload form.
type Author struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ComparisonCandidate is one stored document offered to the comparison
// engine alongside the query text.
type ComparisonCandidate struct {
	DocumentID uuid.UUID `json:"id"`
	FileName   string    `json:"file_name,omitempty"`
	Text       string    `json:"extracted_text"`
}
