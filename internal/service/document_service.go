package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docr/internal/config"
	"docr/internal/domain"
	"docr/internal/port"
	"docr/internal/validate"
)

// UploadDocumentInput is the DTO for single-document upload requests.
type UploadDocumentInput struct {
	Item      domain.UploadItem
	AuthorIDs []int64
}

// DocumentService defines the document management contract: single-file
// ingestion, retrieval, deletion, and comparison against stored documents.
type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, offset, limit int) ([]domain.Document, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Compare(ctx context.Context, text string, candidates []domain.ComparisonCandidate) (json.RawMessage, error)
	CompareWithStored(ctx context.Context, text string, ids []uuid.UUID) (json.RawMessage, error)
}

type documentService struct {
	docRepo    port.DocumentRepository
	authorRepo port.AuthorRepository
	storage    port.ObjectStorage
	extractor  port.TextExtractor
	comparer   port.TextComparer
	validator  *validate.Validator
	cfg        *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation. The
// validator applies the extension allowlist only: single-file uploads
// accept every supported format including doc/docx/txt.
func NewDocumentService(
	docRepo port.DocumentRepository,
	authorRepo port.AuthorRepository,
	storage port.ObjectStorage,
	extractor port.TextExtractor,
	comparer port.TextComparer,
	cfg *config.S3Config,
) DocumentService {
	return &documentService{
		docRepo:    docRepo,
		authorRepo: authorRepo,
		storage:    storage,
		extractor:  extractor,
		comparer:   comparer,
		validator:  validate.New(validate.Config{CheckContentType: false}),
		cfg:        cfg,
	}
}

// Upload ingests one file: validate, extract text via the OCR engine,
// store the raw bytes, persist the record with its author links. Unlike
// the batch pipeline, an extraction failure here is terminal.
func (s *documentService) Upload(ctx context.Context, input UploadDocumentInput) (*domain.Document, error) {
	item := input.Item
	if len(item.Bytes) == 0 {
		return nil, domain.ErrEmptyFile
	}
	if v := s.validator.Validate(item.FileName, item.ContentType); !v.Accepted {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, v.Reason)
	}

	text, err := s.extractor.Extract(ctx, item)
	if err != nil {
		log.Printf("documentService.Upload: extraction failed for %s: %v", item.FileName, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	// Unknown author IDs are dropped silently; only resolved authors are
	// linked to the record.
	authors, err := s.resolveAuthors(ctx, input.AuthorIDs)
	if err != nil {
		return nil, err
	}

	docID := uuid.New()
	key := fmt.Sprintf("documents/%s/%s", docID, item.FileName)

	doc := NewDocumentRecord(item, text, s.cfg.Bucket, key, authors)
	doc.ID = docID

	log.Printf("documentService.Upload: storing %s (%d bytes) as %s", item.FileName, len(item.Bytes), key)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(item.Bytes),
		ContentType: item.ContentType,
		Size:        int64(len(item.Bytes)),
	})
	if err != nil {
		log.Printf("documentService.Upload: storage upload failed for %s: %v", item.FileName, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	authorIDs := make([]int64, len(authors))
	for i, a := range authors {
		authorIDs[i] = a.ID
	}
	if err := s.docRepo.Create(ctx, doc, authorIDs); err != nil {
		// Best effort cleanup of the orphaned object.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			log.Printf("documentService.Upload: cleanup of %s failed: %v", key, delErr)
		}
		return nil, fmt.Errorf("creating document record: %w", err)
	}

	return doc, nil
}

func (s *documentService) resolveAuthors(ctx context.Context, ids []int64) ([]domain.Author, error) {
	if len(ids) == 0 {
		return []domain.Author{}, nil
	}
	authors, err := s.authorRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving authors: %w", err)
	}
	return authors, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.List(ctx, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.StorageBucket, doc.StorageKey, s.cfg.PresignExpiry)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageBucket, doc.StorageKey); err != nil {
		log.Printf("documentService.Delete: failed to delete %s from storage: %v", doc.StorageKey, err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.docRepo.Delete(ctx, id)
}

// Compare forwards an extracted text and caller-supplied candidates to the
// comparison engine. Precondition checking lives in the comparer so the
// missing-input error is raised before any network call.
func (s *documentService) Compare(ctx context.Context, text string, candidates []domain.ComparisonCandidate) (json.RawMessage, error) {
	return s.comparer.Compare(ctx, port.ComparisonRequest{Text: text, Candidates: candidates})
}

// CompareWithStored loads the referenced documents and compares the text
// against their stored extracted texts.
func (s *documentService) CompareWithStored(ctx context.Context, text string, ids []uuid.UUID) (json.RawMessage, error) {
	if text == "" || len(ids) == 0 {
		return nil, domain.ErrMissingComparisonInput
	}
	docs, err := s.docRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading comparison documents: %w", err)
	}
	if len(docs) == 0 {
		return nil, domain.ErrNotFound
	}
	return s.comparer.Compare(ctx, port.ComparisonRequest{Text: text, Candidates: CandidatesFromDocuments(docs)})
}
