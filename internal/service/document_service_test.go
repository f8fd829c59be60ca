package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docr/internal/config"
	"docr/internal/domain"
	"docr/internal/port"
	"docr/internal/service"
	"docr/mocks"
)

func setupDocumentService() (
	*mocks.MockDocumentRepo,
	*mocks.MockAuthorRepo,
	*mocks.MockObjectStorage,
	*mocks.MockTextExtractor,
	*mocks.MockTextComparer,
	service.DocumentService,
) {
	docRepo := new(mocks.MockDocumentRepo)
	authorRepo := new(mocks.MockAuthorRepo)
	storage := new(mocks.MockObjectStorage)
	extractor := new(mocks.MockTextExtractor)
	comparer := new(mocks.MockTextComparer)

	cfg := &config.S3Config{Bucket: "docr-documents", PresignExpiry: 900}
	svc := service.NewDocumentService(docRepo, authorRepo, storage, extractor, comparer, cfg)
	return docRepo, authorRepo, storage, extractor, comparer, svc
}

func uploadInput(name, contentType string, authorIDs ...int64) service.UploadDocumentInput {
	return service.UploadDocumentInput{
		Item: domain.UploadItem{
			FileName:    name,
			ContentType: contentType,
			Bytes:       []byte("file contents"),
		},
		AuthorIDs: authorIDs,
	}
}

func TestDocumentUpload_Success(t *testing.T) {
	docRepo, authorRepo, storage, extractor, _, svc := setupDocumentService()

	input := uploadInput("invoice.pdf", "application/pdf", 1, 2)
	authors := []domain.Author{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}

	extractor.On("Extract", mock.Anything, input.Item).Return("extracted text", nil)
	authorRepo.On("GetByIDs", mock.Anything, []int64{1, 2}).Return(authors, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "docr-documents" && in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{Location: "https://s3/docr-documents/key"}, nil)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document"), []int64{1, 2}).Return(nil)

	doc, err := svc.Upload(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, doc)
	assert.NotEqual(t, uuid.Nil, doc.ID)
	assert.Equal(t, "invoice.pdf", doc.FileName)
	assert.Equal(t, "extracted text", doc.ExtractedText)
	assert.Equal(t, "docr-documents", doc.StorageBucket)
	assert.Contains(t, doc.StorageKey, doc.ID.String())
	assert.Len(t, doc.Authors, 2)
	docRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDocumentUpload_EmptyFile(t *testing.T) {
	_, _, _, extractor, _, svc := setupDocumentService()

	input := service.UploadDocumentInput{
		Item: domain.UploadItem{FileName: "empty.pdf", ContentType: "application/pdf"},
	}

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrEmptyFile)
	extractor.AssertNotCalled(t, "Extract")
}

func TestDocumentUpload_UnsupportedExtension(t *testing.T) {
	_, _, _, extractor, _, svc := setupDocumentService()

	_, err := svc.Upload(context.Background(), uploadInput("report.exe", "application/pdf"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	extractor.AssertNotCalled(t, "Extract")
}

func TestDocumentUpload_AcceptsDocxByExtension(t *testing.T) {
	docRepo, _, storage, extractor, _, svc := setupDocumentService()

	// Single-document ingestion validates by extension only, so office
	// formats pass despite their non-pdf, non-image declared type.
	input := uploadInput("notes.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	extractor.On("Extract", mock.Anything, input.Item).Return("text", nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document"), []int64{}).Return(nil)

	_, err := svc.Upload(context.Background(), input)

	assert.NoError(t, err)
}

func TestDocumentUpload_ExtractionFailureIsTerminal(t *testing.T) {
	_, _, storage, extractor, _, svc := setupDocumentService()

	input := uploadInput("invoice.pdf", "application/pdf")
	extractor.On("Extract", mock.Anything, input.Item).Return("", errors.New("engine down"))

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	storage.AssertNotCalled(t, "Upload")
}

func TestDocumentUpload_UnknownAuthorIDsDroppedSilently(t *testing.T) {
	docRepo, authorRepo, storage, extractor, _, svc := setupDocumentService()

	input := uploadInput("invoice.pdf", "application/pdf", 1, 99)
	// Only author 1 exists; 99 resolves to nothing.
	authorRepo.On("GetByIDs", mock.Anything, []int64{1, 99}).
		Return([]domain.Author{{ID: 1, Name: "Alice"}}, nil)
	extractor.On("Extract", mock.Anything, input.Item).Return("text", nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document"), []int64{1}).Return(nil)

	doc, err := svc.Upload(context.Background(), input)

	assert.NoError(t, err)
	assert.Len(t, doc.Authors, 1)
	docRepo.AssertExpectations(t)
}

func TestDocumentUpload_StorageFailure(t *testing.T) {
	docRepo, _, storage, extractor, _, svc := setupDocumentService()

	input := uploadInput("invoice.pdf", "application/pdf")
	extractor.On("Extract", mock.Anything, input.Item).Return("text", nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 unreachable"))

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	// The underlying storage error stays visible in the chain.
	assert.Contains(t, err.Error(), "s3 unreachable")
	docRepo.AssertNotCalled(t, "Create")
}

func TestDocumentUpload_RepoFailureCleansUpObject(t *testing.T) {
	docRepo, _, storage, extractor, _, svc := setupDocumentService()

	input := uploadInput("invoice.pdf", "application/pdf")
	extractor.On("Extract", mock.Anything, input.Item).Return("text", nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	docRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document"), []int64{}).
		Return(errors.New("constraint violation"))
	storage.On("Delete", mock.Anything, "docr-documents", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Upload(context.Background(), input)

	assert.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, "docr-documents", mock.AnythingOfType("string"))
}

func TestGetDownloadURL(t *testing.T) {
	docRepo, _, storage, _, _, svc := setupDocumentService()

	id := uuid.New()
	doc := &domain.Document{ID: id, StorageBucket: "docr-documents", StorageKey: "documents/x/invoice.pdf"}
	docRepo.On("GetByID", mock.Anything, id).Return(doc, nil)
	storage.On("GetPresignedURL", mock.Anything, "docr-documents", "documents/x/invoice.pdf", int64(900)).
		Return("https://signed-url", nil)

	url, err := svc.GetDownloadURL(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, "https://signed-url", url)
}

func TestGetDownloadURL_NotFound(t *testing.T) {
	docRepo, _, _, _, _, svc := setupDocumentService()

	id := uuid.New()
	docRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.GetDownloadURL(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentDelete_RemovesObjectThenRecord(t *testing.T) {
	docRepo, _, storage, _, _, svc := setupDocumentService()

	id := uuid.New()
	doc := &domain.Document{ID: id, StorageBucket: "docr-documents", StorageKey: "documents/x/a.pdf"}
	docRepo.On("GetByID", mock.Anything, id).Return(doc, nil)
	storage.On("Delete", mock.Anything, "docr-documents", "documents/x/a.pdf").Return(nil)
	docRepo.On("Delete", mock.Anything, id).Return(nil)

	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	docRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestDocumentDelete_StorageFailureKeepsRecord(t *testing.T) {
	docRepo, _, storage, _, _, svc := setupDocumentService()

	id := uuid.New()
	doc := &domain.Document{ID: id, StorageBucket: "docr-documents", StorageKey: "documents/x/a.pdf"}
	docRepo.On("GetByID", mock.Anything, id).Return(doc, nil)
	storage.On("Delete", mock.Anything, "docr-documents", "documents/x/a.pdf").
		Return(errors.New("s3 unreachable"))

	err := svc.Delete(context.Background(), id)

	assert.Error(t, err)
	docRepo.AssertNotCalled(t, "Delete")
}

func TestCompareWithStored_LoadsCandidatesFromRepo(t *testing.T) {
	docRepo, _, _, _, comparer, svc := setupDocumentService()

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	docs := []domain.Document{
		{ID: ids[0], FileName: "a.pdf", ExtractedText: "alpha"},
		{ID: ids[1], FileName: "b.pdf", ExtractedText: "beta"},
	}
	result := json.RawMessage(`{"best_match":"a.pdf"}`)

	docRepo.On("GetByIDs", mock.Anything, ids).Return(docs, nil)
	comparer.On("Compare", mock.Anything, mock.MatchedBy(func(req port.ComparisonRequest) bool {
		return req.Text == "query" && len(req.Candidates) == 2 && req.Candidates[0].Text == "alpha"
	})).Return(result, nil)

	got, err := svc.CompareWithStored(context.Background(), "query", ids)

	assert.NoError(t, err)
	assert.JSONEq(t, string(result), string(got))
}

func TestCompareWithStored_MissingInput(t *testing.T) {
	docRepo, _, _, _, _, svc := setupDocumentService()

	_, err := svc.CompareWithStored(context.Background(), "", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, domain.ErrMissingComparisonInput)

	_, err = svc.CompareWithStored(context.Background(), "query", nil)
	assert.ErrorIs(t, err, domain.ErrMissingComparisonInput)

	docRepo.AssertNotCalled(t, "GetByIDs")
}

func TestCompareWithStored_NoDocumentsResolved(t *testing.T) {
	docRepo, _, _, _, comparer, svc := setupDocumentService()

	ids := []uuid.UUID{uuid.New()}
	docRepo.On("GetByIDs", mock.Anything, ids).Return([]domain.Document{}, nil)

	_, err := svc.CompareWithStored(context.Background(), "query", ids)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	comparer.AssertNotCalled(t, "Compare")
}
