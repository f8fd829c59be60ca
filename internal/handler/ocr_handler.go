package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docr/internal/domain"
	"docr/internal/service"
)

// OCRHandler handles batch extraction and comparison endpoints.
type OCRHandler struct {
	extractionService service.ExtractionService
	documentService   service.DocumentService
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(extractionService service.ExtractionService, documentService service.DocumentService) *OCRHandler {
	return &OCRHandler{extractionService: extractionService, documentService: documentService}
}

// UploadBatch handles POST /api/v1/ocr/upload. It accepts one or more
// files in the "files" form field and returns one result entry per file.
func (h *OCRHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart form with a files field is required")
		return
	}

	items, err := readUploadItems(form.File["files"])
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded files")
		return
	}

	outcomes, err := h.extractionService.ProcessBatch(c.Request.Context(), items)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, service.BatchResponse(outcomes))
}

// CompareRequest is the body for POST /api/v1/ocr/compare. Callers either
// inline candidate documents or reference stored ones by ID.
type CompareRequest struct {
	Text        string                       `json:"text"`
	Documents   []domain.ComparisonCandidate `json:"documents"`
	DocumentIDs []uuid.UUID                  `json:"document_ids"`
}

// Compare handles POST /api/v1/ocr/compare.
func (h *OCRHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text and documents (or document_ids) are required")
		return
	}

	var result interface{}
	var err error
	if len(req.DocumentIDs) > 0 {
		result, err = h.documentService.CompareWithStored(c.Request.Context(), req.Text, req.DocumentIDs)
	} else {
		result, err = h.documentService.Compare(c.Request.Context(), req.Text, req.Documents)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// readUploadItems drains every file part into an UploadItem. The bytes
// live only for the duration of the orchestration call.
func readUploadItems(headers []*multipart.FileHeader) ([]domain.UploadItem, error) {
	items := make([]domain.UploadItem, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			return nil, err
		}
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = domain.ContentTypeForFileName(header.Filename)
		}
		items = append(items, domain.UploadItem{
			FileName:    header.Filename,
			ContentType: contentType,
			Bytes:       data,
		})
	}
	return items, nil
}
