package handler

import (
	"github.com/gin-gonic/gin"

	"docr/internal/port"
)

// AuthorHandler handles author listing for the upload form's author picker.
type AuthorHandler struct {
	authorRepo port.AuthorRepository
}

// NewAuthorHandler creates a new AuthorHandler.
func NewAuthorHandler(authorRepo port.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{authorRepo: authorRepo}
}

// List handles GET /api/v1/authors.
func (h *AuthorHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	authors, total, err := h.authorRepo.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, authors, PagMeta{Total: total, Offset: offset, Limit: limit})
}
