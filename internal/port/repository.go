package port

import (
	"context"

	"github.com/google/uuid"

	"docr/internal/domain"
)

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document, authorIDs []int64) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, offset, limit int) ([]domain.Document, int, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthorRepository defines the contract for author persistence.
type AuthorRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Author, error)
	List(ctx context.Context, offset, limit int) ([]domain.Author, int, error)
}
