package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"docr/internal/domain"
	"docr/internal/port"
)

type authorRepo struct {
	db *sqlx.DB
}

// NewAuthorRepo creates a new PostgreSQL-backed AuthorRepository.
func NewAuthorRepo(db *sqlx.DB) port.AuthorRepository {
	return &authorRepo{db: db}
}

// GetByIDs returns the authors matching the given IDs; unknown IDs are
// silently omitted.
func (r *authorRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Author, error) {
	if len(ids) == 0 {
		return []domain.Author{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM authors WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("authorRepo.GetByIDs build: %w", err)
	}
	query = r.db.Rebind(query)

	var authors []domain.Author
	if err := r.db.SelectContext(ctx, &authors, query, args...); err != nil {
		return nil, fmt.Errorf("authorRepo.GetByIDs: %w", err)
	}
	return authors, nil
}

func (r *authorRepo) List(ctx context.Context, offset, limit int) ([]domain.Author, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM authors"); err != nil {
		return nil, 0, fmt.Errorf("authorRepo.List count: %w", err)
	}

	var authors []domain.Author
	err := r.db.SelectContext(ctx, &authors,
		"SELECT * FROM authors ORDER BY id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("authorRepo.List: %w", err)
	}
	return authors, total, nil
}
