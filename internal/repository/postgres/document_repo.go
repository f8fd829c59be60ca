package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docr/internal/domain"
	"docr/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

// Create persists a document and its author links in one transaction.
func (r *documentRepo) Create(ctx context.Context, doc *domain.Document, authorIDs []int64) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents
		 (id, file_name, storage_bucket, storage_key, content_type, file_size, extracted_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.FileName, doc.StorageBucket, doc.StorageKey,
		doc.ContentType, doc.FileSize, doc.ExtractedText, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}

	for _, authorID := range authorIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO document_authors (document_id, author_id) VALUES ($1, $2)",
			doc.ID, authorID)
		if err != nil {
			return fmt.Errorf("documentRepo.Create author link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.Create commit: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	if err := r.loadAuthors(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, offset, limit int) ([]domain.Document, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents"); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	for i := range docs {
		if err := r.loadAuthors(ctx, &docs[i]); err != nil {
			return nil, 0, err
		}
	}
	return docs, total, nil
}

func (r *documentRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM documents WHERE id = $1)", id)
	if err != nil {
		return false, fmt.Errorf("documentRepo.ExistsByID: %w", err)
	}
	return exists, nil
}

// GetByIDs returns the documents matching the given IDs. Unknown IDs are
// omitted from the result, not reported as errors.
func (r *documentRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Document, error) {
	if len(ids) == 0 {
		return []domain.Document{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM documents WHERE id IN (?) ORDER BY created_at DESC", ids)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByIDs build: %w", err)
	}
	query = r.db.Rebind(query)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("documentRepo.GetByIDs: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Delete rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) loadAuthors(ctx context.Context, doc *domain.Document) error {
	authors := []domain.Author{}
	err := r.db.SelectContext(ctx, &authors,
		`SELECT a.* FROM authors a
		 JOIN document_authors da ON da.author_id = a.id
		 WHERE da.document_id = $1
		 ORDER BY a.id`, doc.ID)
	if err != nil {
		return fmt.Errorf("documentRepo.loadAuthors: %w", err)
	}
	doc.Authors = authors
	return nil
}
