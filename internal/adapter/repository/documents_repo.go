package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"resume-builder/internal/domain"
)

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// DocumentsRepo stores documents as JSONB rows in resume_documents.
type DocumentsRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentsRepo(pool *pgxpool.Pool) *DocumentsRepo {
	return &DocumentsRepo{pool: pool}
}

// Save inserts or replaces a document.
func (r *DocumentsRepo) Save(ctx context.Context, d *domain.ResumeDocument) error {
	body, err := json.Marshal(d.Document)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", d.ID, err)
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO resume_documents (id, template, body, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET template = EXCLUDED.template, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		d.ID, string(d.Document.Template), body, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save document %s: %w", d.ID, err)
	}
	return nil
}

// Get loads a document by id.
func (r *DocumentsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ResumeDocument, error) {
	var (
		d    domain.ResumeDocument
		body []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, body, created_at, updated_at FROM resume_documents WHERE id = $1`, id).
		Scan(&d.ID, &body, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	if err := json.Unmarshal(body, &d.Document); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", id, err)
	}
	return &d, nil
}

// Delete removes a document.
func (r *DocumentsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resume_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
