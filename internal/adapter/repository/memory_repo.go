package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
)

// MemoryRepo keeps documents in process memory. It is used when no database
// is configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]domain.ResumeDocument
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: map[uuid.UUID]domain.ResumeDocument{}}
}

func (r *MemoryRepo) Save(_ context.Context, d *domain.ResumeDocument) error {
	cp := *d
	cp.Document = d.Document.Clone()
	r.mu.Lock()
	r.docs[d.ID] = cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.ResumeDocument, error) {
	r.mu.RLock()
	d, ok := r.docs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	d.Document = d.Document.Clone()
	return &d, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}
