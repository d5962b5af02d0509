package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidDocument  = errors.New("invalid document")
)

// Renderer prints an HTML page to PDF.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// DocumentsRepo persists documents.
type DocumentsRepo interface {
	Save(ctx context.Context, d *domain.ResumeDocument) error
	Get(ctx context.Context, id uuid.UUID) (*domain.ResumeDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentService loads documents, applies Builder operations and stores the
// results. Read-modify-write cycles are serialized.
type DocumentService struct {
	mu       sync.Mutex
	repo     DocumentsRepo
	builder  *Builder
	renderer Renderer
	exporter *Exporter
	now      func() time.Time
}

func NewDocumentService(r DocumentsRepo, b *Builder, renderer Renderer, exporter *Exporter) *DocumentService {
	return &DocumentService{repo: r, builder: b, renderer: renderer, exporter: exporter, now: time.Now}
}

// Builder exposes the operation set.
func (s *DocumentService) Builder() *Builder { return s.builder }

// Create stores a new document. Empty raw input starts from the default
// document; otherwise raw is validated and imported.
func (s *DocumentService) Create(ctx context.Context, raw []byte) (*domain.ResumeDocument, error) {
	doc := domain.NewDocument()
	if len(raw) > 0 {
		d, err := model.DecodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		doc = d
	}
	now := s.now()
	rec := &domain.ResumeDocument{ID: uuid.New(), Document: doc, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	logger.Info().Str("document", rec.ID.String()).Int("sections", len(doc.Sections)).Msg("document created")
	return rec, nil
}

// Get loads a document.
func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*domain.ResumeDocument, error) {
	rec, err := s.repo.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrDocumentNotFound
	}
	return err
}

// Mutate applies op to a stored document. A refused operation leaves the
// document untouched and is not an error.
func (s *DocumentService) Mutate(ctx context.Context, id uuid.UUID, op func(domain.Document) domain.Document) (*domain.ResumeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := op(rec.Document)
	if reflect.DeepEqual(next, rec.Document) {
		logger.Debug().Str("document", id.String()).Msg("operation left document unchanged")
		return rec, nil
	}
	rec.Document = next
	rec.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return rec, nil
}

// UpdateEntry replaces an entry's content as if typed into its field: rich
// fields are sanitized, limited fields truncated, dates and scores
// normalised.
func (s *DocumentService) UpdateEntry(ctx context.Context, id uuid.UUID, sectionID, entryID, content string) (*domain.ResumeDocument, error) {
	return s.Mutate(ctx, id, func(d domain.Document) domain.Document {
		return EditEntry(s.builder, d, sectionID, entryID, func(c *editor.Controller) {
			c.ReplaceAll(content)
		})
	})
}

// Paste inserts a clipboard payload into an entry at character offset at,
// or at the end when at is negative.
func (s *DocumentService) Paste(ctx context.Context, id uuid.UUID, sectionID, entryID string, cb editor.Clipboard, at int) (*domain.ResumeDocument, error) {
	return s.Mutate(ctx, id, func(d domain.Document) domain.Document {
		return EditEntry(s.builder, d, sectionID, entryID, func(c *editor.Controller) {
			c.Surface().Focus()
			if at < 0 {
				c.Surface().CaretToEnd()
			} else {
				c.Surface().SetCaret(at)
			}
			c.Paste(cb)
		})
	})
}

// Drop reorders a section by dragging sourceID onto targetID.
func (s *DocumentService) Drop(ctx context.Context, id uuid.UUID, sectionID, sourceID, targetID string, grouped bool) (*domain.ResumeDocument, error) {
	return s.Mutate(ctx, id, func(d domain.Document) domain.Document {
		var drag DragSession
		drag.Begin(sectionID, sourceID, grouped)
		return drag.Release(s.builder, d, sectionID, targetID)
	})
}

// Preview renders the print view of a document.
func (s *DocumentService) Preview(ctx context.Context, id uuid.UUID) (string, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return RenderPreview(rec.Document)
}

// Export prints a document to PDF through a canvas forced into preview mode
// for the duration of the snapshot.
func (s *DocumentService) Export(ctx context.Context, id uuid.UUID) ([]byte, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, errors.New("export: no renderer configured")
	}

	canvas := NewCanvas(s.builder, rec.Document)
	var pdf []byte
	err = s.exporter.Export(ctx, canvas, func(ctx context.Context) (<-chan struct{}, error) {
		page, err := canvas.Render()
		if err != nil {
			return nil, err
		}
		pdf, err = s.renderer.RenderHTMLToPDF(ctx, page)
		if err != nil {
			return nil, err
		}
		done := make(chan struct{})
		close(done)
		return done, nil
	})
	if errors.Is(err, ErrExportAbandoned) {
		logger.Warn().Str("document", id.String()).Msg("export watchdog fired, preview reverted")
	}
	if err != nil {
		return nil, fmt.Errorf("export document %s: %w", id, err)
	}
	return pdf, nil
}
