package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
)

type fakeRenderer struct {
	html string
	err  error
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func newService(r Renderer) *DocumentService {
	return NewDocumentService(repo.NewMemoryRepo(), NewBuilder(), r, NewExporter(0, time.Second))
}

func TestServiceCreateDefault(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, sectionIDs(domain.NewDocument()), sectionIDs(rec.Document))

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Document, got.Document)
}

func TestServiceCreateImportsAndValidates(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	raw, err := json.Marshal(baseDocument())
	require.NoError(t, err)
	rec, err := svc.Create(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "summary", "experience", "education"}, sectionIDs(rec.Document))

	_, err = svc.Create(ctx, []byte(`{"sections": "nope"}`))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestServiceNotFound(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	_, err = svc.Mutate(ctx, id, func(d domain.Document) domain.Document { return d })
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, id), ErrDocumentNotFound)
}

func TestServiceMutate(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	rec, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	moved, err := svc.Mutate(ctx, rec.ID, func(d domain.Document) domain.Document {
		return svc.Builder().MoveSection(d, "skills", Down)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"header", "summary", "experience", "education", "projects", "skills"}, sectionIDs(moved.Document))
	assert.False(t, moved.UpdatedAt.Before(rec.UpdatedAt))

	refused, err := svc.Mutate(ctx, rec.ID, func(d domain.Document) domain.Document {
		return svc.Builder().DeleteSection(d, "header")
	})
	require.NoError(t, err)
	assert.Equal(t, moved.Document, refused.Document)

	stored, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, moved.Document, stored.Document)
}

func TestServiceEntryEdits(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	rec, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	out, err := svc.UpdateEntry(ctx, rec.ID, "experience", "exp1-start", "7/2019")
	require.NoError(t, err)
	assert.Equal(t, "07/2019", entryContent(t, out.Document, "experience", "exp1-start"))

	out, err = svc.UpdateEntry(ctx, rec.ID, "header", "name", "12345")
	require.NoError(t, err)
	out, err = svc.Paste(ctx, rec.ID, "header", "name", editor.ClipboardData{Plain: "ABC"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "12ABC345", entryContent(t, out.Document, "header", "name"))

	out, err = svc.Paste(ctx, rec.ID, "projects", "proj1-desc", editor.ClipboardData{Markup: "<h1>Title</h1><p>Body</p>"}, -1)
	require.NoError(t, err)
	assert.Equal(t, "Title<br>Body", entryContent(t, out.Document, "projects", "proj1-desc"))
}

func TestServiceDrop(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()
	rec, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	out, err := svc.Drop(ctx, rec.ID, "skills", "skill3", "skill1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"skill3", "skill1", "skill2"}, entryIDs(section(t, out.Document, "skills")))
}

func TestServicePreviewAndExport(t *testing.T) {
	r := &fakeRenderer{}
	svc := newService(r)
	ctx := context.Background()
	rec, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.UpdateEntry(ctx, rec.ID, "header", "name", "Ada Lovelace")
	require.NoError(t, err)

	page, err := svc.Preview(ctx, rec.ID)
	require.NoError(t, err)
	assert.Contains(t, page, "Ada Lovelace")

	pdf, err := svc.Export(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(pdf))
	assert.Equal(t, page, r.html, "the snapshot sees the preview rendering")
}

func TestServiceExportFailure(t *testing.T) {
	boom := errors.New("chrome missing")
	svc := newService(&fakeRenderer{err: boom})
	ctx := context.Background()
	rec, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.Export(ctx, rec.ID)
	assert.ErrorIs(t, err, boom)

	_, err = newService(nil).Export(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
