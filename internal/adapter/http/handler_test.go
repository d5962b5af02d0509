package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
)

type stubRenderer struct{}

func (stubRenderer) RenderHTMLToPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newApp() *fiber.App {
	svc := usecase.NewDocumentService(repo.NewMemoryRepo(), usecase.NewBuilder(), stubRenderer{}, usecase.NewExporter(0, time.Second))
	app := fiber.New()
	Register(app, NewHandler(svc))
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte) domain.ResumeDocument {
	t.Helper()
	var rec domain.ResumeDocument
	require.NoError(t, json.Unmarshal(raw, &rec), string(raw))
	return rec
}

func create(t *testing.T, app *fiber.App) domain.ResumeDocument {
	t.Helper()
	status, body := do(t, app, fiber.MethodPost, "/documents", "")
	require.Equal(t, fiber.StatusCreated, status, string(body))
	return decode(t, body)
}

func ids(d domain.Document) []string {
	var out []string
	for _, s := range d.Sections {
		out = append(out, s.ID)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	app := newApp()
	rec := create(t, app)
	assert.Equal(t, []string{"header", "summary", "experience", "education", "skills", "projects"}, ids(rec.Document))

	status, body := do(t, app, fiber.MethodGet, "/documents/"+rec.ID.String(), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, rec.ID, decode(t, body).ID)
}

func TestErrorStatuses(t *testing.T) {
	app := newApp()

	status, _ := do(t, app, fiber.MethodGet, "/documents/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, fiber.MethodGet, "/documents/6f1c1f5e-8f0a-4c8e-9d55-0e3b1b7c1a11", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body := do(t, app, fiber.MethodPost, "/documents", `{"sections": 3}`)
	assert.Equal(t, fiber.StatusBadRequest, status, string(body))

	rec := create(t, app)
	base := "/documents/" + rec.ID.String()
	status, _ = do(t, app, fiber.MethodPost, base+"/sections", `{"kind":"gallery"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do(t, app, fiber.MethodPost, base+"/sections/experience/move", `{"direction":"left"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSectionOperations(t *testing.T) {
	app := newApp()
	rec := create(t, app)
	base := "/documents/" + rec.ID.String()

	status, body := do(t, app, fiber.MethodPost, base+"/sections/experience/move", `{"direction":"up"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, ids(rec.Document), ids(decode(t, body).Document), "refusal answers with the unchanged document")

	status, body = do(t, app, fiber.MethodPost, base+"/sections/experience/move", `{"direction":"down"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"header", "summary", "education", "experience", "skills", "projects"}, ids(decode(t, body).Document))

	status, body = do(t, app, fiber.MethodPost, base+"/sections", `{"kind":"summary"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode(t, body).Document.Sections, 6, "second summary refused")

	status, body = do(t, app, fiber.MethodPost, base+"/sections", `{"kind":"custom","title":"Talks"}`)
	require.Equal(t, fiber.StatusOK, status)
	doc := decode(t, body).Document
	custom := doc.Sections[len(doc.Sections)-1]
	assert.Equal(t, "Talks", custom.Title)

	status, body = do(t, app, fiber.MethodPut, base+"/sections/"+custom.ID+"/title", `{"title":"Speaking"}`)
	require.Equal(t, fiber.StatusOK, status)
	s, _ := decode(t, body).Document.Section(custom.ID)
	assert.Equal(t, "Speaking", s.Title)

	status, body = do(t, app, fiber.MethodPost, base+"/sections/projects/visibility", "")
	require.Equal(t, fiber.StatusOK, status)
	s, _ = decode(t, body).Document.Section("projects")
	assert.False(t, s.Visible)

	status, body = do(t, app, fiber.MethodDelete, base+"/sections/"+custom.ID, "")
	require.Equal(t, fiber.StatusOK, status)
	_, ok := decode(t, body).Document.Section(custom.ID)
	assert.False(t, ok)

	status, body = do(t, app, fiber.MethodPut, base+"/template", `{"template":"template-classic"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, domain.TemplateClassic, decode(t, body).Document.Template)

	status, body = do(t, app, fiber.MethodGet, base+"/kinds", "")
	require.Equal(t, fiber.StatusOK, status)
	var kinds struct {
		Kinds []struct {
			Kind  string `json:"kind"`
			Title string `json:"title"`
		} `json:"kinds"`
		AllAdded bool `json:"allAdded"`
	}
	require.NoError(t, json.Unmarshal(body, &kinds))
	assert.False(t, kinds.AllAdded)
	require.NotEmpty(t, kinds.Kinds)
	assert.Equal(t, "custom", kinds.Kinds[len(kinds.Kinds)-1].Kind)
	for _, k := range kinds.Kinds {
		assert.NotEqual(t, "experience", k.Kind)
	}
}

func TestEntryOperations(t *testing.T) {
	app := newApp()
	rec := create(t, app)
	base := "/documents/" + rec.ID.String() + "/sections"

	status, body := do(t, app, fiber.MethodPost, base+"/experience/entries", "")
	require.Equal(t, fiber.StatusOK, status)
	exp, _ := decode(t, body).Document.Section("experience")
	assert.Equal(t, []int{1, 2}, domain.GroupIndexes(exp))

	status, body = do(t, app, fiber.MethodPut, base+"/experience/entries/exp2-end", `{"content":"present"}`)
	require.Equal(t, fiber.StatusOK, status)
	exp, _ = decode(t, body).Document.Section("experience")
	e, _ := exp.Entry("exp2-end")
	assert.Equal(t, "Present", e.Content)

	status, body = do(t, app, fiber.MethodPost, base+"/experience/visibility/exp2", "")
	require.Equal(t, fiber.StatusOK, status)
	exp, _ = decode(t, body).Document.Section("experience")
	for _, e := range domain.GroupEntries(exp, 2) {
		assert.False(t, e.IsVisible())
	}

	status, body = do(t, app, fiber.MethodPost, base+"/experience/reorder", `{"order":["exp2","exp1"],"grouped":true}`)
	require.Equal(t, fiber.StatusOK, status)
	exp, _ = decode(t, body).Document.Section("experience")
	assert.Equal(t, "exp2-role", exp.Entries[0].ID)

	status, body = do(t, app, fiber.MethodDelete, base+"/experience/groups/exp2", "")
	require.Equal(t, fiber.StatusOK, status)
	exp, _ = decode(t, body).Document.Section("experience")
	assert.Equal(t, []int{1}, domain.GroupIndexes(exp))

	status, body = do(t, app, fiber.MethodPost, base+"/skills/drop", `{"source":"skill1","target":"skill3"}`)
	require.Equal(t, fiber.StatusOK, status)
	skills, _ := decode(t, body).Document.Section("skills")
	assert.Equal(t, "skill1", skills.Entries[2].ID)

	status, body = do(t, app, fiber.MethodDelete, base+"/skills/entries/skill2", "")
	require.Equal(t, fiber.StatusOK, status)
	skills, _ = decode(t, body).Document.Section("skills")
	assert.Len(t, skills.Entries, 2)

	status, body = do(t, app, fiber.MethodPost, base+"/summary/entries/summary-text/paste", `{"html":"<p>One</p><p>Two</p>","text":"One\nTwo"}`)
	require.Equal(t, fiber.StatusOK, status)
	sum, _ := decode(t, body).Document.Section("summary")
	e, _ = sum.Entry(domain.SummaryEntryID)
	assert.Equal(t, "One Two", e.Content)
}

func TestPreviewAndExport(t *testing.T) {
	app := newApp()
	rec := create(t, app)
	base := "/documents/" + rec.ID.String()

	status, _ := do(t, app, fiber.MethodPut, base+"/sections/header/entries/name", `{"content":"Ada Lovelace"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, body := do(t, app, fiber.MethodGet, base+"/preview", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "Ada Lovelace")

	status, body = do(t, app, fiber.MethodGet, base+"/export.pdf", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "%PDF-stub", string(body))

	status, _ = do(t, app, fiber.MethodDelete, base, "")
	assert.Equal(t, fiber.StatusNoContent, status)
	status, _ = do(t, app, fiber.MethodGet, base+"/preview", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
