package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
)

// Canvas is the editing view of one document: one editor controller per
// entry, each committing its edits back through the Builder. Content
// normalised on the way in (summary sanitizing, dates, scores) is synced
// back into the originating controller.
type Canvas struct {
	mu          sync.Mutex
	builder     *Builder
	doc         domain.Document
	preview     bool
	controllers map[fieldKey]*editor.Controller
}

type fieldKey struct {
	section string
	entry   string
}

func NewCanvas(b *Builder, d domain.Document) *Canvas {
	c := &Canvas{builder: b, doc: d, controllers: map[fieldKey]*editor.Controller{}}
	c.reconcile()
	return c
}

// Document returns the current document.
func (c *Canvas) Document() domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Apply runs a structural operation and brings the controllers in line with
// the result.
func (c *Canvas) Apply(op func(domain.Document) domain.Document) domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = op(c.doc)
	c.reconcile()
	return c.doc
}

// Controller returns the controller bound to an entry.
func (c *Canvas) Controller(sectionID, entryID string) (*editor.Controller, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ctrl, ok := c.controllers[fieldKey{sectionID, entryID}]
	return ctrl, ok
}

// PreviewMode reports whether the canvas renders statically.
func (c *Canvas) PreviewMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preview
}

// SetPreviewMode switches every controller between editing and preview.
func (c *Canvas) SetPreviewMode(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preview = on
	for _, ctrl := range c.controllers {
		ctrl.SetPreviewMode(on)
	}
}

// reconcile creates controllers for new entries, syncs existing ones and
// drops those whose entry is gone. Callers hold mu.
func (c *Canvas) reconcile() {
	live := map[fieldKey]bool{}
	for _, s := range c.doc.Sections {
		for _, e := range s.Entries {
			k := fieldKey{s.ID, e.ID}
			live[k] = true
			if ctrl, ok := c.controllers[k]; ok {
				ctrl.Sync(e.Content)
				continue
			}
			opts := editor.OptionsFor(domain.FieldFor(s, e))
			opts.PreviewMode = c.preview
			opts.OnChange = func(content string) { c.commit(k, content) }
			c.controllers[k] = editor.New(e.Content, opts)
		}
	}
	for k := range c.controllers {
		if !live[k] {
			delete(c.controllers, k)
		}
	}
}

func (c *Canvas) commit(k fieldKey, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = StoreField(c.builder, c.doc, k.section, k.entry, content)
	s, _ := c.doc.Section(k.section)
	if e, ok := s.Entry(k.entry); ok && e.Content != content {
		if ctrl, ok := c.controllers[k]; ok {
			ctrl.Sync(e.Content)
		}
	}
}

// StoreField normalises content for the entry's field type and stores it.
func StoreField(b *Builder, d domain.Document, sectionID, entryID, content string) domain.Document {
	s, ok := d.Section(sectionID)
	if !ok {
		return d
	}
	e, ok := s.Entry(entryID)
	if !ok {
		return d
	}
	switch f := domain.FieldFor(s, e); f.Kind {
	case domain.FieldDate:
		content = domain.NormalizeDate(content, f.AllowPresent)
	case domain.FieldScore:
		content = domain.NormalizeScore(content)
	}
	return b.UpdateEntry(d, sectionID, entryID, content)
}

// EditEntry runs edit against a detached controller for the entry, applying
// the field's sanitizing and length rules, and stores what it emits.
func EditEntry(b *Builder, d domain.Document, sectionID, entryID string, edit func(*editor.Controller)) domain.Document {
	s, ok := d.Section(sectionID)
	if !ok {
		return d
	}
	e, ok := s.Entry(entryID)
	if !ok {
		return d
	}
	out := d
	opts := editor.OptionsFor(domain.FieldFor(s, e))
	opts.OnChange = func(content string) {
		out = StoreField(b, d, sectionID, entryID, content)
	}
	edit(editor.New(e.Content, opts))
	return out
}

var canvasTemplate = template.Must(template.New("canvas").Parse(`<div class="canvas {{.Template}}">
{{- range .Sections}}
<section class="canvas-section" id="{{.ID}}" data-state="{{.State}}">
  <h2>{{.Title}}</h2>
  {{- if eq .State "collapsed"}}
  <div class="section-placeholder">{{.Title}} is hidden</div>
  {{- else}}
  {{- range .Fields}}<div class="field{{if .Hidden}} field-hidden{{end}}" data-entry="{{.ID}}">{{.View}}</div>{{end}}
  {{- end}}
</section>
{{- end}}
</div>`))

type canvasSection struct {
	ID     string
	Title  string
	State  SectionState
	Fields []canvasField
}

type canvasField struct {
	ID     string
	Hidden bool
	View   template.HTML
}

// Render returns the preview page in preview mode and the editable canvas
// otherwise.
func (c *Canvas) Render() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preview {
		return RenderPreview(c.doc)
	}

	view := struct {
		Template domain.Template
		Sections []canvasSection
	}{Template: c.doc.Template}
	for _, s := range c.doc.Sections {
		cs := canvasSection{ID: s.ID, Title: s.Title, State: EditorState(s)}
		for _, e := range s.Entries {
			ctrl, ok := c.controllers[fieldKey{s.ID, e.ID}]
			if !ok {
				continue
			}
			cs.Fields = append(cs.Fields, canvasField{ID: e.ID, Hidden: !e.IsVisible(), View: template.HTML(ctrl.View())})
		}
		view.Sections = append(view.Sections, cs)
	}
	var buf bytes.Buffer
	if err := canvasTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render canvas: %w", err)
	}
	return buf.String(), nil
}
