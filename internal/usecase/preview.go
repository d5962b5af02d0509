package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
	"resume-builder/pkg/richtext"
)

// SectionState is how a section resolves on the canvas or in the preview.
type SectionState string

const (
	StateEditable   SectionState = "editable"
	StateCollapsed  SectionState = "collapsed"
	StateRendered   SectionState = "rendered"
	StateSuppressed SectionState = "suppressed"
)

// EditorState resolves a section on the editing canvas, where a hidden
// section collapses to a placeholder.
func EditorState(s domain.Section) SectionState {
	if s.Visible {
		return StateEditable
	}
	return StateCollapsed
}

// PreviewState resolves a section for preview and print. It renders only
// when visible and holding at least one visible entry with text.
func PreviewState(s domain.Section) SectionState {
	if !s.Visible {
		return StateSuppressed
	}
	for _, e := range s.Entries {
		if e.IsVisible() && hasText(e) {
			return StateRendered
		}
	}
	return StateSuppressed
}

func hasText(e domain.Entry) bool {
	if e.Content == domain.HiddenValue {
		return false
	}
	return strings.TrimSpace(plain(e)) != ""
}

// plain is the text of e without markup, whatever its stored type.
func plain(e domain.Entry) string {
	if e.Type == domain.ContentHTML {
		return richtext.PlainText(e.Content)
	}
	return richtext.StripTags(e.Content)
}

// isHTML reports whether e renders as markup. The field schema wins over a
// stored type that defaulted to text on import.
func isHTML(s domain.Section, e domain.Entry) bool {
	return e.Type == domain.ContentHTML || domain.FieldFor(s, e).ContentKind() == domain.ContentHTML
}

//go:embed templates
var templateFS embed.FS

var previewTemplate = template.Must(template.ParseFS(templateFS, "templates/preview.html"))

type previewPage struct {
	Template domain.Template
	Name     string
	Style    template.CSS
	Sections []previewSection
}

type previewSection struct {
	ID       string
	Title    string
	Layout   domain.Layout
	Name     string
	Role     string
	Contacts []string
	Items    []template.HTML
	Groups   []previewGroup
}

type previewGroup struct {
	Prefix      string
	Heading     []string
	Dates       string
	Score       string
	Description template.HTML
}

// RenderPreview renders d as a standalone HTML page with suppressed sections
// and hidden entries left out.
func RenderPreview(d domain.Document) (string, error) {
	style, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return "", fmt.Errorf("read stylesheet: %w", err)
	}
	tpl := d.Template
	if !tpl.Valid() {
		tpl = domain.TemplateModern
	}
	page := previewPage{Template: tpl, Style: template.CSS(style)}
	for _, s := range d.Sections {
		if PreviewState(s) != StateRendered {
			continue
		}
		ps := buildPreviewSection(s)
		if s.IsHeader() {
			page.Name = ps.Name
		}
		page.Sections = append(page.Sections, ps)
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return buf.String(), nil
}

func buildPreviewSection(s domain.Section) previewSection {
	ps := previewSection{ID: s.ID, Title: s.Title, Layout: s.Layout}
	switch {
	case s.IsHeader():
		for _, e := range s.Entries {
			if !e.IsVisible() || !hasText(e) {
				continue
			}
			text := strings.TrimSpace(plain(e))
			switch e.ID {
			case "name":
				ps.Name = text
			case "role":
				ps.Role = text
			default:
				ps.Contacts = append(ps.Contacts, text)
			}
		}
	case s.Grouped():
		ps.Groups = buildGroups(s)
	default:
		for _, e := range s.Entries {
			if e.IsVisible() && hasText(e) {
				if isHTML(s, e) {
					ps.Items = append(ps.Items, template.HTML(editor.Static(e.Content, true)))
				} else {
					ps.Items = append(ps.Items, template.HTML(editor.Static(strings.TrimSpace(plain(e)), false)))
				}
			}
		}
	}
	return ps
}

// buildGroups lays out grouped entries in ascending group index, driven by
// the kind's field schema. A group is hidden when its first member is.
func buildGroups(s domain.Section) []previewGroup {
	schema, _ := domain.SchemaFor(s.Kind)
	var out []previewGroup
	for _, idx := range domain.GroupIndexes(s) {
		members := domain.GroupEntries(s, idx)
		if first, ok := firstMember(schema, members); ok && !first.IsVisible() {
			continue
		}
		g := previewGroup{Prefix: domain.GroupPrefix(s.Kind, idx)}
		var start, end string
		for _, f := range schema.Fields {
			e, ok := members[f.Role]
			if !ok || !hasText(e) {
				continue
			}
			switch f.Kind {
			case domain.FieldDate:
				if f.Role == "start" {
					start = e.Content
				} else {
					end = e.Content
				}
			case domain.FieldScore:
				g.Score = e.Content
			case domain.FieldRich:
				g.Description = template.HTML(richtext.Sanitize(e.Content))
			default:
				g.Heading = append(g.Heading, strings.TrimSpace(plain(e)))
			}
		}
		g.Dates = joinDates(start, end)
		if len(g.Heading) == 0 && g.Dates == "" && g.Score == "" && g.Description == "" {
			continue
		}
		out = append(out, g)
	}
	return out
}

func firstMember(schema domain.GroupSchema, members map[string]domain.Entry) (domain.Entry, bool) {
	for _, f := range schema.Fields {
		if e, ok := members[f.Role]; ok {
			return e, true
		}
	}
	return domain.Entry{}, false
}

func joinDates(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	}
	return end
}
