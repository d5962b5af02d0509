package usecase

import (
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/pkg/richtext"
)

// Direction is the way a section moves.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection reads "up" or "down".
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down:
		return d, true
	}
	return "", false
}

// Builder applies structural edits to a document. Every operation returns a
// new document and leaves its input untouched. A refused or inapplicable
// operation (unknown id, header or summary guard, duplicate summary) returns
// the input document itself.
type Builder struct {
	newID func() string
}

type BuilderOption func(*Builder)

// WithIDGenerator replaces the source of fresh id suffixes.
func WithIDGenerator(gen func() string) BuilderOption {
	return func(b *Builder) { b.newID = gen }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{newID: uuid.NewString}
	for _, o := range opts {
		o(b)
	}
	return b
}

// MoveSection swaps a section with its neighbour. The header and summary
// never move and nothing moves above them.
func (b *Builder) MoveSection(d domain.Document, sectionID string, dir Direction) domain.Document {
	i := d.Index(sectionID)
	if i < 0 {
		return d
	}
	target := d.Sections[i]
	if target.IsSummary() || target.IsHeader() {
		return d
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	} else if dir != Up {
		return d
	}
	if j < 0 || j >= len(d.Sections) {
		return d
	}
	if n := d.Sections[j]; n.IsSummary() || n.IsHeader() {
		return d
	}
	out := d.Clone()
	out.Sections[i], out.Sections[j] = out.Sections[j], out.Sections[i]
	return out
}

// ToggleSectionVisibility flips a section's visible flag. Entries keep their
// own flags.
func (b *Builder) ToggleSectionVisibility(d domain.Document, sectionID string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 || d.Sections[i].IsHeader() {
		return d
	}
	out := d.Clone()
	out.Sections[i].Visible = !out.Sections[i].Visible
	return out
}

// DeleteSection removes a section and all of its entries.
func (b *Builder) DeleteSection(d domain.Document, sectionID string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 || d.Sections[i].IsHeader() {
		return d
	}
	out := d.Clone()
	out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
	return out
}

// AddSection appends a new section of kind k seeded with its default
// entries. A summary goes directly after the header, and only one may exist.
// title applies to kinds without a fixed heading.
func (b *Builder) AddSection(d domain.Document, k domain.Kind, title string) domain.Document {
	if _, ok := domain.ParseKind(string(k)); !ok {
		return d
	}
	if k == domain.KindSummary && d.HasKind(domain.KindSummary) {
		return d
	}
	s := domain.NewSection(k, string(k)+"-"+b.newID(), strings.TrimSpace(title))

	out := d.Clone()
	if k != domain.KindSummary {
		out.Sections = append(out.Sections, s)
		return out
	}
	at := 0
	for i, sec := range out.Sections {
		if sec.IsHeader() {
			at = i + 1
			break
		}
	}
	out.Sections = append(out.Sections[:at], append([]domain.Section{s}, out.Sections[at:]...)...)
	return out
}

// AddEntry appends one unit to a section: a whole field group at the next
// free index for grouped kinds, otherwise one blank entry.
func (b *Builder) AddEntry(d domain.Document, sectionID string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 || d.Sections[i].IsHeader() {
		return d
	}
	out := d.Clone()
	s := &out.Sections[i]
	switch {
	case s.Grouped():
		g, _ := domain.SchemaFor(s.Kind)
		next := domain.NextGroupIndex(*s)
		s.Entries = append(s.Entries, g.Entries(next)...)
		s.GroupSeq = next
	case s.Layout == domain.LayoutSkills:
		s.Entries = append(s.Entries, domain.NewEntry(s.ID+"-skill-"+b.newID(), domain.ContentText, ""))
	default:
		s.Entries = append(s.Entries, domain.NewEntry("entry-"+b.newID(), domain.ContentText, ""))
	}
	return out
}

// DeleteEntry removes one entry. Header fields cannot be deleted.
func (b *Builder) DeleteEntry(d domain.Document, sectionID, entryID string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 || d.Sections[i].IsHeader() {
		return d
	}
	return b.removeEntries(d, i, func(e domain.Entry) bool { return e.ID == entryID })
}

// DeleteGroup removes every entry whose id starts with prefix followed by a
// dash.
func (b *Builder) DeleteGroup(d domain.Document, sectionID, prefix string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 || prefix == "" || d.Sections[i].IsHeader() {
		return d
	}
	return b.removeEntries(d, i, func(e domain.Entry) bool { return strings.HasPrefix(e.ID, prefix+"-") })
}

func (b *Builder) removeEntries(d domain.Document, i int, match func(domain.Entry) bool) domain.Document {
	kept := make([]domain.Entry, 0, len(d.Sections[i].Entries))
	for _, e := range d.Sections[i].Entries {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(d.Sections[i].Entries) {
		return d
	}
	out := d.Clone()
	out.Sections[i].Entries = kept
	return out
}

// UpdateEntry replaces an entry's content. The summary text is stored
// through the strict single-line sanitizer whatever its source.
func (b *Builder) UpdateEntry(d domain.Document, sectionID, entryID, content string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 {
		return d
	}
	s := d.Sections[i]
	if s.IsSummary() && entryID == domain.SummaryEntryID {
		content = richtext.SanitizeSingleLine(content)
	}
	for j, e := range s.Entries {
		if e.ID != entryID {
			continue
		}
		if e.Content == content {
			return d
		}
		out := d.Clone()
		out.Sections[i].Entries[j].Content = content
		return out
	}
	return d
}

// ToggleEntryVisibility flips the visibility of one entry, or of a whole
// group when targetID is a group prefix such as "exp2". A group takes the
// negation of its first member's state. Summary and skills entries are never
// individually hideable.
func (b *Builder) ToggleEntryVisibility(d domain.Document, sectionID, targetID string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 {
		return d
	}
	s := d.Sections[i]
	if s.IsSummary() || s.Layout == domain.LayoutSkills {
		return d
	}

	if kind, _, ok := domain.ParseGroupPrefix(targetID); ok && kind == s.Kind {
		members := groupMembers(s, targetID)
		if len(members) == 0 {
			return d
		}
		next := !s.Entries[members[0]].IsVisible()
		out := d.Clone()
		for _, j := range members {
			out.Sections[i].Entries[j] = out.Sections[i].Entries[j].WithVisible(next)
		}
		return out
	}

	for j, e := range s.Entries {
		if e.ID == targetID {
			out := d.Clone()
			out.Sections[i].Entries[j] = e.WithVisible(!e.IsVisible())
			return out
		}
	}
	return d
}

// groupMembers returns the indexes of the entries in group prefix, ordered
// by the kind's field schema so the first one is the group's representative.
func groupMembers(s domain.Section, prefix string) []int {
	var out []int
	g, _ := domain.SchemaFor(s.Kind)
	seen := map[int]bool{}
	for _, f := range g.Fields {
		for j, e := range s.Entries {
			if e.Group != nil && e.Group.Prefix() == prefix && e.Group.Role == f.Role {
				out = append(out, j)
				seen[j] = true
			}
		}
	}
	for j, e := range s.Entries {
		if !seen[j] && e.Group != nil && e.Group.Prefix() == prefix {
			out = append(out, j)
		}
	}
	return out
}

// ReorderEntries permutes a section's entries. Without grouping, order lists
// entry ids; with grouping it lists group prefixes and each group keeps its
// internal field order. Entries not covered by order keep their relative
// order at the end.
func (b *Builder) ReorderEntries(d domain.Document, sectionID string, order []string, grouped bool) domain.Document {
	i := d.Index(sectionID)
	if i < 0 {
		return d
	}
	entries := d.Sections[i].Entries
	placed := make([]bool, len(entries))
	next := make([]domain.Entry, 0, len(entries))

	key := func(e domain.Entry) string { return e.ID }
	if grouped {
		key = func(e domain.Entry) string {
			if e.Group == nil {
				return ""
			}
			return e.Group.Prefix()
		}
	}
	for _, k := range order {
		if k == "" {
			continue
		}
		for j, e := range entries {
			if !placed[j] && key(e) == k {
				placed[j] = true
				next = append(next, e)
			}
		}
	}
	for j, e := range entries {
		if !placed[j] {
			next = append(next, e)
		}
	}

	out := d.Clone()
	out.Sections[i].Entries = next
	return out
}

// UpdateSectionTitle renames a custom section. Typed sections keep their
// fixed titles.
func (b *Builder) UpdateSectionTitle(d domain.Document, sectionID, title string) domain.Document {
	i := d.Index(sectionID)
	if i < 0 {
		return d
	}
	s := d.Sections[i]
	if s.IsHeader() || s.Kind != domain.KindNone || s.Title == title {
		return d
	}
	out := d.Clone()
	out.Sections[i].Title = title
	return out
}

// SetTemplate selects the print template. Unknown names are ignored.
func (b *Builder) SetTemplate(d domain.Document, t domain.Template) domain.Document {
	if !t.Valid() || d.Template == t {
		return d
	}
	out := d.Clone()
	out.Template = t
	return out
}
