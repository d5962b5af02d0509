package domain

import (
	"encoding/json"
	"strings"
)

// ContentKind tells how an entry's content is interpreted.
type ContentKind string

const (
	ContentText ContentKind = "text"
	ContentHTML ContentKind = "html"
)

// Layout selects the structural rules a section's entries follow.
type Layout string

const (
	LayoutHeader   Layout = "header"
	LayoutStandard Layout = "standard"
	LayoutSkills   Layout = "skills"
)

// Kind is the semantic tag of a section. Header and custom sections carry
// no kind.
type Kind string

const (
	KindNone           Kind = ""
	KindSummary        Kind = "summary"
	KindExperience     Kind = "experience"
	KindEducation      Kind = "education"
	KindSkills         Kind = "skills"
	KindProjects       Kind = "projects"
	KindCertifications Kind = "certifications"
	KindLanguages      Kind = "languages"
	KindHobbies        Kind = "hobbies"
	KindPublications   Kind = "publications"
	KindAwards         Kind = "awards"
	KindReferences     Kind = "references"
	KindVolunteer      Kind = "volunteer"
	KindCustom         Kind = "custom"
)

// OptionalKinds lists the kinds offered by the add-section picker, in
// display order. Custom is always available and therefore not listed.
var OptionalKinds = []Kind{
	KindSummary, KindExperience, KindEducation, KindSkills, KindProjects,
	KindCertifications, KindLanguages, KindHobbies, KindPublications,
	KindAwards, KindReferences, KindVolunteer,
}

// ParseKind maps a picker value onto a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == KindCustom {
		return k, true
	}
	for _, o := range OptionalKinds {
		if o == k {
			return k, true
		}
	}
	return KindNone, false
}

// HiddenValue is stored as the content of fields such as the academic score
// to mean "present but intentionally blank". It is distinct from an entry
// being hidden through its Visible flag and must survive round trips.
const HiddenValue = "__HIDDEN__"

// Entry is one atomic field of content.
type Entry struct {
	ID      string      `json:"id"`
	Content string      `json:"content"`
	Type    ContentKind `json:"type"`
	Visible *bool       `json:"visible,omitempty"`

	// Group is derived from ID once, when the entry is built or decoded.
	Group *GroupRef `json:"-"`
}

// NewEntry builds an entry and tags its group membership.
func NewEntry(id string, kind ContentKind, content string) Entry {
	return Entry{ID: id, Type: kind, Content: content, Group: ParseGroupRef(id)}
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	type plain Entry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = Entry(p)
	if e.Type == "" {
		e.Type = ContentText
	}
	e.Group = ParseGroupRef(e.ID)
	return nil
}

// IsVisible treats an absent flag as visible.
func (e Entry) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// WithVisible returns a copy of e with the visibility flag set.
func (e Entry) WithVisible(v bool) Entry {
	e.Visible = &v
	return e
}

// Section is an ordered collection of entries under one heading.
type Section struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Layout  Layout  `json:"type"`
	Kind    Kind    `json:"kind,omitempty"`
	Visible bool    `json:"visible"`
	Entries []Entry `json:"entries"`
	// GroupSeq is the highest group index ever allocated in a grouped
	// section.
	GroupSeq int `json:"groupSeq,omitempty"`
}

// IsHeader reports whether s is the document header.
func (s Section) IsHeader() bool { return s.Layout == LayoutHeader }

// IsSummary reports whether s is the professional summary.
func (s Section) IsSummary() bool { return s.Kind == KindSummary }

// Grouped reports whether entries of s are organised in numbered groups.
func (s Section) Grouped() bool {
	_, ok := SchemaFor(s.Kind)
	return ok
}

// Entry looks an entry up by id.
func (s Section) Entry(id string) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clone copies s including its entry slice.
func (s Section) Clone() Section {
	s.Entries = append([]Entry(nil), s.Entries...)
	return s
}

// Template names a print layout.
type Template string

const (
	TemplateModern  Template = "template-modern"
	TemplateClassic Template = "template-classic"
	TemplateMinimal Template = "template-minimal"
)

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	switch t {
	case TemplateModern, TemplateClassic, TemplateMinimal:
		return true
	}
	return false
}

// Document is the whole resume: an ordered list of sections. It is a plain
// tree of values with no identity beyond string ids.
type Document struct {
	Template Template  `json:"template,omitempty"`
	Sections []Section `json:"sections"`
}

// Index returns the position of the section with the given id, or -1.
func (d Document) Index(sectionID string) int {
	for i, s := range d.Sections {
		if s.ID == sectionID {
			return i
		}
	}
	return -1
}

// Section looks a section up by id.
func (d Document) Section(sectionID string) (Section, bool) {
	if i := d.Index(sectionID); i >= 0 {
		return d.Sections[i], true
	}
	return Section{}, false
}

// Clone returns a deep copy so the result can be modified freely.
func (d Document) Clone() Document {
	out := Document{Template: d.Template, Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// HasKind reports whether any section carries kind k.
func (d Document) HasKind(k Kind) bool {
	for _, s := range d.Sections {
		if s.Kind == k {
			return true
		}
	}
	return false
}
