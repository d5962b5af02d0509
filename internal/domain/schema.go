package domain

import "strings"

const (
	// SummaryEntryID is the single-line formatted field of the summary
	// section. Its content is always stored through the strict single-line
	// sanitizer.
	SummaryEntryID = "summary-text"

	SummaryMaxLength     = 300
	DescriptionMaxLength = 350
)

// FieldKind selects the editor used for a field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldSingleLine
	FieldRich
	FieldDate
	FieldScore
)

// Field describes one editable field.
type Field struct {
	Role         string
	Placeholder  string
	Kind         FieldKind
	MaxLength    int
	AllowPresent bool
}

// ContentKind is the content kind entries for this field are stored with.
func (f Field) ContentKind() ContentKind {
	switch f.Kind {
	case FieldSingleLine, FieldRich:
		return ContentHTML
	}
	return ContentText
}

// Rich reports whether the field edits with the formatting toolbar.
func (f Field) Rich() bool { return f.Kind == FieldRich }

// GroupSchema is the ordered field set of one group in a grouped section.
type GroupSchema struct {
	Kind   Kind
	Fields []Field
}

// Field returns the schema field for role.
func (g GroupSchema) Field(role string) (Field, bool) {
	for _, f := range g.Fields {
		if f.Role == role {
			return f, true
		}
	}
	return Field{}, false
}

// Entries builds the blank entries of group index i.
func (g GroupSchema) Entries(i int) []Entry {
	ref := GroupRef{Kind: g.Kind, Index: i}
	out := make([]Entry, 0, len(g.Fields))
	for _, f := range g.Fields {
		out = append(out, NewEntry(ref.EntryID(f.Role), f.ContentKind(), ""))
	}
	return out
}

var (
	descField = Field{Role: "desc", Placeholder: "Description", Kind: FieldRich, MaxLength: DescriptionMaxLength}
	optDesc   = Field{Role: "desc", Placeholder: "Description (optional)", Kind: FieldRich, MaxLength: DescriptionMaxLength}
	startDate = Field{Role: "start", Placeholder: "Start", Kind: FieldDate}
	endDate   = Field{Role: "end", Placeholder: "End", Kind: FieldDate, AllowPresent: true}
)

var groupSchemas = map[Kind]GroupSchema{
	KindExperience: {Kind: KindExperience, Fields: []Field{
		{Role: "role", Placeholder: "Role"},
		{Role: "company", Placeholder: "Company"},
		startDate,
		endDate,
		descField,
	}},
	KindEducation: {Kind: KindEducation, Fields: []Field{
		{Role: "degree", Placeholder: "Degree"},
		{Role: "institution", Placeholder: "Institution"},
		startDate,
		endDate,
		{Role: "gpa", Placeholder: "Score", Kind: FieldScore},
		optDesc,
	}},
	KindProjects: {Kind: KindProjects, Fields: []Field{
		{Role: "name", Placeholder: "Project Name"},
		{Role: "stack", Placeholder: "Tech Stack"},
		descField,
	}},
	KindVolunteer: {Kind: KindVolunteer, Fields: []Field{
		{Role: "role", Placeholder: "Role"},
		{Role: "organization", Placeholder: "Organization"},
		startDate,
		endDate,
		optDesc,
	}},
}

// SchemaFor returns the group schema of a grouped kind.
func SchemaFor(k Kind) (GroupSchema, bool) {
	g, ok := groupSchemas[k]
	return g, ok
}

// HeaderFields are the fixed entries of the header section, in order.
var HeaderFields = []string{"name", "role", "phone", "email", "location", "linkedin", "website"}

var headerPlaceholders = map[string]string{
	"name": "Full Name",
	"role": "Role / Title",
}

// FieldFor resolves the editor description of entry e inside section s.
func FieldFor(s Section, e Entry) Field {
	switch {
	case s.IsHeader():
		p, ok := headerPlaceholders[e.ID]
		if !ok {
			p = capitalize(e.ID)
		}
		return Field{Role: e.ID, Placeholder: p}
	case s.IsSummary() && e.ID == SummaryEntryID:
		return Field{Role: e.ID, Placeholder: "Professional Summary", Kind: FieldSingleLine, MaxLength: SummaryMaxLength}
	case s.Layout == LayoutSkills:
		return Field{Role: e.ID, Placeholder: "Skill"}
	}
	if e.Group != nil && e.Group.Kind == s.Kind {
		if g, ok := SchemaFor(s.Kind); ok {
			if f, ok := g.Field(e.Group.Role); ok {
				return f
			}
		}
	}
	return Field{Role: e.ID, Placeholder: "Entry"}
}

// kindInfo is the picker metadata of a kind.
type kindInfo struct {
	Title       string
	Description string
}

var kinds = map[Kind]kindInfo{
	KindSummary:        {"Professional Summary", "Short overview of your profile"},
	KindExperience:     {"Experience", "Work history and roles"},
	KindEducation:      {"Education", "Academic background"},
	KindSkills:         {"Skills", "Programming languages, frameworks, tools"},
	KindProjects:       {"Projects", "Personal and professional projects"},
	KindCertifications: {"Certifications", "Professional certifications and licenses"},
	KindLanguages:      {"Languages", "Language proficiencies"},
	KindHobbies:        {"Hobbies & Interests", "Personal interests and activities"},
	KindPublications:   {"Publications", "Articles, papers, and publications"},
	KindAwards:         {"Awards & Honors", "Recognition and achievements"},
	KindReferences:     {"References", "Professional references"},
	KindVolunteer:      {"Volunteer Experience", "Community service and volunteering"},
	KindCustom:         {"New Section", "Create your own section"},
}

// DefaultTitle is the heading a new section of kind k gets when no title is
// supplied.
func DefaultTitle(k Kind) string {
	if info, ok := kinds[k]; ok {
		return info.Title
	}
	return capitalize(string(k))
}

// Description is the one-line explanation shown by the section picker.
func Description(k Kind) string {
	return kinds[k].Description
}

// AvailableKinds lists the kinds that can still be added to d: every optional
// kind not yet present, followed by custom, which is always available.
func AvailableKinds(d Document) []Kind {
	var out []Kind
	for _, k := range OptionalKinds {
		if !d.HasKind(k) {
			out = append(out, k)
		}
	}
	return append(out, KindCustom)
}

// AllKindsAdded reports whether every optional kind is already present.
func AllKindsAdded(d Document) bool {
	return len(AvailableKinds(d)) == 1
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
