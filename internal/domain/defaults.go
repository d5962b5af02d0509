package domain

import "strconv"

// NewSection builds a section of kind k seeded with its default entries.
// Grouped kinds start with group 1. Sections of kind custom carry no kind so
// that any number of them can coexist and their titles stay editable.
func NewSection(k Kind, id, title string) Section {
	s := Section{ID: id, Layout: LayoutStandard, Kind: k, Visible: true}
	switch k {
	case KindSummary:
		s.Title = DefaultTitle(k)
		s.Entries = []Entry{NewEntry(SummaryEntryID, ContentHTML, "")}
	case KindSkills:
		s.Title = DefaultTitle(k)
		s.Layout = LayoutSkills
		for i := 1; i <= 3; i++ {
			s.Entries = append(s.Entries, NewEntry(id+"-skill"+strconv.Itoa(i), ContentText, ""))
		}
	case KindExperience, KindEducation, KindProjects, KindVolunteer:
		s.Title = DefaultTitle(k)
		g, _ := SchemaFor(k)
		s.Entries = g.Entries(1)
		s.GroupSeq = 1
	default:
		if k == KindCustom {
			s.Kind = KindNone
		}
		s.Title = title
		if s.Title == "" {
			s.Title = DefaultTitle(k)
		}
		s.Entries = []Entry{NewEntry(id+"-entry1", ContentText, "")}
	}
	return s
}

// NewHeader builds the header section with its fixed fields.
func NewHeader() Section {
	s := Section{ID: "header", Title: "Header", Layout: LayoutHeader, Visible: true}
	for _, f := range HeaderFields {
		s.Entries = append(s.Entries, NewEntry(f, ContentText, ""))
	}
	return s
}

// NewDocument returns the starting document of a new resume.
func NewDocument() Document {
	skills := NewSection(KindSkills, "skills", "")
	for i := range skills.Entries {
		skills.Entries[i] = NewEntry("skill"+strconv.Itoa(i+1), ContentText, "")
	}
	return Document{
		Template: TemplateModern,
		Sections: []Section{
			NewHeader(),
			NewSection(KindSummary, "summary", ""),
			NewSection(KindExperience, "experience", ""),
			NewSection(KindEducation, "education", ""),
			skills,
			NewSection(KindProjects, "projects", ""),
		},
	}
}
