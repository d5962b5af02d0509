package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-builder/internal/domain"
)

//go:embed document.schema.json
var documentSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(documentSchema)

// ErrSchema marks documents rejected by the schema or by structural checks.
var ErrSchema = errors.New("schema validation failed")

// ValidateJSON checks raw document JSON against document.schema.json.
func ValidateJSON(raw []byte) error {
	return validate(gojsonschema.NewBytesLoader(raw))
}

// ValidateMap checks a decoded document against document.schema.json.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
}

// DecodeDocument validates raw JSON and decodes it. Beyond the schema it
// enforces the structural rules the builder relies on: unique section ids,
// exactly one header placed first, at most one summary placed right after the
// header, and unique entry ids within a section.
func DecodeDocument(raw []byte) (domain.Document, error) {
	if err := ValidateJSON(raw); err != nil {
		return domain.Document{}, err
	}
	var d domain.Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Document{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err := checkStructure(d); err != nil {
		return domain.Document{}, err
	}
	if d.Template == "" {
		d.Template = domain.TemplateModern
	}
	return d, nil
}

func checkStructure(d domain.Document) error {
	if len(d.Sections) == 0 || !d.Sections[0].IsHeader() {
		return fmt.Errorf("%w: document must start with the header section", ErrSchema)
	}
	ids := map[string]bool{}
	summaries := 0
	for i, s := range d.Sections {
		if ids[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrSchema, s.ID)
		}
		ids[s.ID] = true
		if s.IsHeader() && i != 0 {
			return fmt.Errorf("%w: more than one header section", ErrSchema)
		}
		if s.IsSummary() {
			summaries++
			if summaries > 1 {
				return fmt.Errorf("%w: more than one summary section", ErrSchema)
			}
			if i != 1 {
				return fmt.Errorf("%w: summary must follow the header", ErrSchema)
			}
		}
		entries := map[string]bool{}
		for _, e := range s.Entries {
			if entries[e.ID] {
				return fmt.Errorf("%w: duplicate entry id %q in section %q", ErrSchema, e.ID, s.ID)
			}
			entries[e.ID] = true
		}
	}
	return nil
}
