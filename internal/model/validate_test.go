package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/domain"
)

func TestDecodeDocumentRoundTrip(t *testing.T) {
	raw, err := json.Marshal(domain.NewDocument())
	require.NoError(t, err)

	d, err := DecodeDocument(raw)
	require.NoError(t, err)
	assert.Len(t, d.Sections, 6)

	exp, _ := d.Section("experience")
	role, ok := exp.Entry("exp1-role")
	require.True(t, ok)
	require.NotNil(t, role.Group)
	assert.Equal(t, 1, role.Group.Index)
}

func TestDecodeDocumentRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not an object", `[]`},
		{"missing sections", `{}`},
		{"bad layout", `{"sections":[{"id":"a","title":"A","type":"grid","visible":true,"entries":[]}]}`},
		{"bad entry type", `{"sections":[{"id":"a","title":"A","type":"standard","visible":true,"entries":[{"id":"x","content":"","type":"markdown"}]}]}`},
		{"unknown template", `{"template":"fancy","sections":[]}`},
		{"duplicate sections", `{"sections":[
			{"id":"a","title":"A","type":"standard","visible":true,"entries":[]},
			{"id":"a","title":"B","type":"standard","visible":true,"entries":[]}]}`},
		{"header not first", `{"sections":[
			{"id":"a","title":"A","type":"standard","visible":true,"entries":[]},
			{"id":"header","title":"Header","type":"header","visible":true,"entries":[]}]}`},
		{"two summaries", `{"sections":[
			{"id":"header","title":"Header","type":"header","visible":true,"entries":[]},
			{"id":"s1","title":"S","type":"standard","kind":"summary","visible":true,"entries":[]},
			{"id":"s2","title":"S","type":"standard","kind":"summary","visible":true,"entries":[]}]}`},
		{"summary out of place", `{"sections":[
			{"id":"header","title":"Header","type":"header","visible":true,"entries":[]},
			{"id":"x","title":"X","type":"standard","visible":true,"entries":[]},
			{"id":"s1","title":"S","type":"standard","kind":"summary","visible":true,"entries":[]}]}`},
		{"no sections", `{"sections":[]}`},
		{"no header", `{"sections":[{"id":"a","title":"A","type":"standard","visible":true,"entries":[]}]}`},
		{"two headers", `{"sections":[
			{"id":"header","title":"Header","type":"header","visible":true,"entries":[]},
			{"id":"h2","title":"Header","type":"header","visible":true,"entries":[]}]}`},
		{"duplicate entries", `{"sections":[{"id":"header","title":"Header","type":"header","visible":true,"entries":[]},{"id":"a","title":"A","type":"standard","visible":true,"entries":[
			{"id":"x","content":""},{"id":"x","content":""}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestDecodeDocumentDefaultsTemplate(t *testing.T) {
	d, err := DecodeDocument([]byte(`{"sections":[{"id":"header","title":"Header","type":"header","visible":true,"entries":[]}]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateModern, d.Template)
}

func TestValidateMap(t *testing.T) {
	assert.NoError(t, ValidateMap(map[string]interface{}{"sections": []interface{}{}}))
	assert.ErrorIs(t, ValidateMap(map[string]interface{}{"sections": "nope"}), ErrSchema)
}
