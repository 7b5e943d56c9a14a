package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupPrimitive(t *testing.T) {
	tests := []struct {
		name string
		want Primitive
		ok   bool
	}{
		{"string", PrimitiveString, true},
		{"datetime-only", PrimitiveDateTimeOnly, true},
		{"", PrimitiveNone, true},
		{"Widget", "", false},
		{"common.Address", "", false},
		{"String", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupPrimitive(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentAliasPath(t *testing.T) {
	doc := &Document{Uses: []Alias{{Name: "common", Path: "common.raml"}}}

	path, ok := doc.AliasPath("common")
	assert.True(t, ok)
	assert.Equal(t, "common.raml", path)

	_, ok = doc.AliasPath("missing")
	assert.False(t, ok)
}

func TestDocumentRootTypes(t *testing.T) {
	doc := &Document{Types: []Type{
		{Name: "A", IsRootType: true},
		{Name: "B"},
		{Name: "C", IsRootType: true},
	}}

	roots := doc.RootTypes()
	if assert.Len(t, roots, 2) {
		assert.Equal(t, "A", roots[0].Name)
		assert.Equal(t, "C", roots[1].Name)
	}
}
