package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	uses := []Alias{{Name: "commonTypes", Path: "common.raml"}}

	tests := []struct {
		name string
		ref  string
		want Reference
	}{
		{
			name: "aliased reference",
			ref:  "commonTypes.Address",
			want: Reference{Local: "Address", Alias: "commonTypes", Origin: "common.raml"},
		},
		{
			name: "local reference",
			ref:  "Address",
			want: Reference{Local: "Address"},
		},
		{
			name: "missing alias keeps local name",
			ref:  "unknown.Address",
			want: Reference{Local: "Address", Alias: "unknown"},
		},
		{
			name: "more than two segments",
			ref:  "a.b.Address",
			want: Reference{Local: "Address"},
		},
		{
			name: "empty segments dropped",
			ref:  ".Address.",
			want: Reference{Local: "Address"},
		},
		{
			name: "empty",
			ref:  "",
			want: Reference{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.ref, uses))
		})
	}
}

func TestReferenceIsExternal(t *testing.T) {
	uses := []Alias{{Name: "c", Path: "c.raml"}}
	assert.True(t, Resolve("c.X", uses).IsExternal())
	assert.False(t, Resolve("X", uses).IsExternal())
	assert.False(t, Resolve("d.X", uses).IsExternal())
}

func TestIsUserReference(t *testing.T) {
	assert.True(t, IsUserReference("Widget"))
	assert.True(t, IsUserReference("common.Widget"))
	assert.False(t, IsUserReference("integer"))
	assert.False(t, IsUserReference(""))
}

func TestChangeExtension(t *testing.T) {
	assert.Equal(t, "common.xsd", ChangeExtension("libs/common.raml", "xsd"))
	assert.Equal(t, "common", ChangeExtension("common.raml", ""))
	assert.Equal(t, "noext.json", ChangeExtension("noext", "json"))
	assert.Equal(t, "", ChangeExtension("", "json"))
}
