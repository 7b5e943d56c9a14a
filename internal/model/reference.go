package model

import (
	"path/filepath"
	"strings"
)

// Reference is a type reference split into its alias and local parts.
type Reference struct {
	Local  string // Type name inside its document
	Alias  string // Alias segment, empty for local references
	Origin string // Document path the alias resolves to, empty when local or unresolved
}

// IsExternal reports whether the reference points into another document.
func (r Reference) IsExternal() bool {
	return r.Origin != ""
}

// Resolve splits a dotted reference and looks up its alias in uses.
// With more than two segments the last one is the local name and the
// intermediate segments are ignored. An alias missing from uses leaves
// Origin empty.
func Resolve(ref string, uses []Alias) Reference {
	segments := splitReference(ref)
	if len(segments) == 0 {
		return Reference{}
	}

	r := Reference{Local: segments[len(segments)-1]}
	if len(segments) == 2 {
		r.Alias = segments[0]
		for _, a := range uses {
			if a.Name == r.Alias {
				r.Origin = a.Path
				break
			}
		}
	}
	return r
}

// LocalName returns the last segment of a dotted reference.
func LocalName(ref string) string {
	segments := splitReference(ref)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// IsUserReference reports whether a type string names a user-defined type
// rather than a primitive.
func IsUserReference(name string) bool {
	return name != "" && !IsPrimitive(name)
}

// ChangeExtension replaces the extension of a file's base name. An empty
// extension yields the bare base name.
func ChangeExtension(path, ext string) string {
	if path == "" {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if ext == "" {
		return base
	}
	return base + "." + ext
}

func splitReference(ref string) []string {
	return strings.FieldsFunc(ref, func(r rune) bool { return r == '.' })
}
