// Package model defines the canonical, backend-independent representation of a RAML type library.
package model

import "strings"

// Shape represents the structural category of a declared type.
type Shape string

const (
	ShapeObject          Shape = "object"
	ShapeArray           Shape = "array"
	ShapeEnum            Shape = "enum"
	ShapeBaseRestriction Shape = "base"
)

// Document represents one parsed RAML library.
type Document struct {
	Path  string  // Source file path
	Usage string  // Document-level usage text (optional)
	Uses  []Alias // Alias table in declaration order
	Types []Type  // Declared types in declaration order
}

// Alias maps a short library name to an external document path.
type Alias struct {
	Name string // Alias used as reference prefix (e.g., "common")
	Path string // Referenced document (e.g., "common.raml")
}

// Type represents one declared type. Exactly one shape applies; the fields
// of the other shapes are left zero.
type Type struct {
	Name        string // Type name, unique within a document
	Description string // Documentation text (optional)
	Shape       Shape  // Structural category
	IsRootType  bool   // Whether the type was configured as an entry point

	// Object
	Properties           []Property
	AdditionalProperties bool
	MinProperties        *int
	MaxProperties        *int

	// Array and Enum
	ItemType   string   // Item primitive or reference
	ItemName   string   // Per-item element label (Array only)
	EnumValues []string // Literal values in declaration order (Enum only)

	// BaseRestriction
	BaseType string // Restricted primitive or reference
	Pattern  string // Regular expression facet (optional)
}

// Property represents one property of an object type.
type Property struct {
	Name          string // Property name without the optionality marker
	Type          string // Primitive or reference; may denote an inline array
	Description   string // Documentation text (optional)
	Default       string // Default value literal (optional)
	Required      bool   // Whether the property must be present
	ArrayItemName string // Item label, set only for array-like types
	ItemType      string // Item type of an inline array (`X[]`, or `array` with `items`)
}

// AliasPath returns the document path registered for an alias.
func (d *Document) AliasPath(name string) (string, bool) {
	for _, a := range d.Uses {
		if a.Name == name {
			return a.Path, true
		}
	}
	return "", false
}

// RootTypes returns the types flagged as entry points, in declaration order.
func (d *Document) RootTypes() []Type {
	var roots []Type
	for _, t := range d.Types {
		if t.IsRootType {
			roots = append(roots, t)
		}
	}
	return roots
}

// InlineArrayItem returns the item type when the property is an inline
// array: either `X[]` or `type: array`. Named collection types are
// references, not inline arrays.
func (p Property) InlineArrayItem() (string, bool) {
	if item, ok := strings.CutSuffix(p.Type, "[]"); ok {
		return item, true
	}
	if p.Type == TypeArray {
		return p.ItemType, true
	}
	return "", false
}

// IsOptional reports whether the property may be omitted.
func (p Property) IsOptional() bool {
	return !p.Required
}
