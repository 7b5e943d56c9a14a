// Package jsonschema projects the type model onto a JSON Schema document
// with one definition per declared type.
package jsonschema

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"ramlconv/internal/generator"
	"ramlconv/internal/model"
)

const (
	// Extension is the file extension of generated schemas.
	Extension = "json"

	// Draft is the meta-schema declared by generated documents.
	Draft = "http://json-schema.org/draft-07/schema#"

	definitionsPointer = "#/definitions/"
)

// Primitives maps every primitive onto a JSON Schema type keyword.
var Primitives = map[model.Primitive]string{
	model.PrimitiveNone:         "string",
	model.PrimitiveBoolean:      "boolean",
	model.PrimitiveDateOnly:     "string",
	model.PrimitiveDateTime:     "string",
	model.PrimitiveDateTimeOnly: "string",
	model.PrimitiveInteger:      "integer",
	model.PrimitiveNil:          "null",
	model.PrimitiveNumber:       "number",
	model.PrimitiveString:       "string",
	model.PrimitiveTimeOnly:     "string",
}

// Document is the generated file: draft-07 style definitions kept in
// declaration order.
type Document struct {
	Schema      string                                            `json:"$schema,omitempty"`
	Title       string                                            `json:"title,omitempty"`
	Definitions *orderedmap.OrderedMap[string, *jsonschema.Schema] `json:"definitions"`
}

// Definition is one projected type.
type Definition struct {
	Name   string
	Schema *jsonschema.Schema
}

// Projection renders JSON Schema.
type Projection struct{}

// New returns the JSON Schema projection.
func New() *Projection {
	return &Projection{}
}

func (p *Projection) Language() string      { return "jsonschema" }
func (p *Projection) FileExtension() string { return Extension }

func (p *Projection) Initialize(doc *model.Document, opts generator.Options) *Document {
	return &Document{
		Schema:      Draft,
		Title:       opts.Description(doc.Usage),
		Definitions: orderedmap.New[string, *jsonschema.Schema](),
	}
}

func (p *Projection) ProjectType(doc *model.Document, t model.Type, opts generator.Options) (Definition, bool, error) {
	s := &jsonschema.Schema{
		Title:       t.Name,
		Description: opts.Description(t.Description),
	}

	switch t.Shape {
	case model.ShapeEnum:
		applyType(s, doc, t.ItemType, opts)
		for _, v := range t.EnumValues {
			s.Enum = append(s.Enum, v)
		}

	case model.ShapeArray:
		s.Type = "array"
		s.Items = &jsonschema.Schema{}
		applyType(s.Items, doc, t.ItemType, opts)

	case model.ShapeBaseRestriction:
		applyType(s, doc, t.BaseType, opts)
		s.Pattern = t.Pattern

	case model.ShapeObject:
		s.Type = "object"
		if t.AdditionalProperties {
			s.AdditionalProperties = jsonschema.TrueSchema
		} else {
			s.AdditionalProperties = jsonschema.FalseSchema
		}
		s.MinProperties = count(t.MinProperties)
		s.MaxProperties = count(t.MaxProperties)

		if len(t.Properties) > 0 {
			s.Properties = jsonschema.NewProperties()
		}
		for _, prop := range t.Properties {
			s.Properties.Set(prop.Name, property(doc, prop, opts))
			if prop.Required {
				s.Required = append(s.Required, prop.Name)
			}
		}

	default:
		return Definition{}, false, errors.Newf("unknown shape %q", t.Shape)
	}

	return Definition{Name: t.Name, Schema: s}, true, nil
}

func property(doc *model.Document, prop model.Property, opts generator.Options) *jsonschema.Schema {
	s := &jsonschema.Schema{Description: opts.Description(prop.Description)}
	if prop.Default != "" {
		s.Default = prop.Default
	}

	if item, ok := prop.InlineArrayItem(); ok {
		s.Type = "array"
		s.Items = &jsonschema.Schema{}
		applyType(s.Items, doc, item, opts)
		return s
	}

	applyType(s, doc, prop.Type, opts)
	return s
}

// applyType sets the type keyword for a primitive or mapped type, or a $ref
// for anything else. Unknown names are treated as user references.
func applyType(s *jsonschema.Schema, doc *model.Document, typeName string, opts generator.Options) {
	if mapped, ok := opts.TypeMappings[typeName]; ok {
		s.Type = mapped
		return
	}
	if prim, ok := model.LookupPrimitive(typeName); ok {
		s.Type = Primitives[prim]
		return
	}
	s.Ref = Ref(doc, typeName)
}

// Ref builds the reference to a user type: <file>.json#/definitions/<Local>
// for aliased types and #/definitions/<Local> for local or unresolved ones.
func Ref(doc *model.Document, typeName string) string {
	ref := model.Resolve(typeName, doc.Uses)
	if !ref.IsExternal() {
		return definitionsPointer + ref.Local
	}
	return model.ChangeExtension(ref.Origin, Extension) + definitionsPointer + ref.Local
}

func count(n *int) *uint64 {
	if n == nil || *n < 0 {
		return nil
	}
	v := uint64(*n)
	return &v
}

func (p *Projection) Accumulate(doc *Document, def Definition) {
	doc.Definitions.Set(def.Name, def.Schema)
}

func (p *Projection) Finalize(doc *Document, opts generator.Options) {}

// RootArtifact writes <lowerName>.json holding a single $ref into the main
// document.
func (p *Projection) RootArtifact(doc *model.Document, t model.Type, opts generator.Options) (generator.Artifact, error) {
	root := &jsonschema.Schema{
		Ref: generator.ArtifactName(doc, Extension) + definitionsPointer + t.Name,
	}

	return generator.Artifact{
		Name: generator.LowerFirst(t.Name) + "." + Extension,
		Render: func(w io.Writer) error {
			return encode(w, root, opts)
		},
	}, nil
}

func (p *Projection) Write(w io.Writer, doc *Document, opts generator.Options) error {
	return encode(w, doc, opts)
}

func encode(w io.Writer, v interface{}, opts generator.Options) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", opts.Indent("  "))
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding json schema")
	}
	return nil
}
