// Package typescript projects the type model onto TypeScript classes,
// enums and type aliases decorated for xml-decorators.
package typescript

import (
	"embed"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"ramlconv/internal/generator"
	"ramlconv/internal/model"
)

//go:embed templates/typescript.tmpl
var templates embed.FS

const (
	// Extension is the file extension of generated sources.
	Extension = "ts"

	templateName = "templates/typescript.tmpl"
)

// Kinds of generated declarations.
const (
	KindClass = "class"
	KindEnum  = "enum"
	KindArray = "array"
	KindAlias = "alias"
)

// Primitives maps every primitive onto a TypeScript type.
var Primitives = map[model.Primitive]string{
	model.PrimitiveNone:         "string",
	model.PrimitiveBoolean:      "boolean",
	model.PrimitiveDateOnly:     "string",
	model.PrimitiveDateTime:     "string",
	model.PrimitiveDateTimeOnly: "string",
	model.PrimitiveInteger:      "number",
	model.PrimitiveNil:          "null",
	model.PrimitiveNumber:       "number",
	model.PrimitiveString:       "string",
	model.PrimitiveTimeOnly:     "string",
}

// Module is the rendered source file.
type Module struct {
	DisableLint bool
	Imports     []Import
	Types       []Type
}

// Import binds an alias to a sibling module.
type Import struct {
	Alias  string
	Module string
}

// Type is one exported declaration.
type Type struct {
	Kind    string
	Name    string
	Comment string

	Members    []Member   // enum
	ItemType   string     // array
	BaseType   string     // alias
	Pattern    string     // alias
	Properties []Property // class
}

// Member is an enum member.
type Member struct {
	Name  string
	Value string
}

// Property is a class field.
type Property struct {
	Name     string
	Type     string
	Comment  string
	ItemName string
	Required bool
}

// Projection renders TypeScript.
type Projection struct{}

// New returns the TypeScript projection.
func New() *Projection {
	return &Projection{}
}

func (p *Projection) Language() string      { return "typescript" }
func (p *Projection) FileExtension() string { return Extension }

func (p *Projection) Initialize(doc *model.Document, opts generator.Options) *Module {
	return &Module{DisableLint: opts.DisableLint}
}

func (p *Projection) ProjectType(doc *model.Document, t model.Type, opts generator.Options) (Type, bool, error) {
	out := Type{
		Name:    generator.Identifier(t.Name),
		Comment: opts.Description(t.Description),
	}

	switch t.Shape {
	case model.ShapeEnum:
		out.Kind = KindEnum
		for _, v := range t.EnumValues {
			out.Members = append(out.Members, Member{Name: generator.Identifier(v), Value: v})
		}

	case model.ShapeArray:
		out.Kind = KindArray
		out.ItemType = TypeName(t.ItemType, doc.Uses, opts.TypeMappings)

	case model.ShapeBaseRestriction:
		out.Kind = KindAlias
		out.BaseType = TypeName(t.BaseType, doc.Uses, opts.TypeMappings)
		out.Pattern = t.Pattern

	case model.ShapeObject:
		out.Kind = KindClass
		for _, prop := range t.Properties {
			out.Properties = append(out.Properties, Property{
				Name:     prop.Name,
				Type:     propertyType(prop, doc.Uses, opts.TypeMappings),
				Comment:  opts.Description(prop.Description),
				ItemName: prop.ArrayItemName,
				Required: prop.Required,
			})
		}

	default:
		return Type{}, false, errors.Newf("unknown shape %q", t.Shape)
	}

	return out, true, nil
}

// TypeName maps primitives onto TypeScript types. A reference into an
// aliased document is qualified with the alias, which names the namespace
// import; any other reference falls back to its local name. Entries in
// mappings take precedence.
func TypeName(typeName string, uses []model.Alias, mappings map[string]string) string {
	if mapped, ok := mappings[typeName]; ok {
		return mapped
	}
	if item, ok := strings.CutSuffix(typeName, "[]"); ok {
		return TypeName(item, uses, mappings) + "[]"
	}
	if prim, ok := model.LookupPrimitive(typeName); ok {
		return Primitives[prim]
	}

	ref := model.Resolve(typeName, uses)
	local := generator.Identifier(ref.Local)
	if ref.IsExternal() {
		return ref.Alias + "." + local
	}
	return local
}

func propertyType(prop model.Property, uses []model.Alias, mappings map[string]string) string {
	if mapped, ok := mappings[prop.Type]; ok {
		return mapped
	}
	if item, ok := prop.InlineArrayItem(); ok {
		return TypeName(item, uses, mappings) + "[]"
	}
	return TypeName(prop.Type, uses, mappings)
}

func (p *Projection) Accumulate(m *Module, t Type) {
	m.Types = append(m.Types, t)
}

func (p *Projection) Finalize(m *Module, opts generator.Options) {}

// AddExternalReferences imports every aliased document as a namespace.
func (p *Projection) AddExternalReferences(m *Module, doc *model.Document, opts generator.Options) {
	for _, alias := range doc.Uses {
		m.Imports = append(m.Imports, Import{
			Alias:  alias.Name,
			Module: model.ChangeExtension(alias.Path, ""),
		})
	}
}

func (p *Projection) Write(w io.Writer, m *Module, opts generator.Options) error {
	tmpl, err := generator.LoadTemplate(templates, templateName, opts)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, m); err != nil {
		return errors.Wrap(err, "executing typescript template")
	}
	return nil
}
