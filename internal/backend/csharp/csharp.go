// Package csharp projects the type model onto C# data-contract classes.
package csharp

import (
	"embed"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"ramlconv/internal/generator"
	"ramlconv/internal/model"
)

//go:embed templates/csharp.tmpl
var templates embed.FS

const (
	// Extension is the file extension of generated sources.
	Extension = "cs"

	// DefaultNamespace is used when no target namespace is configured.
	DefaultNamespace = "DataContract"

	templateName = "templates/csharp.tmpl"
)

// Kinds of generated declarations.
const (
	KindClass      = "class"
	KindEnum       = "enum"
	KindCollection = "collection"
	KindValue      = "value"
)

// Primitives maps every primitive onto a C# type.
var Primitives = map[model.Primitive]string{
	model.PrimitiveNone:         "string",
	model.PrimitiveBoolean:      "bool",
	model.PrimitiveDateOnly:     "string",
	model.PrimitiveDateTime:     "string",
	model.PrimitiveDateTimeOnly: "string",
	model.PrimitiveInteger:      "int",
	model.PrimitiveNil:          "string",
	model.PrimitiveNumber:       "decimal",
	model.PrimitiveString:       "string",
	model.PrimitiveTimeOnly:     "string",
}

// Value types that need a nullable wrapper when optional.
var valueTypes = map[string]bool{
	"bool":     true,
	"int":      true,
	"decimal":  true,
	"DateTime": true,
}

// Usings are the namespaces imported by every generated file.
var Usings = []string{
	"System",
	"System.Runtime.Serialization",
	"System.Collections.Generic",
	"System.ComponentModel.DataAnnotations",
	"Newtonsoft.Json",
	"Newtonsoft.Json.Converters",
}

// File is the rendered compilation unit.
type File struct {
	Usings    []string
	Namespace string
	Types     []Type
}

// Type is one generated declaration.
type Type struct {
	Kind         string
	Name         string
	Comment      string
	XMLNamespace string

	Members    []Member   // enum
	ItemName   string     // collection
	ItemType   string     // collection
	BaseType   string     // value
	Properties []Property // class

	PatternLiteral string // value
}

// Member is an enum member. Name is a valid identifier, Value the literal.
type Member struct {
	Name  string
	Value string
}

// Property is a class member.
type Property struct {
	Name     string
	Type     string
	Comment  string
	Required bool
}

// Projection renders C#.
type Projection struct{}

// New returns the C# projection.
func New() *Projection {
	return &Projection{}
}

func (p *Projection) Language() string      { return "csharp" }
func (p *Projection) FileExtension() string { return Extension }

func (p *Projection) Initialize(doc *model.Document, opts generator.Options) *File {
	ns := opts.TargetNamespace
	if ns == "" {
		ns = DefaultNamespace
	}
	return &File{Usings: Usings, Namespace: ns}
}

func (p *Projection) ProjectType(doc *model.Document, t model.Type, opts generator.Options) (Type, bool, error) {
	out := Type{
		Name:         generator.Identifier(t.Name),
		Comment:      opts.Description(t.Description),
		XMLNamespace: opts.XMLNamespace,
	}

	switch t.Shape {
	case model.ShapeEnum:
		out.Kind = KindEnum
		for _, v := range t.EnumValues {
			out.Members = append(out.Members, Member{Name: generator.Identifier(v), Value: v})
		}

	case model.ShapeArray:
		out.Kind = KindCollection
		out.ItemName = t.ItemName
		out.ItemType = TypeName(t.ItemType, opts.TypeMappings)

	case model.ShapeBaseRestriction:
		out.Kind = KindValue
		out.BaseType = TypeName(t.BaseType, opts.TypeMappings)
		if t.Pattern != "" {
			out.PatternLiteral = verbatim(t.Pattern)
		}

	case model.ShapeObject:
		out.Kind = KindClass
		for _, prop := range t.Properties {
			out.Properties = append(out.Properties, Property{
				Name:     generator.Identifier(prop.Name),
				Type:     propertyType(prop, opts.TypeMappings),
				Comment:  opts.Description(prop.Description),
				Required: prop.Required,
			})
		}

	default:
		return Type{}, false, errors.Newf("unknown shape %q", t.Shape)
	}

	return out, true, nil
}

// TypeName maps a primitive onto its C# type and a reference onto its
// local name. Aliased documents share the target namespace. Entries in
// mappings take precedence.
func TypeName(typeName string, mappings map[string]string) string {
	if mapped, ok := mappings[typeName]; ok {
		return mapped
	}
	if item, ok := strings.CutSuffix(typeName, "[]"); ok {
		return "List<" + TypeName(item, mappings) + ">"
	}
	if prim, ok := model.LookupPrimitive(typeName); ok {
		return Primitives[prim]
	}
	return generator.Identifier(model.LocalName(typeName))
}

func propertyType(prop model.Property, mappings map[string]string) string {
	var typ string
	if mapped, ok := mappings[prop.Type]; ok {
		typ = mapped
	} else if item, ok := prop.InlineArrayItem(); ok {
		typ = "List<" + TypeName(item, mappings) + ">"
	} else {
		typ = TypeName(prop.Type, mappings)
	}
	if !prop.Required && valueTypes[typ] {
		return typ + "?"
	}
	return typ
}

func verbatim(s string) string {
	return `@"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (p *Projection) Accumulate(file *File, t Type) {
	file.Types = append(file.Types, t)
}

func (p *Projection) Finalize(file *File, opts generator.Options) {}

func (p *Projection) Write(w io.Writer, file *File, opts generator.Options) error {
	tmpl, err := generator.LoadTemplate(templates, templateName, opts)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, file); err != nil {
		return errors.Wrap(err, "executing csharp template")
	}
	return nil
}
