// Package xsd projects the type model onto an XML Schema document.
package xsd

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"

	"ramlconv/internal/generator"
	"ramlconv/internal/model"
)

// Extension is the file extension of generated schemas.
const Extension = "xsd"

// Primitives maps every primitive onto its xs: data type.
var Primitives = map[model.Primitive]string{
	model.PrimitiveNone:         "xs:string",
	model.PrimitiveBoolean:      "xs:boolean",
	model.PrimitiveDateOnly:     "xs:date",
	model.PrimitiveDateTime:     "xs:dateTime",
	model.PrimitiveDateTimeOnly: "xs:dateTime",
	model.PrimitiveInteger:      "xs:integer",
	model.PrimitiveNil:          "xs:string",
	model.PrimitiveNumber:       "xs:decimal",
	model.PrimitiveString:       "xs:string",
	model.PrimitiveTimeOnly:     "xs:time",
}

// Projection renders XML Schema.
type Projection struct{}

// New returns the XML Schema projection.
func New() *Projection {
	return &Projection{}
}

func (p *Projection) Language() string      { return "xsd" }
func (p *Projection) FileExtension() string { return Extension }

func (p *Projection) Initialize(doc *model.Document, opts generator.Options) *Schema {
	return NewSchema(opts.XMLNamespace)
}

// ProjectType maps t onto an xs:simpleType or xs:complexType.
func (p *Projection) ProjectType(doc *model.Document, t model.Type, opts generator.Options) (interface{}, bool, error) {
	switch t.Shape {
	case model.ShapeEnum:
		st := &SimpleType{Name: t.Name, Annotation: annotation(opts.Description(t.Description))}
		st.Restriction.Base = TypeName(t.ItemType, opts.TypeMappings)
		for _, v := range t.EnumValues {
			st.Restriction.Enumerations = append(st.Restriction.Enumerations, Facet{Value: v})
		}
		return st, true, nil

	case model.ShapeArray:
		ct := &ComplexType{Name: t.Name, Annotation: annotation(opts.Description(t.Description))}
		ct.Sequence.Elements = []Element{{
			Name:      t.ItemName,
			Type:      TypeName(t.ItemType, opts.TypeMappings),
			MaxOccurs: "unbounded",
		}}
		return ct, true, nil

	case model.ShapeBaseRestriction:
		st := &SimpleType{Name: t.Name, Annotation: annotation(opts.Description(t.Description))}
		st.Restriction.Base = TypeName(t.BaseType, opts.TypeMappings)
		if t.Pattern != "" {
			st.Restriction.Pattern = &Facet{Value: t.Pattern}
		}
		return st, true, nil

	case model.ShapeObject:
		ct := &ComplexType{Name: t.Name, Annotation: annotation(opts.Description(t.Description))}
		for _, prop := range t.Properties {
			ct.Sequence.Elements = append(ct.Sequence.Elements, propertyElement(prop, opts))
		}
		return ct, true, nil
	}

	return nil, false, errors.Newf("unknown shape %q", t.Shape)
}

func propertyElement(prop model.Property, opts generator.Options) Element {
	el := Element{
		Name:       prop.Name,
		Default:    prop.Default,
		Annotation: annotation(opts.Description(prop.Description)),
	}

	if item, ok := prop.InlineArrayItem(); ok {
		el.ComplexType = &ComplexType{Sequence: Sequence{Elements: []Element{{
			Name:      prop.ArrayItemName,
			Type:      TypeName(item, opts.TypeMappings),
			MinOccurs: "0",
			MaxOccurs: "unbounded",
		}}}}
	} else {
		el.Type = TypeName(prop.Type, opts.TypeMappings)
	}

	if !prop.Required {
		el.MinOccurs = "0"
		el.Nillable = true
	}
	return el
}

// TypeName returns the xs: type for a primitive and the unqualified local
// name for a user reference. Included schemas share the target namespace.
// Entries in mappings take precedence.
func TypeName(typeName string, mappings map[string]string) string {
	if mapped, ok := mappings[typeName]; ok {
		return mapped
	}
	if prim, ok := model.LookupPrimitive(typeName); ok {
		return Primitives[prim]
	}
	return model.LocalName(typeName)
}

func (p *Projection) Accumulate(schema *Schema, projected interface{}) {
	schema.Items = append(schema.Items, projected)
}

func (p *Projection) Finalize(schema *Schema, opts generator.Options) {}

// AddExternalReferences includes the schema generated for every aliased document.
func (p *Projection) AddExternalReferences(schema *Schema, doc *model.Document, opts generator.Options) {
	for _, alias := range doc.Uses {
		schema.AddInclude(model.ChangeExtension(alias.Path, Extension))
	}
}

// RootArtifact writes <lowerName>.xsd, which includes the main schema and
// declares a global element of the root type.
func (p *Projection) RootArtifact(doc *model.Document, t model.Type, opts generator.Options) (generator.Artifact, error) {
	name := generator.LowerFirst(t.Name)

	schema := NewSchema(opts.XMLNamespace)
	schema.AddInclude(generator.ArtifactName(doc, Extension))
	schema.Items = append(schema.Items, &Element{Name: name, Type: t.Name})

	return generator.Artifact{
		Name: name + "." + Extension,
		Render: func(w io.Writer) error {
			return encode(w, schema, opts)
		},
	}, nil
}

func (p *Projection) Write(w io.Writer, schema *Schema, opts generator.Options) error {
	return encode(w, schema, opts)
}

func encode(w io.Writer, schema *Schema, opts generator.Options) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "writing xml header")
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", opts.Indent("  "))
	if err := enc.Encode(schema); err != nil {
		return errors.Wrap(err, "encoding schema")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "flushing schema")
	}

	_, err := io.WriteString(w, "\n")
	return err
}
