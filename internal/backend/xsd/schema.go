package xsd

import "encoding/xml"

// Namespace is the XML Schema namespace bound to the xs prefix.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Schema is an xs:schema document. Includes are written before items.
type Schema struct {
	XMLName              xml.Name  `xml:"xs:schema"`
	XS                   string    `xml:"xmlns:xs,attr"`
	TargetNamespace      string    `xml:"targetNamespace,attr,omitempty"`
	DefaultNamespace     string    `xml:"xmlns,attr,omitempty"`
	ElementFormDefault   string    `xml:"elementFormDefault,attr"`
	AttributeFormDefault string    `xml:"attributeFormDefault,attr"`
	Includes             []Include `xml:"xs:include"`
	Items                []interface{}
}

// NewSchema returns an empty schema bound to namespace.
func NewSchema(namespace string) *Schema {
	return &Schema{
		XS:                   Namespace,
		TargetNamespace:      namespace,
		DefaultNamespace:     namespace,
		ElementFormDefault:   "qualified",
		AttributeFormDefault: "unqualified",
	}
}

// AddInclude appends an xs:include unless location is already included.
func (s *Schema) AddInclude(location string) {
	for _, inc := range s.Includes {
		if inc.SchemaLocation == location {
			return
		}
	}
	s.Includes = append(s.Includes, Include{SchemaLocation: location})
}

type Include struct {
	XMLName        xml.Name `xml:"xs:include"`
	SchemaLocation string   `xml:"schemaLocation,attr"`
}

type Annotation struct {
	XMLName       xml.Name `xml:"xs:annotation"`
	Documentation string   `xml:"xs:documentation"`
}

type SimpleType struct {
	XMLName     xml.Name    `xml:"xs:simpleType"`
	Name        string      `xml:"name,attr"`
	Annotation  *Annotation `xml:"xs:annotation"`
	Restriction Restriction `xml:"xs:restriction"`
}

type Restriction struct {
	XMLName      xml.Name `xml:"xs:restriction"`
	Base         string   `xml:"base,attr,omitempty"`
	Enumerations []Facet  `xml:"xs:enumeration"`
	Pattern      *Facet   `xml:"xs:pattern"`
}

// Facet is a constraining facet such as xs:enumeration or xs:pattern.
type Facet struct {
	Value string `xml:"value,attr"`
}

type ComplexType struct {
	XMLName    xml.Name    `xml:"xs:complexType"`
	Name       string      `xml:"name,attr,omitempty"`
	Annotation *Annotation `xml:"xs:annotation"`
	Sequence   Sequence    `xml:"xs:sequence"`
}

type Sequence struct {
	Elements []Element `xml:"xs:element"`
}

type Element struct {
	XMLName     xml.Name     `xml:"xs:element"`
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr,omitempty"`
	MinOccurs   string       `xml:"minOccurs,attr,omitempty"`
	MaxOccurs   string       `xml:"maxOccurs,attr,omitempty"`
	Nillable    bool         `xml:"nillable,attr,omitempty"`
	Default     string       `xml:"default,attr,omitempty"`
	Annotation  *Annotation  `xml:"xs:annotation"`
	ComplexType *ComplexType `xml:"xs:complexType"`
}

func annotation(text string) *Annotation {
	if text == "" {
		return nil
	}
	return &Annotation{Documentation: text}
}
