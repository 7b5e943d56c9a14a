package parser

import (
	"strings"

	"ramlconv/internal/model"
)

// NormalizeProperty converts one raw property entry into a canonical property.
//
// A trailing "?" on the key makes the property optional. An explicit
// `required` annotation is read after the marker is stripped and wins when
// the two disagree.
func NormalizeProperty(key string, value Node) model.Property {
	p := model.Property{Name: key, Required: true}

	if strings.HasSuffix(key, optionalMarker) {
		p.Name = strings.TrimSuffix(key, optionalMarker)
		p.Required = false
	}

	var fields Mapping
	switch v := value.(type) {
	case Scalar:
		if !v.Null {
			p.Type = v.Value
		}
	case Mapping:
		fields = v
		p.Description, _ = fields.String(keyDescription)
		p.Type, _ = fields.String(keyType)
		p.Default, _ = fields.String(keyDefault)
		if required, ok := fields.String(keyRequired); ok {
			switch required {
			case "false":
				p.Required = false
			case "true":
				p.Required = true
			}
		}
	}

	if !IsArrayType(p.Type) {
		return p
	}

	switch {
	case strings.HasSuffix(p.Type, arrayBrackets):
		p.ItemType = strings.TrimSuffix(p.Type, arrayBrackets)
	case p.Type == model.TypeArray:
		p.ItemType = itemsType(fields)
	}

	if explicit, ok := fields.String(keyItemName); ok && explicit != "" {
		p.ArrayItemName = explicit
		return p
	}

	// `type: array` is labelled after its items, like `X[]`.
	source := p.Type
	if p.Type == model.TypeArray {
		source = p.ItemType + arrayBrackets
	}
	p.ArrayItemName = CollectionItemName(model.LocalName(source))
	if p.ArrayItemName == "" {
		p.ArrayItemName = CollectionItemName(p.Name)
	}

	return p
}
