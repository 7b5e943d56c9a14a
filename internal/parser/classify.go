package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"ramlconv/internal/model"
)

// Keys recognised inside type and property declarations.
const (
	keyType                 = "type"
	keyDescription          = "description"
	keyProperties           = "properties"
	keyAdditionalProperties = "additionalProperties"
	keyMinProperties        = "minProperties"
	keyMaxProperties        = "maxProperties"
	keyItems                = "items"
	keyItemName             = "itemName"
	keyEnum                 = "enum"
	keyPattern              = "pattern"
	keyRequired             = "required"
	keyDefault              = "default"
)

const (
	arrayBrackets    = "[]"
	collectionSuffix = "Collection"
	optionalMarker   = "?"
)

// ReservedCollection is the name of the marker type that is never emitted.
const ReservedCollection = "Collection"

// IsArrayType reports whether a type string denotes an array: it ends in
// "[]", equals "array", or ends in "Collection" (a type named exactly
// "Collection" does not count).
func IsArrayType(typeName string) bool {
	if typeName == "" {
		return false
	}
	if strings.HasSuffix(typeName, arrayBrackets) || typeName == model.TypeArray {
		return true
	}
	return len(typeName) > len(collectionSuffix) && strings.HasSuffix(typeName, collectionSuffix)
}

// CollectionItemName derives the element label used for the items of a
// collection type.
//
//	WidgetCollection -> widget
//	Widgets[]        -> widgets
//	Widgets          -> widgetsItem
func CollectionItemName(name string) string {
	if name == "" {
		return "item"
	}

	r, size := utf8.DecodeRuneInString(name)
	lower := string(unicode.ToLower(r)) + name[size:]

	if strings.HasSuffix(lower, arrayBrackets) {
		return strings.TrimSuffix(lower, arrayBrackets)
	}
	if i := strings.Index(name, collectionSuffix); i >= 0 {
		return lower[:i+len(lower)-len(name)]
	}
	return lower + "Item"
}

// Classify turns one raw type declaration into a canonical type. The shape
// checks run in a fixed order: Array, Enum, BaseRestriction, then Object.
func Classify(name string, decl Node) model.Type {
	fields := declarationFields(decl)

	t := model.Type{
		Name:                 name,
		AdditionalProperties: true,
	}
	t.Description, _ = fields.String(keyDescription)

	baseType, _ := fields.String(keyType)

	if IsArrayType(baseType) {
		t.Shape = model.ShapeArray
		t.ItemType, t.ItemName = arrayItem(name, baseType, fields)
		return t
	}

	if values, ok := enumValues(fields); ok {
		t.Shape = model.ShapeEnum
		t.ItemType = baseType
		if t.ItemType == "" {
			t.ItemType = string(model.PrimitiveString)
		}
		t.EnumValues = values
		return t
	}

	if baseType != "" && baseType != model.TypeObject {
		t.Shape = model.ShapeBaseRestriction
		t.BaseType = baseType
		t.Pattern, _ = fields.String(keyPattern)
		return t
	}

	t.Shape = model.ShapeObject
	if v, ok := fields.String(keyAdditionalProperties); ok && v == "false" {
		t.AdditionalProperties = false
	}
	t.MinProperties = intField(fields, keyMinProperties)
	t.MaxProperties = intField(fields, keyMaxProperties)

	if props, ok := fields.Mapping(keyProperties); ok {
		t.Properties = make([]model.Property, 0, len(props))
		for _, p := range props {
			t.Properties = append(t.Properties, NormalizeProperty(p.Key, p.Value))
		}
	}

	return t
}

// declarationFields returns the sub-fields of a type declaration. The
// shorthand `Name: base` is read as `Name: {type: base}`.
func declarationFields(decl Node) Mapping {
	switch d := decl.(type) {
	case Mapping:
		return d
	case Scalar:
		if d.Null || d.Value == "" {
			return nil
		}
		return Mapping{{Key: keyType, Value: d}}
	default:
		return nil
	}
}

// arrayItem returns the item type and element label of an array declaration.
func arrayItem(name, baseType string, fields Mapping) (itemType, itemName string) {
	if strings.HasSuffix(baseType, arrayBrackets) {
		itemType = strings.TrimSuffix(baseType, arrayBrackets)
	} else {
		itemType = itemsType(fields)
	}

	if explicit, ok := fields.String(keyItemName); ok && explicit != "" {
		return itemType, explicit
	}

	// Bracket arrays are labelled after their item declaration, named
	// collections after the declaring type.
	if strings.HasSuffix(baseType, arrayBrackets) {
		if label := CollectionItemName(model.LocalName(baseType)); label != "" {
			return itemType, label
		}
	}
	return itemType, CollectionItemName(name)
}

// itemsType reads the `items` field, either `items: T` or `items: {type: T}`.
func itemsType(fields Mapping) string {
	if s, ok := fields.String(keyItems); ok {
		return s
	}
	if m, ok := fields.Mapping(keyItems); ok {
		s, _ := m.String(keyType)
		return s
	}
	return ""
}

func enumValues(fields Mapping) ([]string, bool) {
	seq, ok := fields.Sequence(keyEnum)
	if !ok || len(seq) == 0 {
		return nil, false
	}

	values := make([]string, 0, len(seq))
	for _, n := range seq {
		if s, ok := n.(Scalar); ok && !s.Null {
			values = append(values, s.Value)
		}
	}
	if len(values) == 0 {
		return nil, false
	}
	return values, true
}

func intField(fields Mapping, key string) *int {
	s, ok := fields.String(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}
