package model

// Primitive is one of the built-in RAML scalar types.
type Primitive string

// Built-in primitives. PrimitiveNone stands for an absent type declaration,
// which RAML treats as string.
const (
	PrimitiveNone         Primitive = ""
	PrimitiveBoolean      Primitive = "boolean"
	PrimitiveDateOnly     Primitive = "date-only"
	PrimitiveDateTime     Primitive = "datetime"
	PrimitiveDateTimeOnly Primitive = "datetime-only"
	PrimitiveInteger      Primitive = "integer"
	PrimitiveNil          Primitive = "nil"
	PrimitiveNumber       Primitive = "number"
	PrimitiveString       Primitive = "string"
	PrimitiveTimeOnly     Primitive = "time-only"
)

// Keywords with a fixed meaning in type declarations.
const (
	TypeObject = "object"
	TypeArray  = "array"
)

// Primitives lists every primitive a backend type map must cover.
var Primitives = []Primitive{
	PrimitiveNone,
	PrimitiveBoolean,
	PrimitiveDateOnly,
	PrimitiveDateTime,
	PrimitiveDateTimeOnly,
	PrimitiveInteger,
	PrimitiveNil,
	PrimitiveNumber,
	PrimitiveString,
	PrimitiveTimeOnly,
}

// LookupPrimitive returns the primitive named by a type string.
func LookupPrimitive(name string) (Primitive, bool) {
	for _, p := range Primitives {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// IsPrimitive reports whether name is a built-in primitive (including the empty type).
func IsPrimitive(name string) bool {
	_, ok := LookupPrimitive(name)
	return ok
}
