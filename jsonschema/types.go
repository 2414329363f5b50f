package jsonschema

import (
	"strings"

	"github.com/reoring/samgen/omap"
)

// PrimitiveType is a JSON primitive type name.
// https://json-schema.org/understanding-json-schema/reference/type
type PrimitiveType string

const (
	TypeString  PrimitiveType = "string"
	TypeObject  PrimitiveType = "object"
	TypeBoolean PrimitiveType = "boolean"
	TypeArray   PrimitiveType = "array"
	TypeInteger PrimitiveType = "integer"
	TypeNumber  PrimitiveType = "number"
	TypeNull    PrimitiveType = "null"
)

var primitiveTypes = map[string]PrimitiveType{
	"string":  TypeString,
	"object":  TypeObject,
	"boolean": TypeBoolean,
	"array":   TypeArray,
	"integer": TypeInteger,
	"number":  TypeNumber,
	"null":    TypeNull,
}

const primitiveTypeNames = "string, object, boolean, array, integer, number or null"

// ParsePrimitiveType maps a "type" keyword value to a PrimitiveType.
func ParsePrimitiveType(s string) (PrimitiveType, bool) {
	p, ok := primitiveTypes[s]
	return p, ok
}

// Type is a single, concrete schema node.
type Type struct {
	Types       []PrimitiveType
	Reference   string // "$ref", looked up lazily through Document.Resolve.
	Required    []string
	Description string

	// AdditionalProperties is set when the keyword is a boolean. A schema-valued
	// keyword sets AdditionalSchema instead and leaves this nil.
	AdditionalProperties *bool
	AdditionalSchema     TypeUnion

	Enum []any

	// Subtype holds the constraints that belong to the node's primitive type.
	// It is nil unless Types has exactly one element.
	Subtype Subtype
}

// Primitive returns the node's type when exactly one is declared.
func (t *Type) Primitive() (PrimitiveType, bool) {
	if t == nil || len(t.Types) != 1 {
		return "", false
	}
	return t.Types[0], true
}

// Object returns the object constraints, if this is an object node.
func (t *Type) Object() (*ObjectSchema, bool) {
	if t == nil {
		return nil, false
	}
	o, ok := t.Subtype.(*ObjectSchema)
	return o, ok
}

// ObjectProperty returns one declared property of an object node.
func (t *Type) ObjectProperty(name string) (TypeUnion, bool) {
	o, ok := t.Object()
	if !ok {
		return nil, false
	}
	return o.Properties.Get(name)
}

// StringSchema returns the string constraints, if this is a string node.
func (t *Type) StringSchema() (*StringSchema, bool) {
	if t == nil {
		return nil, false
	}
	s, ok := t.Subtype.(*StringSchema)
	return s, ok
}

// ArraySchema returns the array constraints, if this is an array node.
func (t *Type) ArraySchema() (*ArraySchema, bool) {
	if t == nil {
		return nil, false
	}
	a, ok := t.Subtype.(*ArraySchema)
	return a, ok
}

// Items returns the item schema of an array node.
func (t *Type) Items() (*Type, bool) {
	a, ok := t.ArraySchema()
	if !ok || a.Items == nil {
		return nil, false
	}
	return a.Items, true
}

// NumberSchema returns the numeric constraints of a number or integer node.
func (t *Type) NumberSchema() (*NumberSchema, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.Subtype.(*NumberSchema)
	return n, ok
}

// ReferenceName is the last segment of Reference, or "" without one.
func (t *Type) ReferenceName() string {
	if t == nil || t.Reference == "" {
		return ""
	}
	ref := t.Reference
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return unescapePointer(ref)
}

// EnumStrings returns the string members of Enum in order.
func (t *Type) EnumStrings() []string {
	if t == nil {
		return nil
	}
	var out []string
	for _, v := range t.Enum {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SubtypeKind identifies a Subtype variant.
type SubtypeKind int

const (
	SubtypeString SubtypeKind = iota
	SubtypeObject
	SubtypeArray
	SubtypeNumber
	SubtypeBoolean
	SubtypeNull
)

// Subtype carries the constraints specific to one primitive type.
type Subtype interface {
	SubtypeKind() SubtypeKind
}

// ObjectSchema holds object constraints.
// https://json-schema.org/understanding-json-schema/reference/object
type ObjectSchema struct {
	Properties        *omap.Map[string, TypeUnion]
	PatternProperties *omap.Map[string, TypeUnion]
	MinProperties     *int
	MaxProperties     *int
}

func (*ObjectSchema) SubtypeKind() SubtypeKind { return SubtypeObject }

// StringSchema holds string constraints.
type StringSchema struct {
	Pattern   string
	MinLength *int
	MaxLength *int
}

func (*StringSchema) SubtypeKind() SubtypeKind { return SubtypeString }

// ArraySchema holds array constraints. Tuple-typed items are not supported.
type ArraySchema struct {
	Items    *Type
	MinItems *int
}

func (*ArraySchema) SubtypeKind() SubtypeKind { return SubtypeArray }

// NumberSchema holds numeric constraints for both number and integer nodes.
// The exclusive bounds use the draft-04 boolean form.
type NumberSchema struct {
	MultipleOf       *float64
	Minimum          *float64
	ExclusiveMinimum *bool
	Maximum          *float64
	ExclusiveMaximum *bool
}

func (*NumberSchema) SubtypeKind() SubtypeKind { return SubtypeNumber }

// BooleanSchema has no constraints.
type BooleanSchema struct{}

func (BooleanSchema) SubtypeKind() SubtypeKind { return SubtypeBoolean }

// NullSchema has no constraints.
type NullSchema struct{}

func (NullSchema) SubtypeKind() SubtypeKind { return SubtypeNull }

func unescapePointer(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
