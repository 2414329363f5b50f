package jsonschema

import (
	"strings"

	"github.com/reoring/samgen/omap"
)

// Document is a decoded top-level schema. It is not modified after Decode
// returns it.
type Document struct {
	ID                   string
	Dialect              Dialect
	Description          string
	Type                 PrimitiveType
	Properties           *omap.Map[string, TypeUnion]
	AdditionalProperties *bool
	Required             []string

	// Definitions was read from "definitions" or "$defs" depending on Dialect.
	Definitions *omap.Map[string, TypeUnion]
}

// Property returns a declared top-level property.
func (d *Document) Property(name string) (TypeUnion, bool) {
	return d.Properties.Get(name)
}

// IsRequired reports whether name is listed in the root "required" keyword.
func (d *Document) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Resolve looks a reference up in Definitions. ref may be a local pointer
// ("#/definitions/X", "#/$defs/X") or a bare definition name.
//
// References are followed one step at a time; a definition that refers back
// to itself resolves to itself and callers walking the graph must stop.
func (d *Document) Resolve(ref string) (TypeUnion, bool) {
	if d == nil || ref == "" {
		return nil, false
	}
	name := ref
	for _, prefix := range []string{"#/definitions/", "#/$defs/"} {
		if strings.HasPrefix(ref, prefix) {
			name = unescapePointer(strings.TrimPrefix(ref, prefix))
			break
		}
	}
	return d.Definitions.Get(name)
}

// ResolveType resolves t's reference, if it has one.
func (d *Document) ResolveType(t *Type) (TypeUnion, bool) {
	if t == nil {
		return nil, false
	}
	return d.Resolve(t.Reference)
}
