package jsonschema_test

import (
	"errors"
	"testing"

	"github.com/reoring/samgen/jsonschema"
)

func TestExpect_WrongVariantIsNotFatal(t *testing.T) {
	var u jsonschema.TypeUnion = &jsonschema.Single{Type: &jsonschema.Type{}}

	if _, ok := jsonschema.AsAnyOf(u); ok {
		t.Fatalf("AsAnyOf should report absence")
	}
	_, err := jsonschema.ExpectAnyOf(u)
	if !errors.Is(err, jsonschema.ErrWrongVariant) {
		t.Fatalf("want ErrWrongVariant, got %v", err)
	}
	var ve *jsonschema.VariantError
	if !errors.As(err, &ve) || ve.Want != jsonschema.UnionAnyOf || ve.Got != jsonschema.UnionSingle {
		t.Fatalf("variant error = %#v", ve)
	}

	if _, err := jsonschema.ExpectAllOf(nil); !errors.Is(err, jsonschema.ErrWrongVariant) {
		t.Fatalf("nil union should be a wrong variant, got %v", err)
	}
	if _, err := jsonschema.ExpectSingle(&jsonschema.AllOf{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTypeAccessors_AbsentOnMismatch(t *testing.T) {
	tp := &jsonschema.Type{Types: []jsonschema.PrimitiveType{jsonschema.TypeString}, Subtype: &jsonschema.StringSchema{}}
	if _, ok := tp.Object(); ok {
		t.Fatalf("string node has no object schema")
	}
	if _, ok := tp.ObjectProperty("x"); ok {
		t.Fatalf("string node has no properties")
	}
	if _, ok := tp.Items(); ok {
		t.Fatalf("string node has no items")
	}
	var nilType *jsonschema.Type
	if _, ok := nilType.Primitive(); ok {
		t.Fatalf("nil type has no primitive")
	}
	if nilType.ReferenceName() != "" {
		t.Fatalf("nil type has no reference")
	}
}

func TestReferenceName_Unescapes(t *testing.T) {
	tp := &jsonschema.Type{Reference: "#/definitions/a~1b~0c"}
	if got := tp.ReferenceName(); got != "a/b~c" {
		t.Fatalf("got %q", got)
	}
}
