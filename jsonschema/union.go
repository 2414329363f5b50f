package jsonschema

import "fmt"

// UnionKind identifies a TypeUnion variant.
type UnionKind int

const (
	UnionSingle UnionKind = iota
	UnionAnyOf
	UnionAllOf
)

func (k UnionKind) String() string {
	switch k {
	case UnionSingle:
		return "single type"
	case UnionAnyOf:
		return "anyOf"
	case UnionAllOf:
		return "allOf"
	}
	return fmt.Sprintf("UnionKind(%d)", int(k))
}

// TypeUnion is a decoded schema node: a disjunction of concrete types, a
// conjunction of unions, or a single type. The variant is chosen by which
// keywords the node carries.
type TypeUnion interface {
	Kind() UnionKind
}

// AnyOf means exactly one of Types applies.
type AnyOf struct {
	Types []*Type
}

func (*AnyOf) Kind() UnionKind { return UnionAnyOf }

// AllOf means every member applies at once. Members may nest unions.
type AllOf struct {
	Unions []TypeUnion
}

func (*AllOf) Kind() UnionKind { return UnionAllOf }

// Single wraps a node without anyOf/allOf.
type Single struct {
	Type *Type
}

func (*Single) Kind() UnionKind { return UnionSingle }

// AsAnyOf narrows u to its disjunction.
func AsAnyOf(u TypeUnion) (*AnyOf, bool) {
	a, ok := u.(*AnyOf)
	return a, ok
}

// AsAllOf narrows u to its conjunction.
func AsAllOf(u TypeUnion) (*AllOf, bool) {
	a, ok := u.(*AllOf)
	return a, ok
}

// AsSingle narrows u to its single type.
func AsSingle(u TypeUnion) (*Type, bool) {
	s, ok := u.(*Single)
	if !ok {
		return nil, false
	}
	return s.Type, true
}

// VariantError reports a narrowing request for the wrong variant.
type VariantError struct {
	Want UnionKind
	Got  UnionKind
	Nil  bool
}

func (e *VariantError) Error() string {
	if e.Nil {
		return fmt.Sprintf("jsonschema: wrong variant: want %s, union is nil", e.Want)
	}
	return fmt.Sprintf("jsonschema: wrong variant: want %s, got %s", e.Want, e.Got)
}

func (e *VariantError) Is(target error) bool { return target == ErrWrongVariant }

func variantError(want UnionKind, u TypeUnion) error {
	if u == nil {
		return &VariantError{Want: want, Nil: true}
	}
	return &VariantError{Want: want, Got: u.Kind()}
}

// ExpectAnyOf returns the alternatives of u, or a *VariantError.
func ExpectAnyOf(u TypeUnion) ([]*Type, error) {
	if a, ok := AsAnyOf(u); ok {
		return a.Types, nil
	}
	return nil, variantError(UnionAnyOf, u)
}

// ExpectAllOf returns the members of u, or a *VariantError.
func ExpectAllOf(u TypeUnion) ([]TypeUnion, error) {
	if a, ok := AsAllOf(u); ok {
		return a.Unions, nil
	}
	return nil, variantError(UnionAllOf, u)
}

// ExpectSingle returns the type wrapped by u, or a *VariantError.
func ExpectSingle(u TypeUnion) (*Type, error) {
	if t, ok := AsSingle(u); ok {
		return t, nil
	}
	return nil, variantError(UnionSingle, u)
}
