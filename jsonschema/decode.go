package jsonschema

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.uber.org/zap"

	eng "github.com/reoring/samgen/internal/engine"
	"github.com/reoring/samgen/omap"
	yamlsrc "github.com/reoring/samgen/source/yaml"
)

// Decode decodes a JSON schema document.
func Decode(data []byte, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	if err := o.checkSize(data); err != nil {
		return nil, err
	}
	return o.decodeDocument(o.driver.newSource(data))
}

// DecodeYAML decodes a schema document written in YAML.
func DecodeYAML(data []byte, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	if err := o.checkSize(data); err != nil {
		return nil, err
	}
	// The YAML source reports lines rather than byte offsets.
	o.limits.MaxBytes = 0
	return o.decodeDocument(yamlsrc.NewBytes(data))
}

// DecodeReader reads r to the end and decodes it as JSON.
func DecodeReader(r io.Reader, opts ...Option) (*Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &Issue{Code: CodeParseError, Cause: err}
	}
	return Decode(b, opts...)
}

// DecodeUnion decodes a standalone JSON schema node, outside any document.
// References are kept as names and cannot be resolved without a Document.
func DecodeUnion(data []byte, opts ...Option) (TypeUnion, error) {
	o := newOptions(opts)
	if err := o.checkSize(data); err != nil {
		return nil, err
	}
	root, err := o.tree(o.driver.newSource(data))
	if err != nil {
		return nil, err
	}
	d := &decoder{log: o.logger}
	return d.union(root, "")
}

// checkSize applies MaxBytes to the whole input. Not every source reports
// byte offsets, so the streaming check alone is not enough.
func (o options) checkSize(data []byte) error {
	if limit := o.limits.MaxBytes; limit > 0 && int64(len(data)) > limit {
		return &Issue{Code: CodeParseError, Cause: fmt.Errorf("%w: %d bytes > %d", eng.ErrLimitExceeded, len(data), limit)}
	}
	return nil
}

func (o options) tree(src eng.TokenSource) (any, error) {
	src = eng.WithLimits(src, o.limits)
	root, err := eng.DecodeOrdered(src, func(path, key string) {
		o.logger.Warn("duplicate key in schema object; last value wins",
			zap.String("path", path), zap.String("key", key))
	})
	if err != nil {
		return nil, &Issue{Code: CodeParseError, Cause: err}
	}
	return root, nil
}

func (o options) decodeDocument(src eng.TokenSource) (*Document, error) {
	root, err := o.tree(src)
	if err != nil {
		return nil, err
	}
	d := &decoder{log: o.logger}
	doc, err := d.document(root)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("decoded schema",
		zap.String("dialect", doc.Dialect.String()),
		zap.Int("properties", doc.Properties.Len()),
		zap.Int("definitions", doc.Definitions.Len()))
	return doc, nil
}

// decoder walks an ordered tree depth-first. It holds no state besides the
// logger, so one decode never affects another.
type decoder struct {
	log *zap.Logger
}

func (d *decoder) document(root any) (*Document, error) {
	var p pointer
	obj, ok := root.(*eng.Object)
	if !ok {
		return nil, mismatch(p, root, "object")
	}

	rawDialect, ok := obj.Get("$schema")
	if !ok {
		return nil, missing(p, "$schema")
	}
	dialectURI, ok := rawDialect.(string)
	if !ok {
		return nil, mismatch(p.Field("$schema"), rawDialect, "string")
	}
	dialect, err := ResolveDialect(dialectURI)
	if err != nil {
		return nil, err
	}

	doc := &Document{Dialect: dialect}
	if doc.ID, _, err = optString(obj, "$id", p); err != nil {
		return nil, err
	}
	if doc.ID == "" && dialect.IDKeyword() != "$id" {
		if doc.ID, _, err = optString(obj, dialect.IDKeyword(), p); err != nil {
			return nil, err
		}
	}
	if doc.Description, _, err = optString(obj, "description", p); err != nil {
		return nil, err
	}

	rawType, ok := obj.Get("type")
	if !ok {
		return nil, missing(p, "type")
	}
	typeName, ok := rawType.(string)
	if !ok {
		return nil, mismatch(p.Field("type"), rawType, "string")
	}
	if doc.Type, ok = ParsePrimitiveType(typeName); !ok {
		return nil, mismatch(p.Field("type"), rawType, primitiveTypeNames)
	}
	if doc.Type != TypeObject {
		d.log.Warn("schema root is not an object", zap.String("type", string(doc.Type)))
	}

	if doc.Properties, err = d.unionMap(obj, "properties", p); err != nil {
		return nil, err
	}
	if doc.AdditionalProperties, err = optBool(obj, "additionalProperties", p); err != nil {
		return nil, err
	}
	if doc.Required, err = optStrings(obj, "required", p); err != nil {
		return nil, err
	}
	if doc.Definitions, err = d.unionMap(obj, dialect.DefinitionsKeyword(), p); err != nil {
		return nil, err
	}
	return doc, nil
}

// union decides the variant from the keys present on the node.
func (d *decoder) union(node any, p pointer) (TypeUnion, error) {
	obj, ok := node.(*eng.Object)
	if !ok {
		return nil, mismatch(p, node, "object")
	}
	rawAny, hasAny := obj.Get("anyOf")
	rawAll, hasAll := obj.Get("allOf")
	switch {
	case hasAny && hasAll:
		return nil, &Issue{Path: p.String(), Code: CodeAmbiguousVariant, Value: []string{"anyOf", "allOf"}}
	case hasAny:
		items, ok := rawAny.([]any)
		if !ok {
			return nil, mismatch(p.Field("anyOf"), rawAny, "array")
		}
		types := make([]*Type, 0, len(items))
		for i, it := range items {
			t, err := d.typ(it, p.Field("anyOf").Index(i))
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		return &AnyOf{Types: types}, nil
	case hasAll:
		items, ok := rawAll.([]any)
		if !ok {
			return nil, mismatch(p.Field("allOf"), rawAll, "array")
		}
		unions := make([]TypeUnion, 0, len(items))
		for i, it := range items {
			u, err := d.union(it, p.Field("allOf").Index(i))
			if err != nil {
				return nil, err
			}
			unions = append(unions, u)
		}
		return &AllOf{Unions: unions}, nil
	}
	t, err := d.typ(obj, p)
	if err != nil {
		return nil, err
	}
	return &Single{Type: t}, nil
}

func (d *decoder) typ(node any, p pointer) (*Type, error) {
	obj, ok := node.(*eng.Object)
	if !ok {
		return nil, mismatch(p, node, "object")
	}
	t := &Type{}
	var err error

	if raw, ok := obj.Get("type"); ok {
		if t.Types, err = primitiveList(raw, p.Field("type")); err != nil {
			return nil, err
		}
	}
	switch len(t.Types) {
	case 0:
	case 1:
		if t.Subtype, err = d.subtype(t.Types[0], obj, p); err != nil {
			return nil, err
		}
	default:
		// Constraints of multi-type nodes are not decoded.
		d.log.Debug("multi-type node, constraints skipped", zap.String("path", p.String()))
	}

	if raw, ok := obj.Get("enum"); ok {
		items, ok := raw.([]any)
		if !ok {
			return nil, mismatch(p.Field("enum"), raw, "array")
		}
		t.Enum = make([]any, len(items))
		for i, it := range items {
			t.Enum[i] = plain(it)
		}
	}
	if t.Required, err = optStrings(obj, "required", p); err != nil {
		return nil, err
	}
	if t.Description, _, err = optString(obj, "description", p); err != nil {
		return nil, err
	}
	if raw, ok := obj.Get("additionalProperties"); ok {
		switch v := raw.(type) {
		case bool:
			t.AdditionalProperties = &v
		case *eng.Object:
			if t.AdditionalSchema, err = d.union(v, p.Field("additionalProperties")); err != nil {
				return nil, err
			}
		default:
			return nil, mismatch(p.Field("additionalProperties"), raw, "boolean or object")
		}
	}
	if t.Reference, _, err = optString(obj, "$ref", p); err != nil {
		return nil, err
	}
	return t, nil
}

// subtype reads the constraints that sit next to "type" on the same node.
func (d *decoder) subtype(pt PrimitiveType, obj *eng.Object, p pointer) (Subtype, error) {
	var err error
	switch pt {
	case TypeString:
		s := &StringSchema{}
		if s.Pattern, _, err = optString(obj, "pattern", p); err != nil {
			return nil, err
		}
		if s.MinLength, err = optInt(obj, "minLength", p); err != nil {
			return nil, err
		}
		if s.MaxLength, err = optInt(obj, "maxLength", p); err != nil {
			return nil, err
		}
		return s, nil
	case TypeObject:
		o := &ObjectSchema{}
		if o.Properties, err = d.unionMap(obj, "properties", p); err != nil {
			return nil, err
		}
		if o.PatternProperties, err = d.unionMap(obj, "patternProperties", p); err != nil {
			return nil, err
		}
		if o.MinProperties, err = optInt(obj, "minProperties", p); err != nil {
			return nil, err
		}
		if o.MaxProperties, err = optInt(obj, "maxProperties", p); err != nil {
			return nil, err
		}
		return o, nil
	case TypeArray:
		a := &ArraySchema{}
		if raw, ok := obj.Get("items"); ok {
			if a.Items, err = d.typ(raw, p.Field("items")); err != nil {
				return nil, err
			}
		}
		if a.MinItems, err = optInt(obj, "minItems", p); err != nil {
			return nil, err
		}
		return a, nil
	case TypeNumber, TypeInteger:
		n := &NumberSchema{}
		if n.MultipleOf, err = optFloat(obj, "multipleOf", p); err != nil {
			return nil, err
		}
		if n.Minimum, err = optFloat(obj, "minimum", p); err != nil {
			return nil, err
		}
		if n.ExclusiveMinimum, err = optBool(obj, "exclusiveMinimum", p); err != nil {
			return nil, err
		}
		if n.Maximum, err = optFloat(obj, "maximum", p); err != nil {
			return nil, err
		}
		if n.ExclusiveMaximum, err = optBool(obj, "exclusiveMaximum", p); err != nil {
			return nil, err
		}
		return n, nil
	case TypeBoolean:
		return BooleanSchema{}, nil
	case TypeNull:
		return NullSchema{}, nil
	}
	return nil, nil
}

func (d *decoder) unionMap(obj *eng.Object, key string, p pointer) (*omap.Map[string, TypeUnion], error) {
	raw, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	m, ok := raw.(*eng.Object)
	if !ok {
		return nil, mismatch(p.Field(key), raw, "object")
	}
	out := omap.New[string, TypeUnion](len(m.Members))
	for _, mem := range m.Members {
		u, err := d.union(mem.Value, p.Field(key).Field(mem.Key))
		if err != nil {
			return nil, err
		}
		out.Set(mem.Key, u)
	}
	return out, nil
}

// primitiveList accepts both `"type": "x"` and `"type": ["x", "y"]`.
func primitiveList(raw any, p pointer) ([]PrimitiveType, error) {
	if s, ok := raw.(string); ok {
		pt, ok := ParsePrimitiveType(s)
		if !ok {
			return nil, mismatch(p, raw, primitiveTypeNames)
		}
		return []PrimitiveType{pt}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, mismatch(p, raw, "string or array of strings")
	}
	out := make([]PrimitiveType, 0, len(items))
	for i, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, mismatch(p.Index(i), it, "string")
		}
		pt, ok := ParsePrimitiveType(s)
		if !ok {
			return nil, mismatch(p.Index(i), it, primitiveTypeNames)
		}
		out = append(out, pt)
	}
	return out, nil
}

func optString(obj *eng.Object, key string, p pointer) (string, bool, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, mismatch(p.Field(key), raw, "string")
	}
	return s, true, nil
}

func optStrings(obj *eng.Object, key string, p pointer) ([]string, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, mismatch(p.Field(key), raw, "array of strings")
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, mismatch(p.Field(key).Index(i), it, "string")
		}
		out = append(out, s)
	}
	return out, nil
}

func optBool(obj *eng.Object, key string, p pointer) (*bool, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return nil, mismatch(p.Field(key), raw, "boolean")
	}
	return &b, nil
}

func optFloat(obj *eng.Object, key string, p pointer) (*float64, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return nil, nil
	}
	n, ok := raw.(json.Number)
	if !ok {
		return nil, mismatch(p.Field(key), raw, "number")
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return nil, mismatch(p.Field(key), raw, "number")
	}
	return &f, nil
}

func optInt(obj *eng.Object, key string, p pointer) (*int, error) {
	f, err := optFloat(obj, key, p)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) || *f > math.MaxInt32 || *f < math.MinInt32 {
		raw, _ := obj.Get(key)
		return nil, mismatch(p.Field(key), raw, "integer")
	}
	i := int(*f)
	return &i, nil
}

// plain converts an ordered tree into ordinary Go values for enum literals.
func plain(v any) any {
	switch t := v.(type) {
	case *eng.Object:
		m := make(map[string]any, len(t.Members))
		for _, mem := range t.Members {
			m[mem.Key] = plain(mem.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = plain(it)
		}
		return out
	}
	return v
}
