package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "begin-object"
	case KindEndObject:
		return "end-object"
	case KindBeginArray:
		return "begin-array"
	case KindEndArray:
		return "end-array"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrUnexpectedToken is returned when the token stream is not well formed.
var ErrUnexpectedToken = errors.New("engine: unexpected token")

// Member is one key/value pair of an Object, in source order.
type Member struct {
	Key    string
	Value  any
	Offset int64
}

// Object is a decoded JSON object that keeps its members in source order.
// A repeated key replaces the earlier value in place.
type Object struct {
	Members []Member
	index   map[string]int
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.Members[i].Value, true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) set(key string, v any, off int64) (replaced bool) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.Members[i].Value = v
		return true
	}
	o.index[key] = len(o.Members)
	o.Members = append(o.Members, Member{Key: key, Value: v, Offset: off})
	return false
}

// DuplicateFunc is notified about a repeated object key. path is a JSON
// pointer to the object holding the key.
type DuplicateFunc func(path, key string)

// DecodeOrdered builds a tree from the token stream. Objects become *Object,
// arrays []any, numbers json.Number; strings, bools and null map to their Go
// counterparts.
func DecodeOrdered(src TokenSource, onDup DuplicateFunc) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	d := &orderedDecoder{src: src, onDup: onDup}
	root, err := d.value(tok, "")
	if err != nil {
		return nil, err
	}
	// Exactly one value per document.
	tok, err = src.NextToken()
	switch {
	case errors.Is(err, io.EOF):
		return root, nil
	case err != nil:
		return nil, err
	}
	return nil, fmt.Errorf("%w %s at offset %d after the document", ErrUnexpectedToken, tok.Kind, tok.Offset)
}

type orderedDecoder struct {
	src   TokenSource
	onDup DuplicateFunc
}

func (d *orderedDecoder) next() (Token, error) {
	tok, err := d.src.NextToken()
	if errors.Is(err, io.EOF) {
		return tok, io.ErrUnexpectedEOF
	}
	return tok, err
}

func (d *orderedDecoder) value(tok Token, path string) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return d.object(path)
	case KindBeginArray:
		return d.array(path)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w %s at offset %d", ErrUnexpectedToken, tok.Kind, tok.Offset)
	}
}

func (d *orderedDecoder) object(path string) (any, error) {
	obj := &Object{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return obj, nil
		}
		if tok.Kind != KindKey {
			return nil, fmt.Errorf("%w %s at offset %d, want key", ErrUnexpectedToken, tok.Kind, tok.Offset)
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, path+"/"+EscapePointer(tok.String))
		if err != nil {
			return nil, err
		}
		if obj.set(tok.String, v, tok.Offset) && d.onDup != nil {
			d.onDup(path, tok.String)
		}
	}
}

func (d *orderedDecoder) array(path string) (any, error) {
	arr := []any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, fmt.Sprintf("%s/%d", path, len(arr)))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}
