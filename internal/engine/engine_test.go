package engine_test

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	eng "github.com/reoring/samgen/internal/engine"
)

// sliceSource replays a fixed token list.
type sliceSource struct {
	toks []eng.Token
	pos  int
}

func (s *sliceSource) NextToken() (eng.Token, error) {
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	t.Offset = int64(s.pos)
	return t, nil
}

func (s *sliceSource) Location() int64 { return int64(s.pos) }

func key(k string) eng.Token { return eng.Token{Kind: eng.KindKey, String: k} }
func str(v string) eng.Token { return eng.Token{Kind: eng.KindString, String: v} }
func num(v string) eng.Token { return eng.Token{Kind: eng.KindNumber, Number: v} }

var (
	beginObj = eng.Token{Kind: eng.KindBeginObject}
	endObj   = eng.Token{Kind: eng.KindEndObject}
	beginArr = eng.Token{Kind: eng.KindBeginArray}
	endArr   = eng.Token{Kind: eng.KindEndArray}
)

func TestDecodeOrdered_KeepsMemberOrder(t *testing.T) {
	src := &sliceSource{toks: []eng.Token{
		beginObj,
		key("z"), num("1"),
		key("a"), beginArr, str("x"), {Kind: eng.KindBool, Bool: true}, {Kind: eng.KindNull}, endArr,
		key("m"), beginObj, endObj,
		endObj,
	}}
	v, err := eng.DecodeOrdered(src, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj, ok := v.(*eng.Object)
	if !ok {
		t.Fatalf("want *Object, got %T", v)
	}
	var keys []string
	for _, m := range obj.Members {
		keys = append(keys, m.Key)
	}
	if len(keys) != 3 || keys[0] != "z" || keys[1] != "a" || keys[2] != "m" {
		t.Fatalf("keys = %v", keys)
	}
	if z, _ := obj.Get("z"); z != json.Number("1") {
		t.Fatalf("z = %#v", z)
	}
	arr, _ := obj.Get("a")
	if a := arr.([]any); len(a) != 3 || a[0] != "x" || a[1] != true || a[2] != nil {
		t.Fatalf("a = %#v", arr)
	}
	if !obj.Has("m") || obj.Has("nope") {
		t.Fatalf("Has mismatch")
	}
}

func TestDecodeOrdered_EmptyArrayIsNotNil(t *testing.T) {
	v, err := eng.DecodeOrdered(&sliceSource{toks: []eng.Token{beginArr, endArr}}, nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if a, ok := v.([]any); !ok || a == nil {
		t.Fatalf("want empty non-nil slice, got %#v", v)
	}
}

func TestDecodeOrdered_DuplicateReplacesInPlace(t *testing.T) {
	var seen []string
	src := &sliceSource{toks: []eng.Token{
		beginObj,
		key("a"), num("1"),
		key("b"), beginObj, key("c"), num("1"), key("c"), num("2"), endObj,
		key("a"), num("3"),
		endObj,
	}}
	v, err := eng.DecodeOrdered(src, func(path, key string) { seen = append(seen, path+"|"+key) })
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	obj := v.(*eng.Object)
	if len(obj.Members) != 2 || obj.Members[0].Key != "a" {
		t.Fatalf("members = %#v", obj.Members)
	}
	if a, _ := obj.Get("a"); a != json.Number("3") {
		t.Fatalf("a = %#v", a)
	}
	if len(seen) != 2 || seen[0] != "/b|c" || seen[1] != "|a" {
		t.Fatalf("duplicates = %v", seen)
	}
}

func TestDecodeOrdered_Truncated(t *testing.T) {
	_, err := eng.DecodeOrdered(&sliceSource{toks: []eng.Token{beginObj, key("a")}}, nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
	_, err = eng.DecodeOrdered(&sliceSource{}, nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("empty input: want ErrUnexpectedEOF, got %v", err)
	}
}

func TestDecodeOrdered_ValueInKeyPosition(t *testing.T) {
	_, err := eng.DecodeOrdered(&sliceSource{toks: []eng.Token{beginObj, str("a"), endObj}}, nil)
	if !errors.Is(err, eng.ErrUnexpectedToken) {
		t.Fatalf("want ErrUnexpectedToken, got %v", err)
	}
}

func TestDecodeOrdered_TrailingValue(t *testing.T) {
	toks := []eng.Token{beginObj, key("a"), num("1"), endObj, beginObj, key("junk"), beginArr}
	v, err := eng.DecodeOrdered(&sliceSource{toks: toks}, nil)
	if !errors.Is(err, eng.ErrUnexpectedToken) {
		t.Fatalf("want ErrUnexpectedToken, got %v", err)
	}
	if v != nil {
		t.Fatalf("want no tree, got %#v", v)
	}
	if _, err := eng.DecodeOrdered(&sliceSource{toks: []eng.Token{str("a"), str("b")}}, nil); !errors.Is(err, eng.ErrUnexpectedToken) {
		t.Fatalf("trailing scalar: want ErrUnexpectedToken, got %v", err)
	}
}

func TestWithLimits_Depth(t *testing.T) {
	toks := []eng.Token{beginArr, beginArr, beginArr, endArr, endArr, endArr}
	_, err := eng.DecodeOrdered(eng.WithLimits(&sliceSource{toks: toks}, eng.Limits{MaxDepth: 2}), nil)
	if !errors.Is(err, eng.ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
	if _, err := eng.DecodeOrdered(eng.WithLimits(&sliceSource{toks: toks}, eng.Limits{MaxDepth: 3}), nil); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestWithLimits_Bytes(t *testing.T) {
	toks := []eng.Token{beginArr, str("a"), str("b"), str("c"), endArr}
	_, err := eng.DecodeOrdered(eng.WithLimits(&sliceSource{toks: toks}, eng.Limits{MaxBytes: 3}), nil)
	if !errors.Is(err, eng.ErrLimitExceeded) {
		t.Fatalf("want ErrLimitExceeded, got %v", err)
	}
}

func TestWithLimits_ZeroReturnsInner(t *testing.T) {
	src := &sliceSource{}
	if got := eng.WithLimits(src, eng.Limits{}); got != eng.TokenSource(src) {
		t.Fatalf("expected the inner source back")
	}
}

func TestEscapePointer(t *testing.T) {
	if got := eng.EscapePointer("a/b~c"); got != "a~1b~0c" {
		t.Fatalf("got %q", got)
	}
}

func TestFrames_KeyTracking(t *testing.T) {
	var f eng.Frames
	if f.IsKey() {
		t.Fatalf("top level strings are values")
	}
	f.Open(true)
	if !f.IsKey() {
		t.Fatalf("first string in an object is a key")
	}
	if f.IsKey() {
		t.Fatalf("string after a key is a value")
	}
	f.ValueDone()
	if !f.IsKey() {
		t.Fatalf("expected key after value")
	}
	f.Open(false)
	if f.IsKey() {
		t.Fatalf("array members are values")
	}
	f.Close()
	if !f.IsKey() {
		t.Fatalf("closing a nested value should expect the next key")
	}
}

func TestKind_String(t *testing.T) {
	if eng.KindKey.String() != "key" || eng.Kind(99).String() != "kind(99)" {
		t.Fatalf("unexpected names")
	}
}
