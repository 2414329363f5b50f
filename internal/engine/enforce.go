package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Limits bounds the size of an input document. Zero values disable a check.
type Limits struct {
	MaxDepth int
	MaxBytes int64
}

// ErrLimitExceeded is returned by a limited source once a bound is crossed.
var ErrLimitExceeded = errors.New("engine: input limit exceeded")

// WithLimits returns a TokenSource that stops with ErrLimitExceeded when the
// nesting depth or the consumed byte count crosses lim. When lim is zero the
// inner source is returned as is.
func WithLimits(inner TokenSource, lim Limits) TokenSource {
	if lim.MaxDepth <= 0 && lim.MaxBytes <= 0 {
		return inner
	}
	return &limitedSource{inner: inner, lim: lim}
}

type limitedSource struct {
	inner TokenSource
	lim   Limits
	depth int
}

func (l *limitedSource) NextToken() (Token, error) {
	tok, err := l.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		l.depth++
		if l.lim.MaxDepth > 0 && l.depth > l.lim.MaxDepth {
			return Token{}, fmt.Errorf("%w: depth %d > %d", ErrLimitExceeded, l.depth, l.lim.MaxDepth)
		}
	case KindEndObject, KindEndArray:
		if l.depth > 0 {
			l.depth--
		}
	}
	if l.lim.MaxBytes > 0 {
		if off := l.Location(); off >= 0 && off > l.lim.MaxBytes {
			return Token{}, fmt.Errorf("%w: %d bytes > %d", ErrLimitExceeded, off, l.lim.MaxBytes)
		}
	}
	return tok, nil
}

func (l *limitedSource) Location() int64 { return l.inner.Location() }

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapePointer escapes one JSON pointer reference token (RFC 6901).
func EscapePointer(s string) string {
	return jsonPointerEscaper.Replace(s)
}

// Frames tracks object/array nesting for token sources built on decoders that
// do not distinguish keys from string values.
type Frames struct {
	stack []frame
}

type frame struct {
	object       bool
	expectingKey bool
}

// Open pushes a container.
func (f *Frames) Open(object bool) {
	f.stack = append(f.stack, frame{object: object, expectingKey: object})
}

// Close pops a container and marks the enclosing value as complete.
func (f *Frames) Close() {
	if n := len(f.stack); n > 0 {
		f.stack = f.stack[:n-1]
	}
	f.ValueDone()
}

// IsKey reports whether the next string token is an object key and, if so,
// records that the key has been consumed.
func (f *Frames) IsKey() bool {
	n := len(f.stack)
	if n == 0 {
		return false
	}
	top := &f.stack[n-1]
	if top.object && top.expectingKey {
		top.expectingKey = false
		return true
	}
	return false
}

// ValueDone marks a scalar value as complete.
func (f *Frames) ValueDone() {
	if n := len(f.stack); n > 0 {
		top := &f.stack[n-1]
		if top.object && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
