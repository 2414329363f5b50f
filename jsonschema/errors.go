package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/samgen/i18n"
	eng "github.com/reoring/samgen/internal/engine"
)

// Issue codes.
const (
	CodeUnsupportedDialect   = "unsupported_dialect"
	CodeMissingRequiredField = "missing_required_field"
	CodeTypeMismatch         = "type_mismatch"
	CodeAmbiguousVariant     = "ambiguous_variant"
	CodeWrongVariant         = "wrong_variant"
	CodeParseError           = "parse_error"
)

// Sentinels matched by errors.Is against an *Issue or *VariantError.
var (
	ErrUnsupportedDialect   = errors.New("jsonschema: unsupported dialect")
	ErrMissingRequiredField = errors.New("jsonschema: missing required field")
	ErrTypeMismatch         = errors.New("jsonschema: type mismatch")
	ErrAmbiguousVariant     = errors.New("jsonschema: ambiguous variant")
	ErrWrongVariant         = errors.New("jsonschema: wrong variant")
	ErrParse                = errors.New("jsonschema: parse error")
)

var sentinels = map[string]error{
	CodeUnsupportedDialect:   ErrUnsupportedDialect,
	CodeMissingRequiredField: ErrMissingRequiredField,
	CodeTypeMismatch:         ErrTypeMismatch,
	CodeAmbiguousVariant:     ErrAmbiguousVariant,
	CodeWrongVariant:         ErrWrongVariant,
	CodeParseError:           ErrParse,
}

// Issue describes why a schema could not be decoded.
type Issue struct {
	Path     string // JSON Pointer to the offending node ("" is the root).
	Code     string // One of the codes listed above.
	Value    any    // Raw value seen at Path, when there was one.
	Expected string // What the decoder wanted instead, when meaningful.
	Message  string // Optional: overrides the translated message.
	Cause    error  // Optional: underlying error.
}

func (e *Issue) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	msg := e.Message
	if msg == "" {
		msg = i18n.T(e.Code, map[string]string{"value": describe(e.Value), "expected": e.Expected})
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s: %v", e.Code, path, msg, e.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, path, msg)
}

// Is matches the sentinel for the issue's code.
func (e *Issue) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

func (e *Issue) Unwrap() error { return e.Cause }

// AsIssue extracts an *Issue from err using errors.As.
func AsIssue(err error) (*Issue, bool) {
	var iss *Issue
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func mismatch(p pointer, v any, expected string) *Issue {
	return &Issue{Path: p.String(), Code: CodeTypeMismatch, Value: v, Expected: expected}
}

func missing(p pointer, keyword string) *Issue {
	return &Issue{Path: p.Field(keyword).String(), Code: CodeMissingRequiredField, Expected: keyword}
}

// describe renders a raw node value for messages.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", t)
	case json.Number:
		return t.String()
	case bool:
		return fmt.Sprintf("%t", t)
	case *eng.Object:
		keys := make([]string, len(t.Members))
		for i, m := range t.Members {
			keys[i] = m.Key
		}
		return "object{" + strings.Join(keys, ",") + "}"
	case []any:
		return fmt.Sprintf("array[%d]", len(t))
	case []string:
		return strings.Join(t, ",")
	}
	return fmt.Sprintf("%v", v)
}

// pointer builds RFC 6901 JSON Pointers.
type pointer string

func (p pointer) Field(name string) pointer {
	return p + "/" + pointer(eng.EscapePointer(name))
}

func (p pointer) Index(i int) pointer {
	return pointer(fmt.Sprintf("%s/%d", p, i))
}

func (p pointer) String() string { return string(p) }
