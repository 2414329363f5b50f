package jsonschema

import "strings"

// Dialect is one of the supported JSON Schema specification versions.
type Dialect string

// The versions we support.
const (
	Draft04     Dialect = "http://json-schema.org/draft-04/schema#"
	Draft201909 Dialect = "https://json-schema.org/draft/2019-09/schema"
	Draft202012 Dialect = "https://json-schema.org/draft/2020-12/schema"
)

// dialectMarkers is checked in order; the newest version wins when a URI
// happens to mention more than one.
var dialectMarkers = []struct {
	marker  string
	dialect Dialect
}{
	{"2020-12", Draft202012},
	{"2019-09", Draft201909},
	{"draft-04", Draft04},
}

// ResolveDialect classifies the value of a schema's "$schema" keyword.
func ResolveDialect(s string) (Dialect, error) {
	for _, m := range dialectMarkers {
		if strings.Contains(s, m.marker) {
			return m.dialect, nil
		}
	}
	return "", &Issue{
		Path:     pointer("").Field("$schema").String(),
		Code:     CodeUnsupportedDialect,
		Value:    s,
		Expected: "draft-04, 2019-09 or 2020-12",
	}
}

// DefinitionsKeyword names the keyword holding reusable definitions. It was
// renamed to "$defs" in 2019-09.
func (d Dialect) DefinitionsKeyword() string {
	if d == Draft04 {
		return "definitions"
	}
	return "$defs"
}

// IDKeyword names the identity keyword; draft-04 spells it without a "$".
func (d Dialect) IDKeyword() string {
	if d == Draft04 {
		return "id"
	}
	return "$id"
}

func (d Dialect) String() string {
	switch d {
	case Draft04:
		return "draft-04"
	case Draft201909:
		return "2019-09"
	case Draft202012:
		return "2020-12"
	}
	return string(d)
}
