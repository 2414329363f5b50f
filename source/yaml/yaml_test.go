package yaml_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	eng "github.com/reoring/samgen/internal/engine"
	gojsonsrc "github.com/reoring/samgen/source/gojson"
	jsonsrc "github.com/reoring/samgen/source/json"
	yamlsrc "github.com/reoring/samgen/source/yaml"
)

func kinds(t *testing.T, src eng.TokenSource) []eng.Token {
	t.Helper()
	var out []eng.Token
	for {
		tok, err := src.NextToken()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		out = append(out, tok)
	}
}

func render(toks []eng.Token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Kind {
		case eng.KindBeginObject:
			b.WriteString("{")
		case eng.KindEndObject:
			b.WriteString("}")
		case eng.KindBeginArray:
			b.WriteString("[")
		case eng.KindEndArray:
			b.WriteString("]")
		case eng.KindKey:
			b.WriteString("k:" + t.String + " ")
		case eng.KindString:
			b.WriteString("s:" + t.String + " ")
		case eng.KindNumber:
			b.WriteString("n:" + t.Number + " ")
		case eng.KindBool:
			if t.Bool {
				b.WriteString("true ")
			} else {
				b.WriteString("false ")
			}
		case eng.KindNull:
			b.WriteString("null ")
		}
	}
	return b.String()
}

const doc = `{"b":"x","a":[1,2.5,true,null],"c":{"d":"e"}}`
const want = `{k:b s:x k:a [n:1 n:2.5 true null ]k:c {k:d s:e }}`

func TestJSONSources_SameStream(t *testing.T) {
	for name, src := range map[string]eng.TokenSource{
		"encoding/json": jsonsrc.NewBytes([]byte(doc)),
		"go-json":       gojsonsrc.NewBytes([]byte(doc)),
	} {
		if got := render(kinds(t, src)); got != want {
			t.Fatalf("%s: got %s want %s", name, got, want)
		}
	}
}

func TestYAMLSource_SameStream(t *testing.T) {
	y := `
b: x
a: [1, 2.5, true, null]
c:
  d: e
`
	if got := render(kinds(t, yamlsrc.NewBytes([]byte(y)))); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestYAMLSource_QuotedScalarsStayStrings(t *testing.T) {
	got := render(kinds(t, yamlsrc.NewReader(strings.NewReader(`v: ["1", "true", '2010-09-09']`))))
	if got != `{k:v [s:1 s:true s:2010-09-09 ]}` {
		t.Fatalf("got %s", got)
	}
}

func TestYAMLSource_FollowsAliases(t *testing.T) {
	y := `
base: &b {type: string}
copy: *b
`
	got := render(kinds(t, yamlsrc.NewBytes([]byte(y))))
	if got != `{k:base {k:type s:string }k:copy {k:type s:string }}` {
		t.Fatalf("got %s", got)
	}
}

// laughs builds n levels of anchors, each listing the previous one ten times.
func laughs(n int) []byte {
	var b strings.Builder
	b.WriteString(`a0: &a0 ["lol","lol","lol","lol","lol","lol","lol","lol","lol","lol"]` + "\n")
	for i := 1; i < n; i++ {
		ref := fmt.Sprintf("*a%d", i-1)
		fmt.Fprintf(&b, "a%d: &a%d [%s]\n", i, i, strings.Repeat(ref+",", 9)+ref)
	}
	return []byte(b.String())
}

func TestYAMLSource_AliasExpansionIsBounded(t *testing.T) {
	_, err := yamlsrc.NewBytes(laughs(9)).NextToken()
	if !errors.Is(err, yamlsrc.ErrExpansion) {
		t.Fatalf("want ErrExpansion, got %v", err)
	}
	// A few levels stay well inside the budget.
	toks := kinds(t, yamlsrc.NewBytes(laughs(2)))
	if len(toks) != 1+2+12+2+10*12+1 {
		t.Fatalf("tokens = %d", len(toks))
	}
}

func TestYAMLSource_RejectsMergeKeys(t *testing.T) {
	y := `
base: &b {type: string}
copy:
  <<: *b
  description: x
`
	_, err := yamlsrc.NewBytes([]byte(y)).NextToken()
	if !errors.Is(err, yamlsrc.ErrMergeKey) {
		t.Fatalf("want ErrMergeKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Fatalf("error should carry the line: %v", err)
	}
	// A quoted "<<" is an ordinary key.
	got := render(kinds(t, yamlsrc.NewBytes([]byte(`"<<": x`))))
	if got != `{k:<< s:x }` {
		t.Fatalf("got %s", got)
	}
}

func TestYAMLSource_LocationIsLine(t *testing.T) {
	src := yamlsrc.NewBytes([]byte("a: 1\nb: 2\n"))
	// {, a, 1, b, 2
	for i := 0; i < 5; i++ {
		if _, err := src.NextToken(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	if got := src.Location(); got != 2 {
		t.Fatalf("line = %d", got)
	}
}

func TestYAMLSource_ParseError(t *testing.T) {
	if _, err := yamlsrc.NewBytes([]byte("a: [1, 2")).NextToken(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected a syntax error, got %v", err)
	}
}

func TestJSONSource_Offsets(t *testing.T) {
	src := jsonsrc.NewBytes([]byte(`{"a":1}`))
	if src.Location() != -1 {
		t.Fatalf("location before reading = %d", src.Location())
	}
	tok, _ := src.NextToken()
	if tok.Offset != 1 {
		t.Fatalf("offset = %d", tok.Offset)
	}
}
