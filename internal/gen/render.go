// Package gen renders generation directives as Go source.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"

	"github.com/reoring/samgen/declgen"
)

// File is the input of RenderFile.
type File struct {
	Package string
	Type    string
	Fields  []Field
}

// Field is one property of the generated struct and its union type.
type Field struct {
	Name         string // Go field name.
	Property     string // Schema property name, used in struct tags.
	GoType       string
	Union        string // Name of the union interface.
	Alternatives []string
	Strategy     declgen.Strategy
}

var fileTmpl = template.Must(template.New("file").Parse(`// Code generated by samgen. DO NOT EDIT.

package {{.Package}}

// {{.Type}} holds the generated template properties.
type {{.Type}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}} ` + "`" + `yaml:"{{.Property}},omitempty" json:"{{.Property}},omitempty"` + "`" + `
{{- end}}
}
{{range .Fields}}
// {{.Union}} is one of:
{{- range .Alternatives}}
//   - {{.}}
{{- end}}
type {{.Union}} interface {
	is{{.Union}}()
}
{{end}}`))

// FromDirectives maps directives to a File. Go names are derived from the
// property names and made unique.
func FromDirectives(pkg, typeName string, dirs []declgen.Directive) File {
	f := File{Package: pkg, Type: typeName}
	used := map[string]int{typeName: 1}
	for _, d := range dirs {
		name := unique(used, Identifier(d.Property))
		union := unique(used, name+"Union")
		f.Fields = append(f.Fields, Field{
			Name:         name,
			Property:     d.Property,
			GoType:       goType(d.Strategy, union),
			Union:        union,
			Alternatives: alternatives(d),
			Strategy:     d.Strategy,
		})
	}
	return f
}

func alternatives(d declgen.Directive) []string {
	if len(d.References) == 0 {
		return nil
	}
	return strings.Split(d.TypeExpression(), declgen.Separator)
}

func goType(s declgen.Strategy, union string) string {
	switch s {
	case declgen.StrategyResourceMap:
		return "map[string]" + union
	case declgen.StrategyDependsList:
		return "[]" + union
	}
	return union
}

func unique(used map[string]int, name string) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	candidate := fmt.Sprintf("%s%d", name, n+1)
	for used[candidate] > 0 {
		n++
		candidate = fmt.Sprintf("%s%d", name, n+1)
	}
	used[candidate] = 1
	return candidate
}

// Identifier turns a property name such as "AWS::Serverless::Api" into an
// exported Go identifier ("AWSServerlessApi").
func Identifier(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" {
		return "Field"
	}
	if first := []rune(id)[0]; !unicode.IsLetter(first) || token.Lookup(id).IsKeyword() {
		id = "X" + id
	}
	return id
}

// RenderFile executes the template and gofmt's the result.
func RenderFile(f File) ([]byte, error) {
	if !token.IsIdentifier(f.Package) {
		return nil, fmt.Errorf("gen: invalid package name %q", f.Package)
	}
	if !token.IsIdentifier(f.Type) {
		return nil, fmt.Errorf("gen: invalid type name %q", f.Type)
	}
	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, f); err != nil {
		return nil, fmt.Errorf("gen: execute template: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("gen: format: %w", err)
	}
	return out, nil
}

// Render is FromDirectives followed by RenderFile.
func Render(pkg, typeName string, dirs []declgen.Directive) ([]byte, error) {
	return RenderFile(FromDirectives(pkg, typeName, dirs))
}
