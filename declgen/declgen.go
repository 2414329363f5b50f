// Package declgen turns the properties of a decoded schema into generation
// directives: one per anyOf property, describing the shape of the Go
// declaration to emit and the union's alternatives in schema order.
package declgen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/reoring/samgen/jsonschema"
)

const (
	// Separator joins the alternatives of a union type expression.
	Separator = " | "
	// UnknownType stands in for an alternative without a $ref.
	UnknownType = "UnknownType"
)

// Directive describes one property declaration.
type Directive struct {
	Property   string
	Strategy   Strategy
	References []string // Alternative type names in schema order; "" when a member had no $ref.
}

// TypeExpression renders the union, e.g. "A | B | UnknownType".
func (d Directive) TypeExpression() string {
	parts := make([]string, len(d.References))
	for i, r := range d.References {
		if r == "" {
			r = UnknownType
		}
		parts[i] = r
	}
	return strings.Join(parts, Separator)
}

// Option configures a Generator.
type Option func(*Generator)

// WithTable replaces the reserved-name table.
func WithTable(t *Table) Option {
	return func(g *Generator) {
		if t != nil {
			g.table = t
		}
	}
}

// WithLogger receives one debug entry per decision.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// Generator produces directives. It is safe for concurrent use as long as
// its Table is not modified.
type Generator struct {
	table *Table
	log   *zap.Logger
}

func New(opts ...Option) *Generator {
	g := &Generator{table: DefaultTable(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate walks the document's top-level properties in order. Properties
// that are not anyOf unions produce no directive.
func (g *Generator) Generate(doc *jsonschema.Document) []Directive {
	if doc == nil {
		return nil
	}
	var out []Directive
	for name, u := range doc.Properties.All() {
		alts, err := jsonschema.ExpectAnyOf(u)
		if err != nil {
			g.log.Debug("skipping property", zap.String("property", name), zap.Error(err))
			continue
		}
		d := Directive{
			Property:   name,
			Strategy:   g.table.Lookup(name),
			References: make([]string, len(alts)),
		}
		for i, t := range alts {
			d.References[i] = t.ReferenceName()
		}
		g.log.Debug("generating declaration",
			zap.String("property", name),
			zap.Stringer("strategy", d.Strategy),
			zap.String("type", d.TypeExpression()))
		out = append(out, d)
	}
	return out
}
