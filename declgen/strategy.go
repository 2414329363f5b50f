package declgen

import (
	"fmt"
	"maps"
	"slices"
)

// Strategy is the shape a generated property takes.
type Strategy int

const (
	// StrategyScalar declares a single value of the union type.
	StrategyScalar Strategy = iota
	// StrategyResourceMap declares a map keyed by logical id.
	StrategyResourceMap
	// StrategyDependsList declares a list of the union type.
	StrategyDependsList
)

func (s Strategy) String() string {
	switch s {
	case StrategyScalar:
		return "scalar"
	case StrategyResourceMap:
		return "resource-map"
	case StrategyDependsList:
		return "depends-list"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Table maps reserved property names to a non-default strategy.
// The zero value is an empty table.
type Table struct {
	m map[string]Strategy
}

// DefaultTable returns the reserved names of SAM templates.
func DefaultTable() *Table {
	t := &Table{}
	t.Register("Resources", StrategyResourceMap)
	t.Register("AWS::Serverless::Api", StrategyDependsList)
	return t
}

// Register adds or replaces the strategy for name.
func (t *Table) Register(name string, s Strategy) *Table {
	if t.m == nil {
		t.m = make(map[string]Strategy)
	}
	t.m[name] = s
	return t
}

// Lookup returns the strategy for name, StrategyScalar when it is not reserved.
func (t *Table) Lookup(name string) Strategy {
	if t == nil {
		return StrategyScalar
	}
	if s, ok := t.m[name]; ok {
		return s
	}
	return StrategyScalar
}

// Names lists the reserved names in lexical order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.m))
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	c := &Table{}
	if t != nil && t.m != nil {
		c.m = maps.Clone(t.m)
	}
	return c
}
