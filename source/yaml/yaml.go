// Package yaml replays a YAML document as an engine.TokenSource, so schemas
// authored in YAML go through the same decoder as JSON ones.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/samgen/internal/engine"
)

var (
	// ErrExpansion is returned when aliases would replay the document into
	// far more tokens than its size allows.
	ErrExpansion = errors.New("yaml: alias expansion exceeds token budget")
	// ErrMergeKey rejects "<<" merge keys; write the members out instead.
	ErrMergeKey = errors.New("yaml: merge keys are not supported")
)

type source struct {
	toks   []eng.Token
	pos    int
	err    error
	budget int
}

const (
	maxAliasDepth = 64
	// Tokens allowed per input byte, plus a floor for tiny documents.
	tokensPerByte = 4
	minTokens     = 4096
)

// NewBytes parses b as a single YAML document. Parse errors surface from the
// first NextToken call.
func NewBytes(b []byte) eng.TokenSource {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return &source{err: err}
	}
	s := &source{budget: minTokens + tokensPerByte*len(b)}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &source{err: io.EOF}
		}
		root = doc.Content[0]
	}
	if err := s.flatten(root, 0); err != nil {
		return &source{err: err}
	}
	return s
}

// NewReader reads r fully and parses it as YAML.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(b)
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// Location reports the line of the last token, not a byte offset.
func (s *source) Location() int64 {
	if s.pos == 0 || s.pos > len(s.toks) {
		return -1
	}
	return s.toks[s.pos-1].Offset
}

func (s *source) emit(t eng.Token) error {
	if len(s.toks) >= s.budget {
		return fmt.Errorf("%w (%d tokens)", ErrExpansion, s.budget)
	}
	s.toks = append(s.toks, t)
	return nil
}

func (s *source) flatten(n *yaml.Node, aliases int) error {
	line := int64(n.Line)
	switch n.Kind {
	case yaml.AliasNode:
		if aliases >= maxAliasDepth {
			return fmt.Errorf("yaml: alias nesting deeper than %d at line %d", maxAliasDepth, n.Line)
		}
		return s.flatten(n.Alias, aliases+1)
	case yaml.MappingNode:
		if err := s.emit(eng.Token{Kind: eng.KindBeginObject, Offset: line}); err != nil {
			return err
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				return fmt.Errorf("%w at line %d", ErrMergeKey, k.Line)
			}
			if err := s.emit(eng.Token{Kind: eng.KindKey, String: k.Value, Offset: int64(k.Line)}); err != nil {
				return err
			}
			if err := s.flatten(n.Content[i+1], aliases); err != nil {
				return err
			}
		}
		return s.emit(eng.Token{Kind: eng.KindEndObject, Offset: line})
	case yaml.SequenceNode:
		if err := s.emit(eng.Token{Kind: eng.KindBeginArray, Offset: line}); err != nil {
			return err
		}
		for _, c := range n.Content {
			if err := s.flatten(c, aliases); err != nil {
				return err
			}
		}
		return s.emit(eng.Token{Kind: eng.KindEndArray, Offset: line})
	case yaml.ScalarNode:
		t, err := scalar(n)
		if err != nil {
			return err
		}
		return s.emit(t)
	}
	return fmt.Errorf("yaml: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func scalar(n *yaml.Node) (eng.Token, error) {
	t := eng.Token{Offset: int64(n.Line)}
	switch n.ShortTag() {
	case "!!null":
		t.Kind = eng.KindNull
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return t, err
		}
		t.Kind, t.Bool = eng.KindBool, b
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return t, err
		}
		t.Kind, t.Number = eng.KindNumber, strconv.FormatInt(i, 10)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return t, err
		}
		t.Kind, t.Number = eng.KindNumber, strconv.FormatFloat(f, 'g', -1, 64)
	default:
		t.Kind, t.String = eng.KindString, n.Value
	}
	return t, nil
}
