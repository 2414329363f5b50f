package descriptor

import (
	"bytes"
	"fmt"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// MarshalJSON renders t as an indented JSON template with the same key order
// as MarshalYAML.
func MarshalJSON(t *Template) []byte {
	var compact bytes.Buffer
	writeJSON(&compact, prepareTemplate(t))
	var out bytes.Buffer
	if err := j.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		// Should never happen, since writeJSON only emits well-formed JSON.
		panic(fmt.Errorf("writeJSON produced invalid JSON: %s", err))
	}
	out.WriteByte('\n')
	return out.Bytes()
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, n.Content[i].Value)
			buf.WriteByte(':')
			writeJSON(buf, n.Content[i+1])
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSON(buf, c)
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!int", "!!bool":
			buf.WriteString(n.Value)
		default:
			writeJSONString(buf, n.Value)
		}
	default:
		panic(fmt.Errorf("writeJSON: unexpected node kind %d", n.Kind))
	}
}

func writeJSONString(buf *bytes.Buffer, s string) {
	b, err := j.MarshalNoEscape(s)
	if err != nil {
		panic(fmt.Errorf("encoding string %q: %s", s, err))
	}
	buf.Write(b)
}
