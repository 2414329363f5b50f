package jsonschema_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/reoring/samgen/jsonschema"
)

// generateSchema returns a draft-04 document with n definitions and one anyOf
// property referencing all of them.
func generateSchema(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"$schema":"http://json-schema.org/draft-04/schema#","type":"object","properties":{"Resources":{"anyOf":[`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"$ref":"#/definitions/R%d"}`, i)
	}
	buf.WriteString(`]}},"definitions":{`)
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"R%d":{"type":"object","properties":{"Type":{"type":"string","enum":["R%d"]},"Properties":{"type":"object","properties":{"Name":{"type":"string","minLength":1},"Size":{"type":"integer","minimum":0}}}}}`, i, i)
	}
	buf.WriteString(`}}`)
	return buf.Bytes()
}

func benchmarkDecode(b *testing.B, d jsonschema.Driver, n int) {
	data := generateSchema(n)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		if _, err := jsonschema.Decode(data, jsonschema.WithDriver(d)); err != nil {
			b.Fatalf("decode: %v", err)
		}
	}
}

func BenchmarkDecode_GoJSON_100(b *testing.B)  { benchmarkDecode(b, jsonschema.DriverGoJSON, 100) }
func BenchmarkDecode_Stdlib_100(b *testing.B)  { benchmarkDecode(b, jsonschema.DriverStdlib, 100) }
func BenchmarkDecode_GoJSON_1000(b *testing.B) { benchmarkDecode(b, jsonschema.DriverGoJSON, 1000) }
func BenchmarkDecode_Stdlib_1000(b *testing.B) { benchmarkDecode(b, jsonschema.DriverStdlib, 1000) }

func TestGenerateSchema_Decodes(t *testing.T) {
	doc, err := jsonschema.Decode(generateSchema(3))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Definitions.Len() != 3 {
		t.Fatalf("definitions = %v", doc.Definitions.Keys())
	}
}
