package jsonschema

import (
	"fmt"

	"go.uber.org/zap"

	eng "github.com/reoring/samgen/internal/engine"
	gojsonsrc "github.com/reoring/samgen/source/gojson"
	jsonsrc "github.com/reoring/samgen/source/json"
)

// Driver selects the JSON tokenizer used by Decode.
type Driver string

const (
	DriverGoJSON Driver = "go-json"
	DriverStdlib Driver = "encoding/json"
)

// ParseDriver validates a driver name. An empty name selects the default.
func ParseDriver(s string) (Driver, error) {
	switch Driver(s) {
	case "", DriverGoJSON:
		return DriverGoJSON, nil
	case DriverStdlib:
		return DriverStdlib, nil
	}
	return "", fmt.Errorf("jsonschema: unknown driver %q", s)
}

func (d Driver) newSource(b []byte) eng.TokenSource {
	if d == DriverStdlib {
		return jsonsrc.NewBytes(b)
	}
	return gojsonsrc.NewBytes(b)
}

// Option configures decoding.
type Option func(*options)

type options struct {
	logger *zap.Logger
	driver Driver
	limits eng.Limits
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), driver: DriverGoJSON}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger receives decode warnings (duplicate keys, non-object roots) and
// debug traces. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDriver picks the JSON tokenizer. YAML input ignores it.
func WithDriver(d Driver) Option {
	return func(o *options) {
		if d != "" {
			o.driver = d
		}
	}
}

// WithLimits bounds nesting depth and input size. Zero disables a bound.
func WithLimits(maxDepth int, maxBytes int64) Option {
	return func(o *options) {
		o.limits = eng.Limits{MaxDepth: maxDepth, MaxBytes: maxBytes}
	}
}
