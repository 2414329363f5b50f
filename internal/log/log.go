// Package log builds the zap logger shared by the samgen command.
package log

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level and encoding. The zero value logs info and above as
// console text to stderr.
type Options struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// ParseLevel maps a level name to zap's level. Unknown names are an error.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zap.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, errors.Wrapf(err, "log level %q", s)
	}
	return lvl, nil
}

func (o Options) config() (zap.Config, error) {
	lvl, err := ParseLevel(o.Level)
	if err != nil {
		return zap.Config{}, err
	}
	enc := o.Encoding
	switch enc {
	case "":
		enc = "console"
	case "console", "json":
	default:
		return zap.Config{}, errors.Errorf("log encoding %q: want console or json", enc)
	}
	ec := zap.NewProductionEncoderConfig()
	if enc == "console" {
		ec = zap.NewDevelopmentEncoderConfig()
		ec.TimeKey = ""
	}
	return zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         enc,
		EncoderConfig:    ec,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}, nil
}

// New builds a logger writing to stderr.
func New(o Options) (*zap.Logger, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}

// NewWriter builds a logger writing to w instead of stderr.
func NewWriter(o Options, w io.Writer) (*zap.Logger, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	if cfg.Encoding == "json" {
		enc = zapcore.NewJSONEncoder(cfg.EncoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), cfg.Level)), nil
}
