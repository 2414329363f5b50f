package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/samgen/internal/log"
)

func TestParseLevel(t *testing.T) {
	lvl, err := log.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = log.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = log.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewWriter_JSONFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := log.NewWriter(log.Options{Level: "warn", Encoding: "json"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", zap.String("key", "Resources"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"Resources"`)
}

func TestNewWriter_ConsoleDefault(t *testing.T) {
	var buf bytes.Buffer
	l, err := log.NewWriter(log.Options{}, &buf)
	require.NoError(t, err)
	l.Info("hello")
	assert.True(t, strings.Contains(buf.String(), "hello"))
	assert.False(t, strings.HasPrefix(buf.String(), "{"))
}

func TestNew_RejectsUnknownEncoding(t *testing.T) {
	_, err := log.New(log.Options{Encoding: "xml"})
	assert.Error(t, err)
}
