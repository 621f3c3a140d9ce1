package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	log, err := New(Config{Level: "debug", Development: true, OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	require.NotNil(t, log)

	child := log.With(String("component", "test"))
	assert.NotNil(t, child)

	child.Info("hello", Int("n", 1), Bool("ok", true), Error(errors.New("boom")), Any("panic", "value"))
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Debug("ignored")
	log.Error("ignored", Strings("k", []string{"v"}))

	assert.Same(t, log, log.With(String("k", "v")))
	assert.NoError(t, log.Sync())
}
