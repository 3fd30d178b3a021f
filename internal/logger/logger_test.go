package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_NoOutputs(t *testing.T) {
	l := New("debug", FileConfig{}, false)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	l := New("warn", DefaultFileConfig(path), false)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l.Warn("platform hit an unregistered body", zap.Uint32("id", 4))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "unregistered body")
	assert.Contains(t, string(data), `"id":4`)
}
