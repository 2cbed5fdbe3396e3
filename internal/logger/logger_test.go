package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"trace", zerolog.TraceLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Logger{Level: tt.in}.level(), tt.in)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Level: "warn", Format: "json"}.New(&buf)

	l.Info().Msg("hidden")
	l.Warn().Str("region", "rudnik").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "rudnik", entry["region"])
	assert.Equal(t, "visible", entry["message"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{Format: "console"}.New(&buf)

	l.Info().Str("place", "castle").Msg("QR code saved")
	assert.Contains(t, buf.String(), "QR code saved")
	assert.Contains(t, buf.String(), "castle")
}
