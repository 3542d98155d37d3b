// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json"}, &buf)

	logger.Info().Str("query", "cancer").Msg("searching pubmed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be one JSON object")
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "searching pubmed", entry["message"])
	assert.Equal(t, "cancer", entry["query"])
	assert.Contains(t, entry, "time")
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "console"}, &buf)

	logger.Info().Msg("searching pubmed")

	out := buf.String()
	assert.Contains(t, out, "searching pubmed")
	assert.False(t, strings.HasPrefix(out, "{"), "console output should not be JSON")
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json"}, &buf)

	logger.Debug().Msg("hidden debug")
	logger.Info().Msg("hidden info")
	logger.Warn().Msg("visible warn")

	out := buf.String()
	assert.NotContains(t, out, "hidden debug")
	assert.NotContains(t, out, "hidden info")
	assert.Contains(t, out, "visible warn")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "parseLevel(%q)", tt.in)
	}
}
