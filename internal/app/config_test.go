package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{})
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "", cfg.LogFormat)
		assert.Equal(t, "text", cfg.OutputFormat)
	})

	t.Run("values are normalized", func(t *testing.T) {
		cfg, err := NewConfig(Config{LogLevel: "DEBUG", LogFormat: "JSON", OutputFormat: "Yaml"})
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "yaml", cfg.OutputFormat)
	})

	testCases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"log format", Config{LogFormat: "xml"}, `invalid log-format "xml"`},
		{"log level", Config{LogLevel: "trace"}, `invalid log-level "trace"`},
		{"output format", Config{OutputFormat: "json"}, `invalid format "json"`},
	}
	for _, tc := range testCases {
		t.Run("invalid "+tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("non terminals default to json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger("info", "", buf)
		logger.Info("hello", "k", "v")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hello", entry["msg"])
		assert.Equal(t, "v", entry["k"])
	})

	t.Run("levels filter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newLogger("warn", "text", buf)
		logger.Info("dropped")
		logger.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "msg=kept")
	})

	assert.False(t, isTerminal(&bytes.Buffer{}))
}
