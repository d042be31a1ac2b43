package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelInfo, &buf)
	require.NotNil(t, defaultLogger)

	Info("test-subsystem", "test message")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "test-subsystem")
}

func TestCLILevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	InitForCLI(LevelInfo, &buf)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	assert.False(t, strings.Contains(output, "debug message"))
	assert.True(t, strings.Contains(output, "info message"))
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Policy", assert.AnError, "failed to render rule for key %q", "check")

	output := buf.String()
	assert.Contains(t, output, "failed to render rule")
	assert.Contains(t, output, assert.AnError.Error())
}
