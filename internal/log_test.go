package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"ERROR":   LogLevelError,
		"warn":    LogLevelWarn,
		" info ":  LogLevelInfo,
		"DEBUG":   LogLevelDebug,
		"trace":   LogLevelTrace,
		"verbose": LogLevelInfo,
		"":        LogLevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLogLevel(in), "input %q", in)
	}
}

func TestLoggerLevels(t *testing.T) {
	l := NewLogger(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, l.GetLevel())

	child := l.With("provider", "Groq")
	assert.Equal(t, LogLevelWarn, child.GetLevel())

	// must not panic at any level
	nop := NewNopLogger()
	nop.Error("x %d", 1)
	nop.Trace("y")
}
