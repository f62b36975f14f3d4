package logger_test

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/publish/logger"
)

func newTestLogger(b *bytes.Buffer, ll logger.LogLevel) logger.Logger {
	return logger.New(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(ll))
}

func TestNewLogLevel(t *testing.T) {
	tcs := []struct {
		val      string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	}

	for _, tc := range tcs {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}

	require.Equal(t, "[WARN]", logger.LogLevelWarn.String())
	require.Equal(t, "[UNK]", logger.LogLevel(99).String())
}

func TestPublishLoggerLevels(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	// Arrange
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelWarn)

	// Act
	l.Debug("quiet", nil)
	l.Info("quiet", nil)

	// Assert
	require.Zero(t, b.Len())

	// Act
	l.Warn("loud", nil)

	// Assert
	require.Contains(t, b.String(), "[WARN]")
	require.Contains(t, b.String(), "'loud'")
	require.Contains(t, b.String(), "logger_test.go")
}

func TestPublishLoggerWithContext(t *testing.T) {
	t.Setenv("SENTRY_DSN", "")

	// Arrange
	b := new(bytes.Buffer)
	l := newTestLogger(b, logger.LogLevelDebug)

	// Act
	l.Error("boom", &logger.LogContext{Caller: "somewhere.go:1", Error: errors.New("bad")})

	// Assert
	require.Contains(t, b.String(), "somewhere.go:1")
	require.Contains(t, b.String(), `log_context: {"error":"bad"}`)
}

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, "{}", string(b))

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"format": "xml"}, Caller: "ignored"}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"format":"xml"}}`, string(b))

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	lc = logger.LogContext{Request: r}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"request":{"accept_encoding":"gzip","method":"GET","url":"https://example.com/feed"}}`, string(b))
}

func TestLogContextString(t *testing.T) {
	lc := logger.LogContext{Data: map[string]any{"bad": func() {}}}
	require.Equal(t, "", lc.String())

	lc = logger.LogContext{Error: errors.New("test")}
	require.Equal(t, `{"error":"test"}`, lc.String())
}

func TestCurrentCaller(t *testing.T) {
	var actual string
	func() {
		actual = logger.CurrentCaller()
	}()

	require.Contains(t, actual, "logger_test.go:")
}
