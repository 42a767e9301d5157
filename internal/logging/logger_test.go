package logging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	lines []string
}

func (c *captureWriter) Write(p []byte) (int, error) {
	c.lines = append(c.lines, string(p))
	return len(p), nil
}

func (c *captureWriter) Close() error { return nil }

func TestComponentLoggerRespectsLevel(t *testing.T) {
	capture := &captureWriter{}
	s := &sink{file: capture, level: WARN}
	logger := &componentLogger{sink: s, component: "test"}

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept %d", 1)
	logger.Error("kept %d", 2)

	require.Len(t, capture.lines, 2)
	require.Contains(t, capture.lines[0], "[WARN] [test] kept 1")
	require.Contains(t, capture.lines[1], "[ERROR] [test] kept 2")
}

func TestEchoOnlyWarnAndAbove(t *testing.T) {
	file := &captureWriter{}
	echo := &captureWriter{}
	s := &sink{file: file, echo: echo, level: DEBUG}
	logger := &componentLogger{sink: s, component: "scorer"}

	logger.Info("file only")
	logger.Warn("both")

	require.Len(t, file.lines, 2)
	require.Len(t, echo.lines, 1)
	require.True(t, strings.Contains(echo.lines[0], "both"))
}

func TestNopLoggerDoesNotPanic(t *testing.T) {
	logger := OrNop(nil)
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARN, ParseLevel("warning"))
	require.Equal(t, ERROR, ParseLevel("ERROR"))
	require.Equal(t, INFO, ParseLevel("anything"))
}
