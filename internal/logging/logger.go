// Package logging provides a minimal printf-style logging facade for the
// resume pipeline. Component loggers share a single sink so per-round logs
// from the controller, scorers and generator interleave in one file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// sink is the shared destination for all component loggers.
type sink struct {
	mu     sync.Mutex
	file   io.WriteCloser
	echo   io.Writer // optional second destination (stderr when verbose)
	level  LogLevel
	closed bool
}

var (
	defaultSink     = &sink{level: INFO}
	defaultSinkOnce sync.Once
)

// Setup opens the shared log file under dir and sets the minimum level. It is
// safe to call once at process start; component loggers created before Setup
// write only to the echo destination.
func Setup(dir string, level LogLevel, verbose bool) error {
	var err error
	defaultSinkOnce.Do(func() {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			err = mkErr
			return
		}
		path := filepath.Join(dir, "resume-builder.log")
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			err = openErr
			return
		}
		defaultSink.mu.Lock()
		defaultSink.file = f
		defaultSink.level = level
		if verbose {
			defaultSink.echo = os.Stderr
		}
		defaultSink.mu.Unlock()
	})
	return err
}

// Close flushes and closes the shared log file.
func Close() error {
	defaultSink.mu.Lock()
	defer defaultSink.mu.Unlock()
	if defaultSink.file == nil || defaultSink.closed {
		return nil
	}
	defaultSink.closed = true
	return defaultSink.file.Close()
}

// componentLogger prefixes every line with its component name and writes to
// the shared sink.
type componentLogger struct {
	sink      *sink
	component string
}

// NewComponentLogger returns a logger scoped to a component, writing to the
// shared sink configured by Setup.
func NewComponentLogger(component string) Logger {
	return &componentLogger{sink: defaultSink, component: component}
}

func (l *componentLogger) log(level LogLevel, format string, args ...any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if level < l.sink.level {
		return
	}
	// Format: 2025-09-30 12:34:56 [INFO] [controller] message
	line := fmt.Sprintf("%s [%s] [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		levelToString(level),
		l.component,
		fmt.Sprintf(format, args...))
	if l.sink.file != nil && !l.sink.closed {
		_, _ = io.WriteString(l.sink.file, line)
	}
	if l.sink.echo != nil && level >= WARN {
		_, _ = io.WriteString(l.sink.echo, line)
	}
}

func (l *componentLogger) Debug(format string, args ...any) { l.log(DEBUG, format, args...) }
func (l *componentLogger) Info(format string, args ...any)  { l.log(INFO, format, args...) }
func (l *componentLogger) Warn(format string, args ...any)  { l.log(WARN, format, args...) }
func (l *componentLogger) Error(format string, args ...any) { l.log(ERROR, format, args...) }

func levelToString(level LogLevel) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a LogLevel, defaulting to INFO.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "WARN", "warning":
		return WARN
	case "error", "ERROR":
		return ERROR
	default:
		return INFO
	}
}
