// Package logger provides the process-wide leveled logger. Output defaults
// to stderr so stdio MCP transport traffic on stdout stays clean.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// Format selects the output encoding.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu     sync.Mutex
	level  = InfoLevel
	format = FormatText
	out    io.Writer = os.Stderr
	name             = "dadjoke-mcp"
)

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level: %q", s)
}

func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	}
	return "unknown"
}

// SetLevel sets the minimum severity that gets written.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current minimum severity.
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetFormat selects "text" or "json" output.
func SetFormat(f string) error {
	if f != FormatText && f != FormatJSON {
		return fmt.Errorf("unknown log format: %q", f)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	return nil
}

// SetOutput redirects log output, e.g. to a MultiWriter with a file sink.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

type jsonEntry struct {
	Timestamp string `json:"timestamp"`
	Logger    string `json:"logger"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

func write(l Level, fmtStr string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	msg := fmt.Sprintf(fmtStr, args...)
	now := time.Now().UTC().Format(time.RFC3339)
	if format == FormatJSON {
		data, err := json.Marshal(jsonEntry{
			Timestamp: now,
			Logger:    name,
			Level:     l.String(),
			Message:   msg,
		})
		if err != nil {
			fmt.Fprintf(out, "%s [%s] %s\n", now, l, msg)
			return
		}
		fmt.Fprintf(out, "%s\n", data)
		return
	}
	fmt.Fprintf(out, "%s [%s] %s\n", now, l, msg)
}

// Trace logs at trace level.
func Trace(format string, args ...any) { write(TraceLevel, format, args...) }

// Debug logs at debug level.
func Debug(format string, args ...any) { write(DebugLevel, format, args...) }

// Info logs at info level.
func Info(format string, args ...any) { write(InfoLevel, format, args...) }

// Warn logs at warn level.
func Warn(format string, args ...any) { write(WarnLevel, format, args...) }

// Error logs at error level.
func Error(format string, args ...any) { write(ErrorLevel, format, args...) }

// Fatal logs at fatal level and exits.
func Fatal(format string, args ...any) {
	write(FatalLevel, format, args...)
	os.Exit(1)
}
