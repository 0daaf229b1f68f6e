package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a config value ("debug", "info", "warn", "error") to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	mu     sync.Mutex
	out    = log.New(io.Discard, "", log.LstdFlags)
	level  = LevelInfo
	closer io.Closer
)

// Setup configures the package logger. An empty file discards output,
// "-" writes to stderr, anything else is opened in append mode.
// The TUI owns the terminal, so interactive runs should log to a file.
func Setup(levelName, file string) error {
	lvl, err := ParseLevel(levelName)
	if err != nil {
		return err
	}

	var w io.Writer
	var c io.Closer
	switch file {
	case "":
		w = io.Discard
	case "-":
		w = os.Stderr
	default:
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w, c = f, f
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	out = log.New(w, "", log.LstdFlags|log.Lmicroseconds)
	level = lvl
	closer = c
	return nil
}

// SetOutput redirects log output to w at the given level. Used by tests.
func SetOutput(w io.Writer, lvl Level) {
	mu.Lock()
	defer mu.Unlock()
	out = log.New(w, "", 0)
	level = lvl
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	out = log.New(io.Discard, "", log.LstdFlags)
	return err
}

func logf(lvl Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if lvl < level {
		return
	}
	out.Printf("[%s] %s", lvl, fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }
func Info(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Error(format string, args ...any) { logf(LevelError, format, args...) }
