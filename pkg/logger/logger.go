// Package logger provides the structured JSON line logger used by every
// frauddash entry point.
package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

// Logger is the logging interface passed through the application.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
	Debug(message string, fields map[string]interface{})
	Fatal(message string, fields map[string]interface{})
}

type jsonLogger struct {
	serviceName string
	out         *log.Logger
	exit        func(int)
}

// New creates a Logger writing one JSON object per line to stdout.
func New(serviceName string) Logger {
	return NewWithWriter(serviceName, os.Stdout)
}

// NewWithWriter creates a Logger writing to w; used by tests to capture
// output.
func NewWithWriter(serviceName string, w io.Writer) Logger {
	return &jsonLogger{
		serviceName: serviceName,
		out:         log.New(w, "", 0),
		exit:        os.Exit,
	}
}

func (l *jsonLogger) emit(level, message string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"service":   l.serviceName,
		"message":   message,
	}
	for k, v := range fields {
		entry[k] = v
	}

	line, _ := json.Marshal(entry)
	l.out.Println(string(line))
}

func (l *jsonLogger) Info(message string, fields map[string]interface{}) {
	l.emit("info", message, fields)
}

func (l *jsonLogger) Warn(message string, fields map[string]interface{}) {
	l.emit("warn", message, fields)
}

func (l *jsonLogger) Error(message string, fields map[string]interface{}) {
	l.emit("error", message, fields)
}

func (l *jsonLogger) Debug(message string, fields map[string]interface{}) {
	l.emit("debug", message, fields)
}

func (l *jsonLogger) Fatal(message string, fields map[string]interface{}) {
	l.emit("fatal", message, fields)
	l.exit(1)
}

// NewNop returns a Logger that discards everything; for tests.
func NewNop() Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (l *nopLogger) Info(message string, fields map[string]interface{})  {}
func (l *nopLogger) Warn(message string, fields map[string]interface{})  {}
func (l *nopLogger) Error(message string, fields map[string]interface{}) {}
func (l *nopLogger) Debug(message string, fields map[string]interface{}) {}
func (l *nopLogger) Fatal(message string, fields map[string]interface{}) {}