package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// BasicLogger prints log lines to a writer using fmt.Fprintf.
type BasicLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	fields []Field
}

var _ Logger = (*BasicLogger)(nil)

// New returns a basic logger that writes to stdout.
func New() *BasicLogger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter returns a basic logger that writes to out.
func NewWithWriter(out io.Writer) *BasicLogger {
	if out == nil {
		out = os.Stdout
	}
	return &BasicLogger{
		mu:  &sync.Mutex{},
		out: out,
	}
}

// Default returns the default basic logger implementation.
func Default() Logger {
	return New()
}

// With returns a logger that includes fields on each log line.
func (l *BasicLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	next := &BasicLogger{
		mu:     l.mu,
		out:    l.out,
		fields: make([]Field, 0, len(l.fields)+len(fields)),
	}
	next.fields = append(next.fields, l.fields...)
	next.fields = append(next.fields, fields...)
	return next
}

func (l *BasicLogger) Debug(msg string, fields ...Field) { l.log("DEBUG", msg, fields) }
func (l *BasicLogger) Info(msg string, fields ...Field)  { l.log("INFO", msg, fields) }
func (l *BasicLogger) Warn(msg string, fields ...Field)  { l.log("WARN", msg, fields) }
func (l *BasicLogger) Error(msg string, fields ...Field) { l.log("ERROR", msg, fields) }

func (l *BasicLogger) log(level, msg string, fields []Field) {
	line := fmt.Sprintf("[%s] %s", level, msg)
	all := append(append([]Field(nil), l.fields...), fields...)
	if rendered := formatFields(all); rendered != "" {
		line += " " + rendered
	}
	l.mu.Lock()
	fmt.Fprintf(l.out, "%s\n", line)
	l.mu.Unlock()
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}
	return strings.Join(parts, " ")
}
