// Package logging wraps the standard library's log.Logger with a small
// leveled Printf-style interface, matching the teacher's preference for
// stdlib logging (see loom/debug) over a structured-logging dependency.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger is a leveled, Printf-style logger. The zero value is not usable;
// construct one with New or Discard.
type Logger struct {
	std *log.Logger
}

// New builds a Logger writing to w with the given prefix, using the same
// LstdFlags|Lshortfile flag combination the teacher's debug logger uses.
func New(w io.Writer, prefix string) *Logger {
	return &Logger{std: log.New(w, prefix, log.LstdFlags|log.Lshortfile)}
}

// Discard returns a Logger that drops everything written to it.
func Discard() *Logger {
	return New(io.Discard, "")
}

// Default returns a Logger writing to stderr, for callers that don't wire
// up their own sink.
func Default(prefix string) *Logger {
	return New(os.Stderr, prefix)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.std.Printf("[DEBUG] "+format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.std.Printf("[INFO] "+format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.std.Printf("[WARN] "+format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.std.Printf("[ERROR] "+format, args...) }
